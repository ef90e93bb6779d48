package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFalla = errors.New("falla de red")

func breakerDePrueba(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      openTimeout,
	})
}

func TestBreakerAbreTrasFallasConsecutivas(t *testing.T) {
	cb := breakerDePrueba(time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, CBClosed, cb.State())
		require.Error(t, cb.Execute(func() error { return errFalla }))
	}

	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrCircuitOpen)
}

func TestBreakerExitoReiniciaElConteo(t *testing.T) {
	cb := breakerDePrueba(time.Minute)

	require.Error(t, cb.Execute(func() error { return errFalla }))
	require.Error(t, cb.Execute(func() error { return errFalla }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errFalla }))
	require.Error(t, cb.Execute(func() error { return errFalla }))

	assert.Equal(t, CBClosed, cb.State())
}

func TestBreakerSeRecuperaViaHalfOpen(t *testing.T) {
	cb := breakerDePrueba(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFalla })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestBreakerProbeFallidoReabre(t *testing.T) {
	cb := breakerDePrueba(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFalla })
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errFalla }))
	assert.Equal(t, CBOpen, cb.State())
}

func TestEstadosComoTexto(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
