package apierror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMensajeUsuario(t *testing.T) {
	casos := []struct {
		nombre   string
		err      error
		esperado string
	}{
		{"nil", nil, ""},
		{"validacion", NewValidacion("Cantidad invalida"), "Cantidad invalida"},
		{"negocio", NewNegocio(409, "Stock insuficiente"), "Stock insuficiente"},
		{"negocio sin mensaje", NewNegocio(500, ""), "el servidor respondio con estado 500"},
		{"no autorizado", ErrNoAutorizado, "Sesion expirada o sin permisos. Vuelve a iniciar sesion."},
		{"respuesta invalida", ErrRespuestaInvalida, "Respuesta no valida del servidor."},
		{"servidor caido", ErrServidorNoDisponible, "El servidor no esta disponible. Intenta nuevamente."},
		{"servidor caido envuelto", fmt.Errorf("%w: connection refused", ErrServidorNoDisponible), "El servidor no esta disponible. Intenta nuevamente."},
		{"desconocido", fmt.Errorf("algo raro"), "Error generico"},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			assert.Equal(t, caso.esperado, MensajeUsuario(caso.err, "Error generico"))
		})
	}
}

func TestClasificadores(t *testing.T) {
	assert.True(t, EsValidacion(NewValidacion("x")))
	assert.False(t, EsValidacion(ErrNoAutorizado))

	assert.True(t, EsNegocio(NewNegocio(400, "x")))
	assert.False(t, EsNegocio(NewValidacion("x")))

	envuelto := fmt.Errorf("contexto: %w", NewNegocio(404, "no existe"))
	assert.True(t, EsNegocio(envuelto))
}

func TestNewValidacionFormatea(t *testing.T) {
	err := NewValidacion("Stock insuficiente (%d disponibles)", 3)
	assert.Equal(t, "Stock insuficiente (3 disponibles)", err.Error())
}
