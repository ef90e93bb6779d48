package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

func sesionValida() model.Sesion {
	return model.Sesion{
		Token: "token-opaco",
		Usuario: model.Usuario{
			ID:     1,
			Nombre: "Ana",
			Email:  "ana@celeste.pe",
			Rol:    model.RolAdmin,
		},
	}
}

func TestMemoryGuardarYLeer(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	id := NuevoID()

	require.NoError(t, store.Guardar(ctx, id, sesionValida()))

	s, err := store.Leer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "token-opaco", s.Token)
	assert.Equal(t, model.RolAdmin, s.Usuario.Rol)
}

func TestMemoryLeerAusente(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Leer(context.Background(), "no-existe")
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}

func TestMemoryExpiraPorTTL(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()
	id := NuevoID()

	require.NoError(t, store.Guardar(ctx, id, sesionValida()))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Leer(ctx, id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}

func TestMemorySesionSinRolSeLimpia(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	id := NuevoID()

	s := sesionValida()
	s.Usuario.Rol = ""
	require.NoError(t, store.Guardar(ctx, id, s))

	_, err := store.Leer(ctx, id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)

	// The invalid record was dropped, not just rejected.
	_, err = store.Leer(ctx, id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}

func TestMemoryLimpiar(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	id := NuevoID()

	require.NoError(t, store.Guardar(ctx, id, sesionValida()))
	require.NoError(t, store.Limpiar(ctx, id))

	_, err := store.Leer(ctx, id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}

func firmarJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	firmado, err := token.SignedString([]byte("clave-de-prueba"))
	require.NoError(t, err)
	return firmado
}

func TestTokenJWTVencidoInvalidaLaSesion(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	id := NuevoID()

	s := sesionValida()
	s.Token = firmarJWT(t, time.Now().Add(-time.Minute))
	require.NoError(t, store.Guardar(ctx, id, s))

	_, err := store.Leer(ctx, id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}

func TestTokenJWTVigentePasa(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	id := NuevoID()

	s := sesionValida()
	s.Token = firmarJWT(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Guardar(ctx, id, s))

	_, err := store.Leer(ctx, id)
	assert.NoError(t, err)
}

func TestTokenOpacoNoSeRechaza(t *testing.T) {
	// Tokens that are not JWTs pass the exp check untouched.
	assert.True(t, tokenVigente("cualquier-cosa"))
}
