package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

func servicioDeAuth(t *testing.T, respuesta string, status int) (AuthService, session.Store, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respuesta))
	}))

	store := session.NewMemoryStore(time.Hour)
	api := posapi.NewClient(&config.Config{APIURL: srv.URL}, store, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	return NewAuthService(api, store), store, srv.Close
}

func TestLoginGuardaLaSesion(t *testing.T) {
	svc, store, done := servicioDeAuth(t,
		`{"token":"token-abc","user":{"id":1,"name":"Ana","email":"ana@celeste.pe","role":"ADMIN"}}`,
		http.StatusOK)
	defer done()

	id, sesion, err := svc.Login(context.Background(), "ana@celeste.pe", "secreto")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, model.RolAdmin, sesion.Usuario.Rol)

	guardada, err := store.Leer(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", guardada.Token)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	svc, _, done := servicioDeAuth(t, `{"error":"Credenciales invalidas"}`, http.StatusBadRequest)
	defer done()

	_, _, err := svc.Login(context.Background(), "ana@celeste.pe", "mal")
	require.Error(t, err)
	assert.Equal(t, "Credenciales invalidas", err.Error())
}

func TestLoginRolDesconocido(t *testing.T) {
	svc, _, done := servicioDeAuth(t,
		`{"token":"token-abc","user":{"id":1,"name":"Ana","email":"ana@celeste.pe","role":"COCINA"}}`,
		http.StatusOK)
	defer done()

	_, _, err := svc.Login(context.Background(), "ana@celeste.pe", "secreto")
	require.Error(t, err)
	assert.True(t, apierror.EsValidacion(err))
	assert.Equal(t, "Rol de usuario no reconocido.", err.Error())
}

func TestLoginRespuestaSinToken(t *testing.T) {
	svc, _, done := servicioDeAuth(t,
		`{"user":{"id":1,"name":"Ana","email":"ana@celeste.pe","role":"ADMIN"}}`,
		http.StatusOK)
	defer done()

	_, _, err := svc.Login(context.Background(), "ana@celeste.pe", "secreto")
	assert.ErrorIs(t, err, apierror.ErrRespuestaInvalida)
}

func TestLogoutLimpiaLaSesion(t *testing.T) {
	svc, store, done := servicioDeAuth(t,
		`{"token":"token-abc","user":{"id":1,"name":"Ana","email":"ana@celeste.pe","role":"ADMIN"}}`,
		http.StatusOK)
	defer done()

	id, _, err := svc.Login(context.Background(), "ana@celeste.pe", "secreto")
	require.NoError(t, err)

	svc.Logout(context.Background(), id)

	_, err = store.Leer(context.Background(), id)
	assert.ErrorIs(t, err, apierror.ErrSinSesion)
}
