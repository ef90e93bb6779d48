package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

type cierreFalso struct {
	mu        sync.Mutex
	fallar    bool
	fallar401 bool
	llamadas  int
}

func (f *cierreFalso) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders/cierre-dia", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.llamadas++
		fallar := f.fallar
		fallar401 := f.fallar401
		f.mu.Unlock()
		if fallar401 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"No autorizado"}`))
			return
		}
		if fallar {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"No hay pedidos cerrados hoy"}`))
			return
		}
		_, _ = w.Write([]byte(`{"cierre":{"fecha":"2026-08-30T00:00:00Z","pedidosCerrados":9,"totalPropinas":"31.50","totalVentas":"842.00"}}`))
	})
	mux.HandleFunc("GET /orders/cierres", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"fecha":"2026-08-29T00:00:00Z","pedidosCerrados":4,"totalPropinas":"10.00","totalVentas":"300.00"}]`))
	})
	return mux
}

func servicioDeCierres(t *testing.T, f *cierreFalso) (CierreService, string, func()) {
	t.Helper()

	srv := httptest.NewServer(f.handler())

	store := session.NewMemoryStore(time.Hour)
	id := session.NuevoID()
	require.NoError(t, store.Guardar(context.Background(), id, model.Sesion{
		Token:   "token-123",
		Usuario: model.Usuario{ID: 1, Nombre: "Ana", Rol: model.RolAdmin},
	}))

	api := posapi.NewClient(&config.Config{APIURL: srv.URL}, store, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	svc := NewCierreService(api, nil, t.TempDir(), "")
	return svc, id, srv.Close
}

func TestFlujoDeCierreCompleto(t *testing.T) {
	svc, id, done := servicioDeCierres(t, &cierreFalso{})
	defer done()

	estado, _ := svc.Estado()
	assert.Equal(t, CierreInactivo, estado)

	svc.Confirmar()
	estado, _ = svc.Estado()
	assert.Equal(t, CierreConfirmando, estado)

	cierre, err := svc.Ejecutar(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 9, cierre.PedidosCerrados)
	assert.True(t, decimal.NewFromFloat(842).Equal(cierre.TotalVentas))

	estado, resumen := svc.Estado()
	assert.Equal(t, CierreCerrado, estado)
	require.NotNil(t, resumen)
	assert.Equal(t, 9, resumen.PedidosCerrados)

	// The summary PDF was generated alongside.
	assert.NotEmpty(t, svc.RutaPDF())

	svc.Descartar()
	estado, resumen = svc.Estado()
	assert.Equal(t, CierreInactivo, estado)
	assert.Nil(t, resumen)
}

func TestCancelarVuelveAInactivo(t *testing.T) {
	svc, _, done := servicioDeCierres(t, &cierreFalso{})
	defer done()

	svc.Confirmar()
	svc.Cancelar()

	estado, _ := svc.Estado()
	assert.Equal(t, CierreInactivo, estado)
}

func TestEjecutarSinConfirmarFalla(t *testing.T) {
	f := &cierreFalso{}
	svc, id, done := servicioDeCierres(t, f)
	defer done()

	_, err := svc.Ejecutar(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apierror.EsValidacion(err))
	assert.Zero(t, f.llamadas)
}

func TestFallaDelCierreRegresaAConfirmando(t *testing.T) {
	f := &cierreFalso{fallar: true}
	svc, id, done := servicioDeCierres(t, f)
	defer done()

	svc.Confirmar()

	_, err := svc.Ejecutar(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, "No hay pedidos cerrados hoy", err.Error())

	// Retry without re-opening the confirmation.
	estado, _ := svc.Estado()
	assert.Equal(t, CierreConfirmando, estado)

	f.mu.Lock()
	f.fallar = false
	f.mu.Unlock()

	cierre, err := svc.Ejecutar(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 9, cierre.PedidosCerrados)
}

func TestRechazoDelServidorMantieneElFlujoEnConfirmando(t *testing.T) {
	// A 401 from the unauthenticated cierre-dia endpoint is a server answer to
	// the operation; the admin keeps the session and can retry.
	f := &cierreFalso{fallar401: true}
	svc, id, done := servicioDeCierres(t, f)
	defer done()

	svc.Confirmar()

	_, err := svc.Ejecutar(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apierror.EsNegocio(err))
	assert.Equal(t, "No autorizado", err.Error())

	estado, _ := svc.Estado()
	assert.Equal(t, CierreConfirmando, estado)
}

func TestHistorial(t *testing.T) {
	svc, id, done := servicioDeCierres(t, &cierreFalso{})
	defer done()

	cierres, err := svc.Historial(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, cierres, 1)
	assert.Equal(t, 4, cierres[0].PedidosCerrados)
	assert.True(t, decimal.NewFromInt(300).Equal(cierres[0].TotalVentas))
}

func TestEstadosDelCierreComoTexto(t *testing.T) {
	assert.Equal(t, "inactivo", CierreInactivo.String())
	assert.Equal(t, "confirmando", CierreConfirmando.String())
	assert.Equal(t, "cerrando", CierreCerrando.String())
	assert.Equal(t, "cerrado", CierreCerrado.String())
}
