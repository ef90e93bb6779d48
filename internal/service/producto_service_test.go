package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

type catalogoFalso struct {
	getAdmin   int
	getPublico int
	puts       int
}

func (f *catalogoFalso) handler() http.Handler {
	productos := []model.Producto{
		{ID: 1, Nombre: "Ceviche Mixto", Categoria: "Entradas", Precio: decimal.NewFromInt(28), Stock: 5},
		{ID: 2, Nombre: "Lomo Saltado", Categoria: "Fondos", Precio: decimal.NewFromFloat(38.50), Stock: 3},
		{ID: 3, Nombre: "Arroz con Mariscos", Categoria: "Fondos", Precio: decimal.NewFromInt(35), Stock: 8},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		f.getAdmin++
		_ = json.NewEncoder(w).Encode(productos)
	})
	mux.HandleFunc("GET /products/public", func(w http.ResponseWriter, r *http.Request) {
		f.getPublico++
		_ = json.NewEncoder(w).Encode(productos)
	})
	mux.HandleFunc("PUT /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.puts++
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func servicioDeProductos(t *testing.T, f *catalogoFalso) (ProductoService, string, func()) {
	t.Helper()

	srv := httptest.NewServer(f.handler())

	store := session.NewMemoryStore(time.Hour)
	id := session.NuevoID()
	require.NoError(t, store.Guardar(context.Background(), id, model.Sesion{
		Token:   "token-123",
		Usuario: model.Usuario{ID: 1, Nombre: "Ana", Rol: model.RolAdmin},
	}))

	api := posapi.NewClient(&config.Config{APIURL: srv.URL}, store, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	return NewProductoService(api), id, srv.Close
}

func TestListarFiltraPorNombreSinDistinguirMayusculas(t *testing.T) {
	svc, id, done := servicioDeProductos(t, &catalogoFalso{})
	defer done()

	productos, err := svc.Listar(context.Background(), id, model.RolAdmin, "ARROZ")
	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, "Arroz con Mariscos", productos[0].Nombre)

	productos, err = svc.Listar(context.Background(), id, model.RolAdmin, "o")
	require.NoError(t, err)
	assert.Len(t, productos, 3)

	productos, err = svc.Listar(context.Background(), id, model.RolAdmin, "pizza")
	require.NoError(t, err)
	assert.Empty(t, productos)
}

func TestListarEligeElEndpointPorRol(t *testing.T) {
	f := &catalogoFalso{}
	svc, id, done := servicioDeProductos(t, f)
	defer done()

	_, err := svc.Listar(context.Background(), id, model.RolAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.getAdmin)
	assert.Zero(t, f.getPublico)

	_, err = svc.Listar(context.Background(), id, model.RolMesero, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.getPublico)
}

func TestActualizarRefrescaElCatalogo(t *testing.T) {
	f := &catalogoFalso{}
	svc, id, done := servicioDeProductos(t, f)
	defer done()

	producto := model.Producto{ID: 2, Nombre: "Lomo Saltado", Categoria: "Fondos", Precio: decimal.NewFromInt(40), Stock: 6}
	productos, err := svc.Actualizar(context.Background(), id, model.RolAdmin, producto)
	require.NoError(t, err)

	assert.Equal(t, 1, f.puts)
	assert.Equal(t, 1, f.getAdmin)
	assert.Len(t, productos, 3)
}
