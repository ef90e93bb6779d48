package service

import (
	"context"
	"strings"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
)

type ProductoService interface {
	// Listar fetches the catalog the given role is allowed to see and applies
	// the free-text name filter locally (the upstream list endpoints take no
	// query parameters).
	Listar(ctx context.Context, sesionID, rol, filtro string) ([]model.Producto, error)
	// Actualizar sends the full product record, then re-fetches the catalog.
	Actualizar(ctx context.Context, sesionID, rol string, p model.Producto) ([]model.Producto, error)
}

type productoService struct {
	api *posapi.Client
}

func NewProductoService(api *posapi.Client) ProductoService {
	return &productoService{api: api}
}

func (s *productoService) Listar(ctx context.Context, sesionID, rol, filtro string) ([]model.Producto, error) {
	productos, err := s.fetch(ctx, sesionID, rol)
	if err != nil {
		return nil, err
	}
	if filtro == "" {
		return productos, nil
	}

	needle := strings.ToLower(filtro)
	filtrados := make([]model.Producto, 0, len(productos))
	for _, p := range productos {
		if strings.Contains(strings.ToLower(p.Nombre), needle) {
			filtrados = append(filtrados, p)
		}
	}
	return filtrados, nil
}

func (s *productoService) Actualizar(ctx context.Context, sesionID, rol string, p model.Producto) ([]model.Producto, error) {
	if err := s.api.ActualizarProducto(ctx, sesionID, p); err != nil {
		return nil, err
	}
	// Post-mutation invalidation contract: the displayed catalog is always a
	// fresh fetch, never a local merge.
	return s.fetch(ctx, sesionID, rol)
}

// fetch picks the endpoint by role: the waiter view reads the public catalog.
func (s *productoService) fetch(ctx context.Context, sesionID, rol string) ([]model.Producto, error) {
	if rol == model.RolMesero {
		return s.api.ListarProductosPublicos(ctx, sesionID)
	}
	return s.api.ListarProductos(ctx, sesionID)
}
