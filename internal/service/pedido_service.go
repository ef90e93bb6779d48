package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/carrito"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
)

// Refresco bundles the wholesale re-fetch that follows every mutation which
// may have moved stock: both lists come straight from the API, no local merge.
type Refresco struct {
	Pedidos   []model.Pedido
	Productos []model.Producto
}

// PedidoService is the single role-parameterized order workflow behind both
// the admin and waiter panels. Pending carts are keyed by session: one open
// dialog per browser, discarded whole on dismissal.
type PedidoService interface {
	Listar(ctx context.Context, sesionID string) ([]model.Pedido, error)

	// Cart lifecycle — pedidoID 0 opens a new-order cart.
	AbrirCarrito(sesionID string, pedidoID int64)
	CarritoActual(sesionID string) *carrito.Carrito
	AgregarAlCarrito(ctx context.Context, sesionID, rol string, productoID int64, cantidad int, mesa string) error
	QuitarDelCarrito(sesionID string, productoID int64)
	DescartarCarrito(sesionID string)

	// Guardar commits the whole pending list as a single request (create or
	// append depending on the cart's mode) and re-fetches orders + products.
	Guardar(ctx context.Context, sesionID, rol string) (*Refresco, error)

	// Cerrar closes an order with the tip parsed from the raw form string and
	// re-fetches orders. A non-numeric tip never blocks closing.
	Cerrar(ctx context.Context, sesionID string, pedidoID int64, propina string) ([]model.Pedido, error)

	// Eliminar deletes an order (confirmation happens in the handler) and
	// re-fetches orders + products, since stock may be restored server-side.
	Eliminar(ctx context.Context, sesionID, rol string, pedidoID int64) (*Refresco, error)
}

type pedidoService struct {
	api       *posapi.Client
	productos ProductoService

	mu       sync.Mutex
	carritos map[string]*carrito.Carrito // session id → pending cart
}

func NewPedidoService(api *posapi.Client, productos ProductoService) PedidoService {
	return &pedidoService{
		api:       api,
		productos: productos,
		carritos:  make(map[string]*carrito.Carrito),
	}
}

func (s *pedidoService) Listar(ctx context.Context, sesionID string) ([]model.Pedido, error) {
	return s.api.ListarPedidos(ctx, sesionID)
}

// ── Cart ──────────────────────────────────────────────────────────────────────

func (s *pedidoService) AbrirCarrito(sesionID string, pedidoID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pedidoID == 0 {
		s.carritos[sesionID] = carrito.Nuevo()
		return
	}
	s.carritos[sesionID] = carrito.NuevoParaPedido(pedidoID)
}

func (s *pedidoService) CarritoActual(sesionID string) *carrito.Carrito {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carritos[sesionID]
}

func (s *pedidoService) AgregarAlCarrito(ctx context.Context, sesionID, rol string, productoID int64, cantidad int, mesa string) error {
	c := s.CarritoActual(sesionID)
	if c == nil {
		return apierror.NewValidacion("No hay un pedido en curso.")
	}

	// Validate against the currently loaded catalog — fetched fresh so the
	// stock bound reflects the latest successful read.
	catalogo, err := s.productos.Listar(ctx, sesionID, rol, "")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.Mesa = mesa
	return c.Agregar(catalogo, productoID, cantidad)
}

func (s *pedidoService) QuitarDelCarrito(sesionID string, productoID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.carritos[sesionID]; c != nil {
		c.Quitar(productoID)
	}
}

func (s *pedidoService) DescartarCarrito(sesionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carritos, sesionID)
}

// ── Mutations ─────────────────────────────────────────────────────────────────

func (s *pedidoService) Guardar(ctx context.Context, sesionID, rol string) (*Refresco, error) {
	c := s.CarritoActual(sesionID)
	if c == nil || c.Vacio() {
		if c == nil || c.EsNuevo() {
			return nil, apierror.NewValidacion("Debes asignar una mesa y agregar productos.")
		}
		return nil, apierror.NewValidacion("Debes seleccionar un pedido y agregar productos.")
	}
	if c.EsNuevo() && c.Mesa == "" {
		return nil, apierror.NewValidacion("Debes asignar una mesa y agregar productos.")
	}

	items := make([]posapi.ItemPayload, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, posapi.ItemPayload{ProductoID: item.ProductoID, Cantidad: item.Cantidad})
	}

	var err error
	if c.EsNuevo() {
		err = s.api.CrearPedido(ctx, sesionID, c.Mesa, items)
	} else {
		err = s.api.AgregarItems(ctx, sesionID, c.PedidoID, items)
	}
	if err != nil {
		// The pending list survives a failed commit so the user may retry.
		return nil, err
	}

	s.DescartarCarrito(sesionID)
	log.Info().Int64("pedido_id", c.PedidoID).Int("items", len(items)).Msg("pedido guardado")
	return s.refrescar(ctx, sesionID, rol)
}

func (s *pedidoService) Cerrar(ctx context.Context, sesionID string, pedidoID int64, propina string) ([]model.Pedido, error) {
	if pedidoID == 0 {
		return nil, apierror.NewValidacion("Debes seleccionar un pedido.")
	}
	monto := ParsePropina(propina)
	if err := s.api.CerrarPedido(ctx, sesionID, pedidoID, monto); err != nil {
		return nil, err
	}
	log.Info().Int64("pedido_id", pedidoID).Str("propina", monto.String()).Msg("pedido cerrado")
	return s.api.ListarPedidos(ctx, sesionID)
}

func (s *pedidoService) Eliminar(ctx context.Context, sesionID, rol string, pedidoID int64) (*Refresco, error) {
	if err := s.api.EliminarPedido(ctx, sesionID, pedidoID); err != nil {
		return nil, err
	}
	log.Info().Int64("pedido_id", pedidoID).Msg("pedido eliminado")
	return s.refrescar(ctx, sesionID, rol)
}

// refrescar performs the one-fetch-each invalidation after stock-moving
// mutations: orders first, then products.
func (s *pedidoService) refrescar(ctx context.Context, sesionID, rol string) (*Refresco, error) {
	pedidos, err := s.api.ListarPedidos(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	productos, err := s.productos.Listar(ctx, sesionID, rol, "")
	if err != nil {
		return nil, err
	}
	return &Refresco{Pedidos: pedidos, Productos: productos}, nil
}

// ParsePropina turns the raw tip field into an amount: a missing or
// non-numeric tip closes the order with zero, never an error.
func ParsePropina(raw string) decimal.Decimal {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
