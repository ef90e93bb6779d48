package posapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

// ItemPayload is the wire shape for order items — only the product id and
// quantity travel; the display snapshot stays local.
type ItemPayload struct {
	ProductoID int64 `json:"productId"`
	Cantidad   int   `json:"quantity"`
}

// numero renders a decimal as a bare JSON number. decimal.Decimal marshals to
// a quoted string by default, but the API expects numeric money fields.
func numero(d decimal.Decimal) json.Number { return json.Number(d.String()) }

// Login exchanges credentials for a token + user pair. No auth header.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Sesion, error) {
	body := map[string]string{"email": email, "password": password}
	var s model.Sesion
	if err := c.do(ctx, "", http.MethodPost, "/api/auth/login", body, &s, false); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListarProductos returns the full admin catalog.
func (c *Client) ListarProductos(ctx context.Context, sesionID string) ([]model.Producto, error) {
	var productos []model.Producto
	if err := c.do(ctx, sesionID, http.MethodGet, "/products", nil, &productos, true); err != nil {
		return nil, err
	}
	return productos, nil
}

// ListarProductosPublicos returns the catalog the waiter view uses. The
// upstream endpoint takes no bearer token unless configured otherwise.
func (c *Client) ListarProductosPublicos(ctx context.Context, sesionID string) ([]model.Producto, error) {
	var productos []model.Producto
	if err := c.do(ctx, sesionID, http.MethodGet, "/products/public", nil, &productos, c.productosPublicosAuth); err != nil {
		return nil, err
	}
	return productos, nil
}

// productoPayload is the outbound wire shape of a product: price travels as a
// JSON number, not the quoted string decimal.Decimal would produce.
type productoPayload struct {
	ID        int64       `json:"id"`
	Nombre    string      `json:"name"`
	Categoria string      `json:"category"`
	Precio    json.Number `json:"price"`
	Stock     int         `json:"stock"`
}

// ActualizarProducto sends the full product record.
func (c *Client) ActualizarProducto(ctx context.Context, sesionID string, p model.Producto) error {
	body := productoPayload{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Categoria: p.Categoria,
		Precio:    numero(p.Precio),
		Stock:     p.Stock,
	}
	path := fmt.Sprintf("/products/%d", p.ID)
	return c.do(ctx, sesionID, http.MethodPut, path, body, nil, true)
}

// ListarPedidos returns all current orders.
func (c *Client) ListarPedidos(ctx context.Context, sesionID string) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	if err := c.do(ctx, sesionID, http.MethodGet, "/orders", nil, &pedidos, true); err != nil {
		return nil, err
	}
	return pedidos, nil
}

// CrearPedido commits a full pending item list as a single request.
func (c *Client) CrearPedido(ctx context.Context, sesionID, mesa string, items []ItemPayload) error {
	body := struct {
		Mesa  string        `json:"table"`
		Items []ItemPayload `json:"items"`
	}{Mesa: mesa, Items: items}
	return c.do(ctx, sesionID, http.MethodPost, "/orders", body, nil, true)
}

// AgregarItems appends items to an open order.
func (c *Client) AgregarItems(ctx context.Context, sesionID string, pedidoID int64, items []ItemPayload) error {
	body := struct {
		Items []ItemPayload `json:"items"`
	}{Items: items}
	path := fmt.Sprintf("/orders/%d/add-item", pedidoID)
	return c.do(ctx, sesionID, http.MethodPatch, path, body, nil, true)
}

// CerrarPedido closes an order carrying its tip as a JSON number.
func (c *Client) CerrarPedido(ctx context.Context, sesionID string, pedidoID int64, propina decimal.Decimal) error {
	body := struct {
		Propina json.Number `json:"tip"`
	}{Propina: numero(propina)}
	path := fmt.Sprintf("/orders/%d/close", pedidoID)
	return c.do(ctx, sesionID, http.MethodPatch, path, body, nil, true)
}

// EliminarPedido deletes an order in any state.
func (c *Client) EliminarPedido(ctx context.Context, sesionID string, pedidoID int64) error {
	path := fmt.Sprintf("/orders/%d", pedidoID)
	return c.do(ctx, sesionID, http.MethodDelete, path, nil, nil, true)
}

// CierreDia triggers the server-side end-of-day aggregation. The summary
// comes back wrapped in a {cierre: …} envelope. Unauthenticated upstream
// unless configured otherwise.
func (c *Client) CierreDia(ctx context.Context, sesionID string) (*model.Cierre, error) {
	var out struct {
		Cierre *model.Cierre `json:"cierre"`
	}
	if err := c.do(ctx, sesionID, http.MethodPost, "/orders/cierre-dia", nil, &out, c.cierreDiaConAuth); err != nil {
		return nil, err
	}
	return out.Cierre, nil
}

// ListarCierres returns the full settlement history — no pagination upstream.
func (c *Client) ListarCierres(ctx context.Context, sesionID string) ([]model.Cierre, error) {
	var cierres []model.Cierre
	if err := c.do(ctx, sesionID, http.MethodGet, "/orders/cierres", nil, &cierres, true); err != nil {
		return nil, err
	}
	return cierres, nil
}
