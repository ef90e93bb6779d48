package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPedido is one product/quantity line of an order. Producto is an
// optional embedded snapshot for display; only ProductoID and Cantidad
// travel back to the API.
type ItemPedido struct {
	ProductoID int64     `json:"productId"`
	Cantidad   int       `json:"quantity"`
	Producto   *Producto `json:"product,omitempty"`
}

// Subtotal is the optimistic local display value (snapshot price × quantity).
// The authoritative total is always server-computed.
func (i ItemPedido) Subtotal() decimal.Decimal {
	if i.Producto == nil {
		return decimal.Zero
	}
	return i.Producto.Precio.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

// Pedido is a table order. Total is server-computed; the client never derives
// it from the items. An order transitions open→closed exactly once, carrying
// a tip; deletion is allowed in any state (the server enforces anything more).
type Pedido struct {
	ID       int64            `json:"id"`
	Mesa     string           `json:"table"`
	Total    decimal.Decimal  `json:"total"`
	Propina  *decimal.Decimal `json:"tip,omitempty"`
	Cerrado  bool             `json:"isClosed"`
	CreadoEl time.Time        `json:"createdAt"`
	Items    []ItemPedido     `json:"items"`
}
