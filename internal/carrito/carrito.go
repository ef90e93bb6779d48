// Package carrito implements the pending-cart bookkeeping shared by the
// "nuevo pedido" and "agregar productos" dialogs. It is transient state: the
// whole cart is committed in one API call or discarded when the dialog is
// dismissed — there is no partial save.
package carrito

import (
	"github.com/shopspring/decimal"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

// Carrito accumulates product/quantity pairs in insertion order, bounded by
// each product's stock as known at the time of local addition.
type Carrito struct {
	// Mesa is set only in new-order mode.
	Mesa string
	// PedidoID is set only when appending to an open order.
	PedidoID int64

	items []model.ItemPedido
}

// Nuevo returns an empty cart for a brand-new order.
func Nuevo() *Carrito { return &Carrito{} }

// NuevoParaPedido returns an empty cart that appends to an existing order.
func NuevoParaPedido(pedidoID int64) *Carrito { return &Carrito{PedidoID: pedidoID} }

// Agregar adds cantidad units of a catalog product. When the product is
// already pending, the quantities merge and the merged total re-validates
// against stock; a rejected merge leaves the prior quantity untouched.
func (c *Carrito) Agregar(catalogo []model.Producto, productoID int64, cantidad int) error {
	if cantidad <= 0 {
		return apierror.NewValidacion("Cantidad invalida")
	}

	var producto *model.Producto
	for i := range catalogo {
		if catalogo[i].ID == productoID {
			producto = &catalogo[i]
			break
		}
	}
	if producto == nil {
		return apierror.NewValidacion("Producto no encontrado")
	}

	if cantidad > producto.Stock {
		return apierror.NewValidacion("Stock insuficiente (%d disponibles)", producto.Stock)
	}

	for i := range c.items {
		if c.items[i].ProductoID == productoID {
			combinada := c.items[i].Cantidad + cantidad
			if combinada > producto.Stock {
				return apierror.NewValidacion("Stock insuficiente para %s", producto.Nombre)
			}
			c.items[i].Cantidad = combinada
			return nil
		}
	}

	snapshot := *producto
	c.items = append(c.items, model.ItemPedido{
		ProductoID: productoID,
		Cantidad:   cantidad,
		Producto:   &snapshot,
	})
	return nil
}

// Quitar removes a pending line entirely. Unknown ids are a no-op.
func (c *Carrito) Quitar(productoID int64) {
	for i := range c.items {
		if c.items[i].ProductoID == productoID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns the pending lines in insertion order.
func (c *Carrito) Items() []model.ItemPedido { return c.items }

// Vacio reports whether nothing is pending.
func (c *Carrito) Vacio() bool { return len(c.items) == 0 }

// EsNuevo reports whether this cart creates a new order (vs. appending).
func (c *Carrito) EsNuevo() bool { return c.PedidoID == 0 }

// Total is the optimistic display sum of snapshot prices. The server-computed
// order total is authoritative.
func (c *Carrito) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}
