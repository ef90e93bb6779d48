package model

import "github.com/shopspring/decimal"

// Producto is the client-side copy of a catalog product. It is owned by the
// remote API; this process only holds a read-through copy that is replaced
// wholesale after every mutation.
type Producto struct {
	ID        int64           `json:"id"`
	Nombre    string          `json:"name"`
	Categoria string          `json:"category"`
	Precio    decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// Agotado reports whether the product has no stock left.
func (p Producto) Agotado() bool { return p.Stock <= 0 }
