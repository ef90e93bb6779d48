package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cierre is an end-of-day settlement record produced by the remote API.
// Immutable once returned; the client only displays it.
type Cierre struct {
	Fecha           time.Time       `json:"fecha"`
	PedidosCerrados int             `json:"pedidosCerrados"`
	TotalPropinas   decimal.Decimal `json:"totalPropinas"`
	TotalVentas     decimal.Decimal `json:"totalVentas"`
}
