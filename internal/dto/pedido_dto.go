package dto

// AgregarItemForm adds one product/quantity line to the pending cart.
// Mesa rides along so the table label survives dialog re-renders.
type AgregarItemForm struct {
	ProductoID int64  `form:"producto_id" validate:"required"`
	Cantidad   int    `form:"cantidad"`
	Mesa       string `form:"mesa"`
}

// QuitarItemForm removes a pending line.
type QuitarItemForm struct {
	ProductoID int64 `form:"producto_id" validate:"required"`
}

// CerrarPedidoForm closes an order. Propina stays a raw string: a missing or
// non-numeric tip means zero and never blocks the close.
type CerrarPedidoForm struct {
	Propina string `form:"propina"`
}
