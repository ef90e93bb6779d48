package dto

// EditarProductoForm carries the full product record from the edit dialog.
// Precio stays a raw string so the parse failure message is ours, not the
// binder's.
type EditarProductoForm struct {
	Nombre    string `form:"nombre"    validate:"required,min=2,max=120"`
	Categoria string `form:"categoria" validate:"required"`
	Precio    string `form:"precio"    validate:"required"`
	Stock     int    `form:"stock"     validate:"min=0"`
}
