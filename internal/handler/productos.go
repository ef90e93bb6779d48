package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/dto"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
)

// ProductosHandler serves the admin-only catalog edit dialog.
type ProductosHandler struct {
	productos service.ProductoService
	panel     *PanelHandler
}

func NewProductosHandler(productos service.ProductoService, panel *PanelHandler) *ProductosHandler {
	return &ProductosHandler{productos: productos, panel: panel}
}

// Editar renders the edit form pre-filled with the product's current values.
func (h *ProductosHandler) Editar(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Producto invalido.")
		return
	}

	// The dialog always edits the latest server copy.
	productos, err := h.productos.Listar(c.Request.Context(), sesionID, s.Usuario.Rol, "")
	if err != nil {
		h.panel.panelConError(c, err, "No se pudo cargar el producto.")
		return
	}
	for _, p := range productos {
		if p.ID == id {
			c.HTML(http.StatusOK, "editar_producto.html", vista(c, "", gin.H{"Producto": p}))
			return
		}
	}
	h.panel.panelConError(c, nil, "Producto no encontrado.")
}

// Actualizar sends the full product record, then re-renders the panel with a
// freshly fetched catalog.
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Producto invalido.")
		return
	}

	var form dto.EditarProductoForm
	if msg, ok := bindForm(c, &form); !ok {
		c.HTML(http.StatusBadRequest, "editar_producto.html", vista(c, msg, gin.H{
			"Producto": model.Producto{ID: id, Nombre: form.Nombre, Categoria: form.Categoria, Stock: form.Stock},
		}))
		return
	}

	precio, err := decimal.NewFromString(form.Precio)
	if err != nil || precio.IsNegative() {
		c.HTML(http.StatusBadRequest, "editar_producto.html", vista(c, "Precio invalido.", gin.H{
			"Producto": model.Producto{ID: id, Nombre: form.Nombre, Categoria: form.Categoria, Stock: form.Stock},
		}))
		return
	}

	producto := model.Producto{
		ID:        id,
		Nombre:    form.Nombre,
		Categoria: form.Categoria,
		Precio:    precio,
		Stock:     form.Stock,
	}

	productos, err := h.productos.Actualizar(c.Request.Context(), sesionID, s.Usuario.Rol, producto)
	if err != nil {
		h.panel.panelConError(c, err, "No se pudo actualizar el producto.")
		return
	}

	pedidos, _ := h.panel.pedidos.Listar(c.Request.Context(), sesionID)
	h.panel.renderPanel(c, s.Usuario.Rol, "Producto actualizado correctamente.", productos, pedidos, "")
}
