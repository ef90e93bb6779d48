package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/dto"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
)

// PedidosHandler drives the order workflow dialogs for both roles: the
// pending cart (new order / append), the tip dialog, and the delete
// confirmation.
type PedidosHandler struct {
	pedidos   service.PedidoService
	productos service.ProductoService
	panel     *PanelHandler
}

func NewPedidosHandler(pedidos service.PedidoService, productos service.ProductoService, panel *PanelHandler) *PedidosHandler {
	return &PedidosHandler{pedidos: pedidos, productos: productos, panel: panel}
}

// ── Cart dialog ───────────────────────────────────────────────────────────────

// NuevoCarrito opens a new-order cart and shows the dialog.
func (h *PedidosHandler) NuevoCarrito(c *gin.Context) {
	h.pedidos.AbrirCarrito(middleware.SesionID(c), 0)
	c.Redirect(http.StatusFound, "/pedidos/carrito")
}

// CarritoParaPedido opens an append cart for an existing order.
func (h *PedidosHandler) CarritoParaPedido(c *gin.Context) {
	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Pedido invalido.")
		return
	}
	h.pedidos.AbrirCarrito(middleware.SesionID(c), pedidoID)
	c.Redirect(http.StatusFound, "/pedidos/carrito")
}

// Carrito renders the dialog: product selector, quantity, pending lines.
func (h *PedidosHandler) Carrito(c *gin.Context) {
	h.renderCarrito(c, "")
}

func (h *PedidosHandler) renderCarrito(c *gin.Context, alerta string) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	carro := h.pedidos.CarritoActual(sesionID)
	if carro == nil {
		c.Redirect(http.StatusFound, rutaPanel(s.Usuario.Rol))
		return
	}

	productos, err := h.productos.Listar(c.Request.Context(), sesionID, s.Usuario.Rol, "")
	if err != nil {
		if esSesionPerdida(err) {
			salirALogin(c)
			return
		}
		productos = nil
	}

	c.HTML(http.StatusOK, "carrito.html", vista(c, alerta, gin.H{
		"Carrito":   carro,
		"Productos": productos,
	}))
}

// AgregarItem validates one line against the loaded catalog and accumulates
// it. Rejections leave the pending list untouched and re-render with the
// message.
func (h *PedidosHandler) AgregarItem(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	var form dto.AgregarItemForm
	if msg, ok := bindForm(c, &form); !ok {
		h.renderCarrito(c, msg)
		return
	}

	err := h.pedidos.AgregarAlCarrito(c.Request.Context(), sesionID, s.Usuario.Rol, form.ProductoID, form.Cantidad, form.Mesa)
	if err != nil {
		if esSesionPerdida(err) {
			salirALogin(c)
			return
		}
		h.renderCarrito(c, apierror.MensajeUsuario(err, "No se pudo agregar el producto."))
		return
	}
	h.renderCarrito(c, "")
}

// QuitarItem drops one pending line.
func (h *PedidosHandler) QuitarItem(c *gin.Context) {
	var form dto.QuitarItemForm
	if msg, ok := bindForm(c, &form); !ok {
		h.renderCarrito(c, msg)
		return
	}
	h.pedidos.QuitarDelCarrito(middleware.SesionID(c), form.ProductoID)
	h.renderCarrito(c, "")
}

// CancelarCarrito dismisses the dialog: the pending list is discarded whole.
func (h *PedidosHandler) CancelarCarrito(c *gin.Context) {
	s := middleware.Sesion(c)
	h.pedidos.DescartarCarrito(middleware.SesionID(c))
	c.Redirect(http.StatusFound, rutaPanel(s.Usuario.Rol))
}

// GuardarCarrito commits the pending list as one request and re-renders the
// panel with freshly fetched orders and products.
func (h *PedidosHandler) GuardarCarrito(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	carro := h.pedidos.CarritoActual(sesionID)
	esNuevo := carro == nil || carro.EsNuevo()

	refresco, err := h.pedidos.Guardar(c.Request.Context(), sesionID, s.Usuario.Rol)
	if err != nil {
		if esSesionPerdida(err) {
			salirALogin(c)
			return
		}
		// Validation and business failures keep the dialog (and the cart) open.
		// With no cart to show, the message lands on the panel instead of
		// being dropped by the dialog's redirect.
		if h.pedidos.CarritoActual(sesionID) == nil {
			h.panel.panelConError(c, err, "Error al guardar el pedido.")
			return
		}
		h.renderCarrito(c, apierror.MensajeUsuario(err, "Error al guardar el pedido."))
		return
	}

	mensaje := "Pedido creado correctamente."
	if !esNuevo {
		mensaje = "Productos agregados al pedido."
	}
	h.panel.panelConRefresco(c, mensaje, refresco)
}

// ── Close with tip ────────────────────────────────────────────────────────────

// CerrarForm renders the tip dialog. No confirmation step, by contract.
func (h *PedidosHandler) CerrarForm(c *gin.Context) {
	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Pedido invalido.")
		return
	}
	c.HTML(http.StatusOK, "propina.html", vista(c, "", gin.H{"PedidoID": pedidoID}))
}

// Cerrar closes the order; the raw tip string parses to zero when missing or
// non-numeric.
func (h *PedidosHandler) Cerrar(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Pedido invalido.")
		return
	}

	var form dto.CerrarPedidoForm
	_ = c.ShouldBind(&form) // propina is free-form; binding cannot fail it

	pedidos, err := h.pedidos.Cerrar(c.Request.Context(), sesionID, pedidoID, form.Propina)
	if err != nil {
		h.panel.panelConError(c, err, "Error al cerrar el pedido.")
		return
	}

	propina := service.ParsePropina(form.Propina)
	productos, _ := h.productos.Listar(c.Request.Context(), sesionID, s.Usuario.Rol, "")
	h.panel.renderPanel(c, s.Usuario.Rol,
		fmt.Sprintf("Pedido #%d cerrado con propina de $%s", pedidoID, propina.StringFixed(2)),
		productos, pedidos, "")
}

// ── Delete with confirmation ──────────────────────────────────────────────────

// EliminarForm renders the confirmation naming the order id.
func (h *PedidosHandler) EliminarForm(c *gin.Context) {
	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Pedido invalido.")
		return
	}
	c.HTML(http.StatusOK, "confirmar_eliminar.html", vista(c, "", gin.H{"PedidoID": pedidoID}))
}

// Eliminar deletes after confirmation and re-renders with fresh lists (stock
// may have been restored server-side). No undo.
func (h *PedidosHandler) Eliminar(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)

	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.panel.panelConError(c, err, "Pedido invalido.")
		return
	}

	refresco, err := h.pedidos.Eliminar(c.Request.Context(), sesionID, s.Usuario.Rol, pedidoID)
	if err != nil {
		h.panel.panelConError(c, err, "Error al eliminar el pedido.")
		return
	}
	h.panel.panelConRefresco(c, "Pedido eliminado.", refresco)
}
