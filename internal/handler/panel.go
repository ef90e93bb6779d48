package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
)

// PanelHandler renders the single role-parameterized panel that replaces the
// duplicated admin/waiter pages: same order board for both roles, catalog
// management and day-close only for ADMIN.
type PanelHandler struct {
	productos service.ProductoService
	pedidos   service.PedidoService
	cierres   service.CierreService
}

func NewPanelHandler(productos service.ProductoService, pedidos service.PedidoService, cierres service.CierreService) *PanelHandler {
	return &PanelHandler{productos: productos, pedidos: pedidos, cierres: cierres}
}

// Panel serves GET /admin and GET /mesero. Both lists are fetched fresh on
// every mount; ?buscar= filters the catalog by name.
func (h *PanelHandler) Panel(c *gin.Context) {
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)
	buscar := c.Query("buscar")

	productos, err := h.productos.Listar(c.Request.Context(), sesionID, s.Usuario.Rol, buscar)
	if err != nil {
		if esSesionPerdida(err) {
			salirALogin(c)
			return
		}
		// The page still renders with an empty list.
		productos = nil
	}

	pedidos, pedErr := h.pedidos.Listar(c.Request.Context(), sesionID)
	if pedErr != nil {
		if esSesionPerdida(pedErr) {
			salirALogin(c)
			return
		}
		pedidos = nil
	}

	h.renderPanel(c, s.Usuario.Rol, "", productos, pedidos, buscar)
}

// renderPanel is shared by the page mount and by mutation handlers that
// re-render in place with fresh lists plus an alert.
func (h *PanelHandler) renderPanel(c *gin.Context, rol, alerta string, productos []model.Producto, pedidos []model.Pedido, buscar string) {
	estado, resumen := h.cierres.Estado()
	c.HTML(http.StatusOK, "panel.html", vista(c, alerta, gin.H{
		"EsAdmin":      rol == model.RolAdmin,
		"Productos":    productos,
		"Pedidos":      pedidos,
		"Buscar":       buscar,
		"EstadoCierre": estado.String(),
		"Cierre":       resumen,
	}))
}

// panelConRefresco renders the panel after a mutation using the wholesale
// refetch the service returned.
func (h *PanelHandler) panelConRefresco(c *gin.Context, alerta string, r *service.Refresco) {
	s := middleware.Sesion(c)
	h.renderPanel(c, s.Usuario.Rol, alerta, r.Productos, r.Pedidos, "")
}

// panelConError re-renders the panel after a failed mutation: lists come from
// a fresh mount fetch, state mutations did not happen.
func (h *PanelHandler) panelConError(c *gin.Context, err error, generico string) {
	if esSesionPerdida(err) {
		salirALogin(c)
		return
	}
	s := middleware.Sesion(c)
	sesionID := middleware.SesionID(c)
	productos, _ := h.productos.Listar(c.Request.Context(), sesionID, s.Usuario.Rol, "")
	pedidos, _ := h.pedidos.Listar(c.Request.Context(), sesionID)
	h.renderPanel(c, s.Usuario.Rol, apierror.MensajeUsuario(err, generico), productos, pedidos, "")
}
