package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/middleware"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
)

// CierreHandler drives the admin-only day-close flow and the settlement
// history view.
type CierreHandler struct {
	cierres service.CierreService
	panel   *PanelHandler
}

func NewCierreHandler(cierres service.CierreService, panel *PanelHandler) *CierreHandler {
	return &CierreHandler{cierres: cierres, panel: panel}
}

// Vista renders whatever step the flow is in: confirmation dialog, in-flight
// notice, or the result summary.
func (h *CierreHandler) Vista(c *gin.Context) {
	estado, resumen := h.cierres.Estado()
	c.HTML(http.StatusOK, "cierre.html", vista(c, "", gin.H{
		"Estado": estado.String(),
		"Cierre": resumen,
		"PDF":    h.cierres.RutaPDF() != "",
	}))
}

// Confirmar opens the confirmation step.
func (h *CierreHandler) Confirmar(c *gin.Context) {
	h.cierres.Confirmar()
	c.Redirect(http.StatusFound, "/cierre")
}

// Cancelar backs out to the panel.
func (h *CierreHandler) Cancelar(c *gin.Context) {
	h.cierres.Cancelar()
	c.Redirect(http.StatusFound, "/admin")
}

// Ejecutar runs the server-side aggregation. Failure keeps the flow in
// confirmando so the retry skips re-confirmation.
func (h *CierreHandler) Ejecutar(c *gin.Context) {
	_, err := h.cierres.Ejecutar(c.Request.Context(), middleware.SesionID(c))
	if err != nil {
		if esSesionPerdida(err) {
			salirALogin(c)
			return
		}
		estado, resumen := h.cierres.Estado()
		c.HTML(http.StatusOK, "cierre.html", vista(c,
			apierror.MensajeUsuario(err, "No se pudo completar el cierre del dia."),
			gin.H{"Estado": estado.String(), "Cierre": resumen, "PDF": false}))
		return
	}
	c.Redirect(http.StatusFound, "/cierre")
}

// Descartar dismisses the result view and returns to the panel.
func (h *CierreHandler) Descartar(c *gin.Context) {
	h.cierres.Descartar()
	c.Redirect(http.StatusFound, "/admin")
}

// PDF downloads the last generated summary.
func (h *CierreHandler) PDF(c *gin.Context) {
	path := h.cierres.RutaPDF()
	if path == "" {
		c.Redirect(http.StatusFound, "/cierre")
		return
	}
	c.FileAttachment(path, "cierre.pdf")
}

// Historial fetches the full settlement history; on failure the view does
// not open and the panel shows the error.
func (h *CierreHandler) Historial(c *gin.Context) {
	cierres, err := h.cierres.Historial(c.Request.Context(), middleware.SesionID(c))
	if err != nil {
		h.panel.panelConError(c, err, "Error al obtener historial de cierres.")
		return
	}
	c.HTML(http.StatusOK, "historial.html", vista(c, "", gin.H{"Cierres": cierres}))
}
