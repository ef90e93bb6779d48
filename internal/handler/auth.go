package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/dto"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/service"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginPage renders the credential form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", vista(c, "", nil))
}

// Login exchanges credentials with the POS API and routes by role:
// ADMIN → /admin, MESERO → /mesero. Errors re-render the form with the
// server's message verbatim when it sent one.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if msg, ok := bindForm(c, &form); !ok {
		c.HTML(http.StatusBadRequest, "login.html", vista(c, msg, nil))
		return
	}

	id, sesion, err := h.svc.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		msg := apierror.MensajeUsuario(err, "Error inesperado del servidor. Intenta nuevamente.")
		c.HTML(http.StatusUnauthorized, "login.html", vista(c, msg, gin.H{"Email": form.Email}))
		return
	}

	c.SetCookie(session.CookieName, id, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, rutaPanel(sesion.Usuario.Rol))
}

// Logout clears the session and the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(session.CookieName); err == nil {
		h.svc.Logout(c.Request.Context(), id)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// NoAutorizado renders the forbidden-role page.
func NoAutorizado(c *gin.Context) {
	c.HTML(http.StatusForbidden, "no_autorizado.html", vista(c, "", nil))
}

// Inicio routes the root path by session: logged-in users land on their
// panel, everyone else on the login form.
func Inicio(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		s, err := store.Leer(c.Request.Context(), id)
		if err != nil {
			salirALogin(c)
			return
		}
		c.Redirect(http.StatusFound, rutaPanel(s.Usuario.Rol))
	}
}
