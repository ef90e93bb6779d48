package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

const (
	SesionKey   = "sesion"
	SesionIDKey = "sesion_id"
)

// SessionGuard resolves the session cookie on every protected page. Absent or
// structurally invalid sessions (the store clears those itself) redirect to
// /login; parse failures are never surfaced to the page. Runs once per
// request, before any role gate.
func SessionGuard(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		s, err := store.Leer(c.Request.Context(), id)
		if err != nil {
			// Treated identically to "absent": drop the cookie and redirect.
			c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(SesionKey, s)
		c.Set(SesionIDKey, id)
		c.Next()
	}
}

// RequireRol redirects to /no-autorizado when the session's role is not in
// the allowed list. Must run after SessionGuard.
func RequireRol(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		s := Sesion(c)
		if s == nil || !allowed[s.Usuario.Rol] {
			c.Redirect(http.StatusFound, "/no-autorizado")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Sesion retrieves the typed session from the Gin context (nil when absent).
func Sesion(c *gin.Context) *model.Sesion {
	s, _ := c.Get(SesionKey)
	sesion, _ := s.(*model.Sesion)
	return sesion
}

// SesionID retrieves the session cookie value from the Gin context.
func SesionID(c *gin.Context) string {
	return c.GetString(SesionIDKey)
}
