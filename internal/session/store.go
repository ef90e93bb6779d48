// Package session owns the lifecycle of the per-browser session record: an
// opaque bearer token plus the user it belongs to, keyed by a random cookie
// value. Keeping it server-side in an explicit store keeps the auth guard and
// the API client testable.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

// CookieName is the session cookie set after login.
const CookieName = "comanda_sesion"

// Store persists sessions. Leer returns apierror.ErrSinSesion for an absent,
// expired, or structurally invalid record — callers never see a parse error.
type Store interface {
	Guardar(ctx context.Context, id string, s model.Sesion) error
	Leer(ctx context.Context, id string) (*model.Sesion, error)
	Limpiar(ctx context.Context, id string) error
}

// NuevoID generates a session cookie value.
func NuevoID() string { return uuid.NewString() }

// validar applies the shared read-side checks: a session without a role is as
// good as no session, and a bearer token that is a JWT with a past exp claim
// is dropped proactively instead of waiting for the API's 401.
func validar(s *model.Sesion) error {
	if s == nil || s.Token == "" || !s.Usuario.Valida() {
		return apierror.ErrSinSesion
	}
	if !tokenVigente(s.Token) {
		return apierror.ErrSinSesion
	}
	return nil
}

// tokenVigente best-effort checks the token's exp claim without verifying the
// signature (the signing key lives in the remote API). Opaque non-JWT tokens
// pass through untouched.
func tokenVigente(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
