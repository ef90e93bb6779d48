// Package apierror defines the error taxonomy of the front-of-house client.
// Every failure shown to a user maps to exactly one of these categories so
// that handlers can decide between "clear session and redirect" and "flash a
// message and stay on the page" without string matching.
package apierror

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure category.
var (
	// ErrSinSesion: no stored session (or an unreadable one). The caller must
	// redirect to /login without flashing anything.
	ErrSinSesion = errors.New("sesion ausente o invalida")

	// ErrNoAutorizado: the remote API answered 401/403. The session has already
	// been cleared by the time this is returned.
	ErrNoAutorizado = errors.New("sesion expirada o sin permisos")

	// ErrRespuestaInvalida: the remote API returned a body that is not JSON.
	ErrRespuestaInvalida = errors.New("respuesta no valida del servidor")

	// ErrServidorNoDisponible: the remote API is unreachable (network error or
	// open circuit breaker).
	ErrServidorNoDisponible = errors.New("el servidor POS no esta disponible")
)

// NegocioError carries an application-level error message returned by the
// remote API (non-2xx with an "error" or "detail" field). The message is
// shown to the user verbatim.
type NegocioError struct {
	Status  int
	Mensaje string
}

func (e *NegocioError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("el servidor respondio con estado %d", e.Status)
}

// NewNegocio builds a NegocioError from a status code and the server-supplied
// message (may be empty).
func NewNegocio(status int, mensaje string) *NegocioError {
	return &NegocioError{Status: status, Mensaje: mensaje}
}

// ValidacionError is a local validation failure blocked before any network
// call (empty table, bad quantity, insufficient stock). Pending state is
// left intact by contract.
type ValidacionError struct {
	Mensaje string
}

func (e *ValidacionError) Error() string { return e.Mensaje }

func NewValidacion(format string, args ...interface{}) *ValidacionError {
	return &ValidacionError{Mensaje: fmt.Sprintf(format, args...)}
}

// EsValidacion reports whether err is a local validation failure.
func EsValidacion(err error) bool {
	var ve *ValidacionError
	return errors.As(err, &ve)
}

// EsNegocio reports whether err carries a server-side business message.
func EsNegocio(err error) bool {
	var ne *NegocioError
	return errors.As(err, &ne)
}

// MensajeUsuario translates any error into the text shown in a flash alert.
// Unknown errors collapse into a generic failure so internal details never
// reach the page.
func MensajeUsuario(err error, generico string) string {
	switch {
	case err == nil:
		return ""
	case EsValidacion(err), EsNegocio(err):
		return err.Error()
	case errors.Is(err, ErrNoAutorizado):
		return "Sesion expirada o sin permisos. Vuelve a iniciar sesion."
	case errors.Is(err, ErrRespuestaInvalida):
		return "Respuesta no valida del servidor."
	case errors.Is(err, ErrServidorNoDisponible):
		return "El servidor no esta disponible. Intenta nuevamente."
	default:
		return generico
	}
}
