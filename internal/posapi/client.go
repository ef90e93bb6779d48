// Package posapi is the typed client for the remote restaurant POS REST API.
// It owns bearer-token injection, the 401/403 session-clearing contract, and
// defensive JSON parsing; it performs no business validation of its own.
package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
)

// Client issues requests against the POS API on behalf of a session.
// All state of consequence lives on the remote side; every mutation here is a
// single request with no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sesiones   session.Store
	breaker    *infra.CircuitBreaker

	// Per-endpoint auth requirements (see config) — the upstream day-close
	// and public-catalog endpoints are unauthenticated today.
	cierreDiaConAuth      bool
	productosPublicosAuth bool
}

func NewClient(cfg *config.Config, sesiones session.Store, breaker *infra.CircuitBreaker) *Client {
	return &Client{
		baseURL:               cfg.APIURL,
		httpClient:            &http.Client{Timeout: 30 * time.Second},
		sesiones:              sesiones,
		breaker:               breaker,
		cierreDiaConAuth:      cfg.CierreDiaConAuth,
		productosPublicosAuth: cfg.ProductosPublicosAuth,
	}
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (c *Client) Breaker() *infra.CircuitBreaker { return c.breaker }

// errorEnvelope covers both error shapes the API uses.
type errorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (e errorEnvelope) mensaje() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// do performs one request. When conAuth is true the session is read first and
// its bearer token attached; an absent or invalid session fails before any
// network I/O. A 401/403 answer to an authenticated call clears the session
// and the response body is never handed to the caller.
func (c *Client) do(ctx context.Context, sesionID, method, path string, body, out interface{}, conAuth bool) error {
	var token string
	if conAuth {
		s, err := c.sesiones.Leer(ctx, sesionID)
		if err != nil {
			return apierror.ErrSinSesion
		}
		token = s.Token
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("posapi: marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("posapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Only transport-level failures count against the breaker; any HTTP
	// answer, including 4xx/5xx, proves the API is alive.
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		return apierror.ErrServidorNoDisponible
	}
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("posapi: request failed")
		return fmt.Errorf("%w: %v", apierror.ErrServidorNoDisponible, err)
	}
	defer resp.Body.Close()

	// Only a bearer-carrying call can mean "our session is bad"; a 401/403
	// from an unauthenticated endpoint is an ordinary server answer and falls
	// through to the business-error path below.
	if conAuth && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		_ = c.sesiones.Limpiar(ctx, sesionID)
		return apierror.ErrNoAutorizado
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("posapi: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil && envelope.mensaje() != "" {
			return apierror.NewNegocio(resp.StatusCode, envelope.mensaje())
		}
		return apierror.NewNegocio(resp.StatusCode, "")
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Log the raw text for diagnostics; the caller only sees the
		// generic malformed-response failure.
		log.Error().Str("path", path).Str("body", string(raw)).Msg("posapi: respuesta invalida")
		return apierror.ErrRespuestaInvalida
	}
	return nil
}
