// Package backend adapta el API REST de inventario a los puertos de la consola.
// Todas las llamadas comparten el mismo contrato: método, ruta, cuerpo JSON de entrada
// y cuerpo JSON o error de salida. Usa net/http de la librería estándar.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.SessionProvider      = (*Client)(nil)
	_ ports.CatalogProvider      = (*Client)(nil)
	_ ports.CounterpartyProvider = (*Client)(nil)
	_ ports.SubmissionGateway    = (*Client)(nil)
	_ ports.PageDataProvider     = (*Client)(nil)
)

// maxErrorBody límite de lectura del cuerpo de error.
const maxErrorBody = 64 << 10

// Error respuesta no exitosa del backend. Unwrap devuelve el error de dominio
// (ErrBackendRejected, ErrBackendUnavailable o ErrUnauthorized).
type Error struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: http %d: %s", e.kind.Error(), e.StatusCode, msg)
}

func (e *Error) Unwrap() error { return e.kind }

// UserMessage mensaje del backend apto para mostrar al usuario.
func (e *Error) UserMessage() string { return strings.TrimSpace(e.Message) }

// Client cliente HTTP del backend.
type Client struct {
	baseURL    string
	routes     config.BackendRoutes
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		routes:     cfg.Routes,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do ejecuta una petición JSON. in y out pueden ser nil. Devuelve la respuesta
// (cuerpo ya consumido) para que el caller lea cabeceras como Set-Cookie.
func (c *Client) do(ctx context.Context, method, path string, cred ports.Credentials, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred.Cookie != "" {
		req.Header.Set("Cookie", cred.Cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, errorFromResponse(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, fmt.Errorf("%w: respuesta inválida de %s: %v", domain.ErrBackendUnavailable, path, err)
	}
	return resp, nil
}

func errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &eb) == nil {
		switch {
		case eb.Error != "":
			msg = eb.Error
		case eb.Message != "":
			msg = eb.Message
		}
	}

	kind := domain.ErrBackendRejected
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = domain.ErrUnauthorized
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusRequestTimeout:
		kind = domain.ErrBackendUnavailable
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg, kind: kind}
}
