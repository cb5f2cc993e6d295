package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
)

// Login autentica contra el backend y captura su cookie de sesión.
// Credenciales inválidas se reportan como domain.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var out loginResponseWire
	resp, err := c.do(ctx, http.MethodPost, c.routes.Login, ports.Credentials{}, loginRequestWire{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		var be *Error
		if errors.As(err, &be) && be.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, be.Message)
		}
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: login rechazado por el backend", domain.ErrUnauthorized)
	}

	return out.User.toLoginResult(ports.Credentials{Cookie: cookieHeader(resp)}), nil
}

// Me consulta el usuario de la sesión del backend. Sesión vencida: domain.ErrUnauthorized.
func (c *Client) Me(ctx context.Context, cred ports.Credentials) (*ports.LoginResult, error) {
	var out meResponseWire
	if _, err := c.do(ctx, http.MethodGet, c.routes.Me, cred, nil, &out); err != nil {
		return nil, err
	}
	return out.User.toLoginResult(cred), nil
}

func (u sessionUserWire) toLoginResult(cred ports.Credentials) *ports.LoginResult {
	return &ports.LoginResult{
		UserID:      string(u.ID),
		Username:    u.Username,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Credentials: cred,
	}
}

// Logout cierra la sesión del backend. Una sesión ya vencida (401) no es error.
func (c *Client) Logout(ctx context.Context, cred ports.Credentials) error {
	_, err := c.do(ctx, http.MethodPost, c.routes.Logout, cred, nil, nil)
	if err != nil {
		var be *Error
		if errors.As(err, &be) && be.StatusCode == http.StatusUnauthorized {
			return nil
		}
		return err
	}
	return nil
}

// cookieHeader arma el valor de la cabecera Cookie a partir de Set-Cookie.
func cookieHeader(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	cookies := resp.Cookies()
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}
