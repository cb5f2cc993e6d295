package entity

import "time"

// Session representa la sesión de un usuario en la consola.
// Role y DisplayName los entrega el backend en el login; la consola nunca autentica por sí misma.
type Session struct {
	ID            string
	UserID        string
	Username      string
	DisplayName   string
	Email         string
	Role          string
	BackendCookie string // cookie de sesión del backend, se reenvía en cada llamada
	ActivePage    string // vacío hasta la primera navegación
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Expired indica si la sesión venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
