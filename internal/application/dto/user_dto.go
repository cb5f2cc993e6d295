package dto

import "time"

// LoginRequest credenciales que se reenvían al backend; la consola no las valida ni guarda.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

// SessionResponse datos del usuario en sesión.
type SessionResponse struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	ActivePage  string    `json:"active_page"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginResponse token de la consola + sesión + menú visible para el rol.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
	Menu    MenuResponse    `json:"menu"`
}

// UserSummaryDTO fila de la página de usuarios.
type UserSummaryDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}
