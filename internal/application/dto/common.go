package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva información estructurada (ej. la lista de reglas de validación violadas).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// FieldError error de validación de un campo del request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
