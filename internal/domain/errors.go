package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Política de acceso.
	ErrAccessDenied         = errors.New("no tiene permisos para acceder a esta sección")
	ErrNavigationRedirected = errors.New("acceso no autorizado, redirigido al dashboard")

	// Editor de líneas (venta/compra).
	ErrInvalidOperation = errors.New("operación no permitida en este modo")
	ErrLineNotFound     = errors.New("línea inexistente")
	ErrValidationFailed = errors.New("el documento no es válido")
	ErrEditorBusy       = errors.New("el documento se está enviando")

	// Backend REST.
	ErrBackendUnavailable = errors.New("backend no disponible")
	ErrBackendRejected    = errors.New("el backend rechazó la operación")
)
