package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PreviewLine línea completa del borrador con el nombre del producto resuelto.
type PreviewLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// PreviewDocument vista previa imprimible de un borrador (no es un comprobante).
type PreviewDocument struct {
	Title            string // "VENTA" o "COMPRA"
	ReceiptType      string
	CounterpartyName string
	PreparedBy       string
	Date             time.Time
	Lines            []PreviewLine
	Total            decimal.Decimal
	Issues           []string // mensajes de validación pendientes
}

// PreviewRenderer genera la representación PDF del borrador.
type PreviewRenderer interface {
	RenderPreview(ctx context.Context, doc PreviewDocument) ([]byte, error)
}
