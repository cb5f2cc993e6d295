package entity

import "github.com/shopspring/decimal"

// Receipt es el acuse del backend al registrar una venta o compra.
type Receipt struct {
	DocumentID string
	Number     string // numero_comprobante, ej. F001-004
	Total      decimal.Decimal
}
