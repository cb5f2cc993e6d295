package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OpenEditorRequest abre un editor de venta o compra.
type OpenEditorRequest struct {
	Mode string `json:"mode" validate:"required,oneof=sale purchase"`
}

// SetProductRequest asigna producto a una línea.
type SetProductRequest struct {
	ProductRef string `json:"product_ref" validate:"required,max=64"`
}

// SetQuantityRequest cantidad como número JSON o string numérico (admite fracciones).
type SetQuantityRequest struct {
	Quantity json.Number `json:"quantity" validate:"required,numeric"`
}

// SetPriceRequest precio unitario (solo compra).
type SetPriceRequest struct {
	UnitPrice json.Number `json:"unit_price" validate:"required,numeric"`
}

type SetCounterpartyRequest struct {
	CounterpartyRef string `json:"counterparty_ref" validate:"required,max=64"`
}

type SetReceiptTypeRequest struct {
	ReceiptType string `json:"receipt_type" validate:"required,oneof=FACTURA BOLETA"`
}

// LineDTO línea del borrador. StockLimit solo en venta con producto elegido.
type LineDTO struct {
	Index       int              `json:"index"`
	ProductRef  string           `json:"product_ref"`
	ProductName string           `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Quantity    decimal.Decimal  `json:"quantity"`
	StockLimit  *decimal.Decimal `json:"stock_limit,omitempty"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Complete    bool             `json:"complete"`
}

// CounterpartyDTO opción de cliente o proveedor.
type CounterpartyDTO struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// CatalogItemDTO opción de producto del editor.
type CatalogItemDTO struct {
	Ref           string          `json:"ref"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Stock         decimal.Decimal `json:"stock"`
}

// EditorOptionsDTO opciones cargadas una sola vez al abrir el editor.
type EditorOptionsDTO struct {
	Counterparties []CounterpartyDTO `json:"counterparties"`
	Catalog        []CatalogItemDTO  `json:"catalog"`
}

// EditorResponse proyección completa del borrador tras cada operación.
type EditorResponse struct {
	ID              string            `json:"id"`
	Mode            string            `json:"mode"`
	CounterpartyRef string            `json:"counterparty_ref"`
	ReceiptType     string            `json:"receipt_type"`
	Lines           []LineDTO         `json:"lines"`
	Total           decimal.Decimal   `json:"total"`
	Submitting      bool              `json:"submitting"`
	Options         *EditorOptionsDTO `json:"options,omitempty"`
}

// ValidationErrorDTO regla violada. Lines lista los índices afectados cuando aplica.
type ValidationErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Lines   []int  `json:"lines,omitempty"`
}

// ValidationResponse resultado de validar el borrador sin enviarlo.
type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []ValidationErrorDTO `json:"errors"`
}

// ReceiptResponse acuse del backend tras registrar el documento.
type ReceiptResponse struct {
	Mode       string          `json:"mode"`
	DocumentID string          `json:"document_id"`
	Number     string          `json:"number"`
	Total      decimal.Decimal `json:"total"`
}
