// Package order modela el borrador de una venta o compra con líneas dinámicas:
// alta/baja/edición de líneas, recálculo de subtotales y total en aritmética decimal
// exacta, validación previa al envío y proyección al payload del backend.
package order

import "github.com/shopspring/decimal"

// Mode determina de dónde sale el precio y si se permite sobrescribirlo.
type Mode string

const (
	ModeSale     Mode = "sale"
	ModePurchase Mode = "purchase"
)

// Valid indica si el modo es conocido.
func (m Mode) Valid() bool { return m == ModeSale || m == ModePurchase }

// ReceiptType tipo de comprobante del documento.
type ReceiptType string

const (
	ReceiptFactura ReceiptType = "FACTURA"
	ReceiptBoleta  ReceiptType = "BOLETA"
)

// Valid indica si el tipo pertenece al conjunto cerrado de comprobantes.
func (r ReceiptType) Valid() bool { return r == ReceiptFactura || r == ReceiptBoleta }

// LineItem una línea de producto del borrador.
// Subtotal es derivado: lo escribe solo recompute.
type LineItem struct {
	ProductRef string
	UnitPrice  decimal.Decimal
	Quantity   decimal.Decimal
	StockLimit *decimal.Decimal // solo venta: stock del catálogo al elegir el producto
	Subtotal   decimal.Decimal
}

// Blank indica que la línea no tiene producto.
func (l LineItem) Blank() bool { return l.ProductRef == "" }

// Complete indica que la línea tiene producto y cantidad positiva.
func (l LineItem) Complete() bool {
	return l.ProductRef != "" && l.Quantity.GreaterThan(decimal.Zero)
}

// Draft documento de venta o compra en edición.
type Draft struct {
	Mode            Mode
	CounterpartyRef string
	ReceiptType     ReceiptType
	Lines           []LineItem
	Total           decimal.Decimal
}

func (d Draft) clone() Draft {
	out := d
	out.Lines = make([]LineItem, len(d.Lines))
	for i, l := range d.Lines {
		if l.StockLimit != nil {
			limit := *l.StockLimit
			l.StockLimit = &limit
		}
		out.Lines[i] = l
	}
	return out
}

// CompleteLines devuelve las líneas completas en orden de inserción.
func (d Draft) CompleteLines() []LineItem {
	out := make([]LineItem, 0, len(d.Lines))
	for _, l := range d.Lines {
		if l.Complete() {
			out = append(out, l)
		}
	}
	return out
}
