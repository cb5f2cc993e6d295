package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-consola/internal/domain"
)

// Editor es dueño exclusivo de un Draft. Cada operación es síncrona y atómica:
// o aplica el cambio y recalcula, o devuelve error y deja el borrador intacto.
// No es seguro para uso concurrente; la capa de aplicación serializa el acceso.
type Editor struct {
	draft          Draft
	catalog        *Catalog
	counterparties map[string]struct{}
}

// Open crea un borrador con una línea en blanco, sin contraparte y comprobante FACTURA.
// counterparties son las referencias válidas (clientes en venta, proveedores en compra).
func Open(mode Mode, counterparties []string, catalog *Catalog) (*Editor, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: modo %q", domain.ErrInvalidInput, mode)
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	cps := make(map[string]struct{}, len(counterparties))
	for _, ref := range counterparties {
		cps[ref] = struct{}{}
	}
	e := &Editor{
		draft: Draft{
			Mode:        mode,
			ReceiptType: ReceiptFactura,
			Lines:       []LineItem{{}},
		},
		catalog:        catalog,
		counterparties: cps,
	}
	e.Recompute()
	return e, nil
}

// Draft devuelve una copia del borrador.
func (e *Editor) Draft() Draft { return e.draft.clone() }

// Mode modo del editor.
func (e *Editor) Mode() Mode { return e.draft.Mode }

// Catalog catálogo capturado al abrir.
func (e *Editor) Catalog() *Catalog { return e.catalog }

// AddLine agrega una línea en blanco al final.
func (e *Editor) AddLine() {
	e.draft.Lines = append(e.draft.Lines, LineItem{})
	e.Recompute()
}

// RemoveLine quita la línea index. Si es la única línea la petición se ignora:
// el borrador siempre conserva al menos una fila.
func (e *Editor) RemoveLine(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if len(e.draft.Lines) <= 1 {
		return nil
	}
	e.draft.Lines = append(e.draft.Lines[:index], e.draft.Lines[index+1:]...)
	e.Recompute()
	return nil
}

// SetLineProduct asigna el producto y toma su precio del catálogo (venta: precio de venta,
// compra: precio de compra de referencia). En venta registra el stock como tope de cantidad;
// si la cantidad actual lo supera se reinicia a cero.
func (e *Editor) SetLineProduct(index int, ref string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	item, ok := e.catalog.Lookup(ref)
	if !ok || ref == "" {
		return fmt.Errorf("%w: producto %q", domain.ErrNotFound, ref)
	}
	line := &e.draft.Lines[index]
	line.ProductRef = ref
	switch e.draft.Mode {
	case ModeSale:
		line.UnitPrice = item.SalePrice
		limit := item.Stock
		line.StockLimit = &limit
		if line.Quantity.GreaterThan(limit) {
			line.Quantity = decimal.Zero
		}
	case ModePurchase:
		line.UnitPrice = item.PurchasePrice
		line.StockLimit = nil
	}
	e.Recompute()
	return nil
}

// SetLineQuantity fija la cantidad. Rechaza cantidades no positivas y, en venta,
// las que superan el stock registrado para el producto de la línea.
func (e *Editor) SetLineQuantity(index int, quantity decimal.Decimal) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	line := &e.draft.Lines[index]
	if e.draft.Mode == ModeSale && line.StockLimit != nil && quantity.GreaterThan(*line.StockLimit) {
		return fmt.Errorf("%w: disponible %s", domain.ErrInsufficientStock, line.StockLimit.String())
	}
	line.Quantity = quantity
	e.Recompute()
	return nil
}

// SetLinePrice sobrescribe el precio unitario. Solo en compra: en venta el precio
// siempre sale del catálogo.
func (e *Editor) SetLinePrice(index int, price decimal.Decimal) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if e.draft.Mode != ModePurchase {
		return fmt.Errorf("%w: el precio de venta no se puede modificar", domain.ErrInvalidOperation)
	}
	if price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	e.draft.Lines[index].UnitPrice = price
	e.Recompute()
	return nil
}

// SetCounterparty asigna cliente o proveedor; debe ser una de las opciones cargadas al abrir.
func (e *Editor) SetCounterparty(ref string) error {
	if _, ok := e.counterparties[ref]; !ok {
		return fmt.Errorf("%w: contraparte %q", domain.ErrNotFound, ref)
	}
	e.draft.CounterpartyRef = ref
	return nil
}

// SetReceiptType cambia el tipo de comprobante.
func (e *Editor) SetReceiptType(t ReceiptType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de comprobante %q", domain.ErrInvalidInput, t)
	}
	e.draft.ReceiptType = t
	return nil
}

// Recompute recalcula subtotales y total desde cantidad y precio. Las líneas
// incompletas aportan cero. Es idempotente.
func (e *Editor) Recompute() {
	total := decimal.Zero
	for i := range e.draft.Lines {
		line := &e.draft.Lines[i]
		if !line.Complete() {
			line.Subtotal = decimal.Zero
			continue
		}
		line.Subtotal = line.Quantity.Mul(line.UnitPrice)
		total = total.Add(line.Subtotal)
	}
	e.draft.Total = total
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.draft.Lines) {
		return fmt.Errorf("%w: índice %d", domain.ErrLineNotFound, index)
	}
	return nil
}
