package editor

import (
	"context"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// view proyección del borrador; el caller debe tener ds.mu.
func (ds *draftSession) view(withOptions bool) *dto.EditorResponse {
	d := ds.editor.Draft()
	catalog := ds.editor.Catalog()

	out := &dto.EditorResponse{
		ID:              ds.id,
		Mode:            string(d.Mode),
		CounterpartyRef: d.CounterpartyRef,
		ReceiptType:     string(d.ReceiptType),
		Lines:           make([]dto.LineDTO, 0, len(d.Lines)),
		Total:           d.Total,
		Submitting:      ds.inFlight,
	}
	for i, l := range d.Lines {
		line := dto.LineDTO{
			Index:      i,
			ProductRef: l.ProductRef,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
			StockLimit: l.StockLimit,
			Subtotal:   l.Subtotal,
			Complete:   l.Complete(),
		}
		if it, ok := catalog.Lookup(l.ProductRef); ok {
			line.ProductName = it.Name
		}
		out.Lines = append(out.Lines, line)
	}

	if withOptions {
		opts := &dto.EditorOptionsDTO{
			Counterparties: make([]dto.CounterpartyDTO, 0, len(ds.counterparties)),
			Catalog:        make([]dto.CatalogItemDTO, 0, catalog.Len()),
		}
		for _, c := range ds.counterparties {
			opts.Counterparties = append(opts.Counterparties, dto.CounterpartyDTO{Ref: c.Ref, Name: c.Name, TaxID: c.TaxID})
		}
		for _, it := range catalog.Items() {
			opts.Catalog = append(opts.Catalog, dto.CatalogItemDTO{
				Ref:           it.Ref,
				Name:          it.Name,
				SalePrice:     it.SalePrice,
				PurchasePrice: it.PurchasePrice,
				Stock:         it.Stock,
			})
		}
		out.Options = opts
	}
	return out
}

func toValidationDTOs(errs []order.ValidationError) []dto.ValidationErrorDTO {
	out := make([]dto.ValidationErrorDTO, 0, len(errs))
	for _, e := range errs {
		out = append(out, dto.ValidationErrorDTO{Code: e.Code, Message: e.Message, Lines: e.Lines})
	}
	return out
}

// ValidationDetails lista de reglas para el cuerpo de error de un envío rechazado.
func ValidationDetails(err *order.ValidationFailedError) []dto.ValidationErrorDTO {
	return toValidationDTOs(err.Errors)
}

// Preview genera el PDF del borrador: líneas completas, total y pendientes de validación.
func (s *Service) Preview(ctx context.Context, sess *entity.Session, id string) ([]byte, error) {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	d := ds.editor.Draft()
	catalog := ds.editor.Catalog()
	issues := ds.editor.Validate()
	var counterparty string
	for _, c := range ds.counterparties {
		if c.Ref == d.CounterpartyRef {
			counterparty = c.Name
			break
		}
	}
	ds.mu.Unlock()

	doc := ports.PreviewDocument{
		Title:            "VENTA",
		ReceiptType:      string(d.ReceiptType),
		CounterpartyName: counterparty,
		PreparedBy:       sess.DisplayName,
		Date:             s.now(),
		Total:            d.Total,
	}
	if d.Mode == order.ModePurchase {
		doc.Title = "COMPRA"
	}
	for _, l := range d.CompleteLines() {
		name := l.ProductRef
		if it, ok := catalog.Lookup(l.ProductRef); ok {
			name = it.Name
		}
		doc.Lines = append(doc.Lines, ports.PreviewLine{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	for _, v := range issues {
		doc.Issues = append(doc.Issues, v.Message)
	}
	return s.renderer.RenderPreview(ctx, doc)
}
