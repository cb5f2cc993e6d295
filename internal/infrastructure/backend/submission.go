package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// Submit registra la venta o compra. El backend descuenta o suma stock y
// devuelve el número de comprobante; un rechazo (ej. stock insuficiente)
// llega como domain.ErrBackendRejected con el mensaje del backend.
func (c *Client) Submit(ctx context.Context, cred ports.Credentials, p order.SubmissionPayload) (*entity.Receipt, error) {
	details := make([]detailWire, 0, len(p.Lines))
	for _, l := range p.Lines {
		details = append(details, detailWire{
			ProductID: refValue(l.ProductRef),
			Quantity:  json.Number(l.Quantity.String()),
			UnitPrice: json.Number(l.UnitPrice.String()),
		})
	}

	var (
		path string
		in   any
	)
	switch p.Mode {
	case order.ModeSale:
		path = c.routes.Sales
		in = saleRequestWire{
			CustomerID:  refValue(p.CounterpartyRef),
			ReceiptType: string(p.ReceiptType),
			Details:     details,
		}
	case order.ModePurchase:
		path = c.routes.Purchases
		in = purchaseRequestWire{
			SupplierID:  refValue(p.CounterpartyRef),
			ReceiptType: string(p.ReceiptType),
			Details:     details,
		}
	default:
		return nil, fmt.Errorf("%w: modo %q", domain.ErrInvalidInput, p.Mode)
	}

	var out submissionResponseWire
	if _, err := c.do(ctx, http.MethodPost, path, cred, in, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "registro no confirmado"
		}
		return nil, &Error{StatusCode: http.StatusOK, Message: msg, kind: domain.ErrBackendRejected}
	}

	id := out.SaleID
	if p.Mode == order.ModePurchase {
		id = out.PurchaseID
	}
	return &entity.Receipt{
		DocumentID: string(id),
		Number:     out.Number,
		Total:      out.Total,
	}, nil
}
