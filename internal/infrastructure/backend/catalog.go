package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// ListProducts lista el catálogo vigente con precios y stock.
func (c *Client) ListProducts(ctx context.Context, cred ports.Credentials) ([]entity.Product, error) {
	var env productsEnvelope
	if _, err := c.do(ctx, http.MethodGet, c.routes.Products, cred, nil, &env); err != nil {
		return nil, err
	}
	return toProducts(env.items()), nil
}

// ListCounterparties lista clientes o proveedores según kind.
func (c *Client) ListCounterparties(ctx context.Context, cred ports.Credentials, kind entity.CounterpartyKind) ([]entity.Counterparty, error) {
	switch kind {
	case entity.CounterpartyCustomer:
		var env struct {
			Customers []customerWire `json:"customers"`
		}
		if _, err := c.do(ctx, http.MethodGet, c.routes.Customers, cred, nil, &env); err != nil {
			return nil, err
		}
		out := make([]entity.Counterparty, 0, len(env.Customers))
		for _, w := range env.Customers {
			out = append(out, entity.Counterparty{
				Ref:   string(w.ID),
				Kind:  entity.CounterpartyCustomer,
				Name:  fullName(w.FirstName, w.LastName),
				TaxID: w.TaxID,
			})
		}
		return out, nil
	case entity.CounterpartySupplier:
		var env struct {
			Providers []supplierWire `json:"providers"`
		}
		if _, err := c.do(ctx, http.MethodGet, c.routes.Suppliers, cred, nil, &env); err != nil {
			return nil, err
		}
		out := make([]entity.Counterparty, 0, len(env.Providers))
		for _, w := range env.Providers {
			out = append(out, entity.Counterparty{
				Ref:   string(w.ID),
				Kind:  entity.CounterpartySupplier,
				Name:  strings.TrimSpace(w.TradeName),
				TaxID: w.TaxID,
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("backend: tipo de contraparte desconocido %q", kind)
	}
}

func toProducts(items []productWire) []entity.Product {
	out := make([]entity.Product, 0, len(items))
	for _, w := range items {
		out = append(out, entity.Product{
			Ref:           string(w.ID),
			Code:          w.Code,
			Name:          w.Name,
			Category:      w.Category,
			SalePrice:     w.SalePrice,
			PurchasePrice: w.PurchasePrice,
			Stock:         w.Stock,
			MinStock:      w.MinStock,
			Status:        w.Status,
		})
	}
	return out
}
