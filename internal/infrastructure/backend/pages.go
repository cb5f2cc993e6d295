package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// DashboardStats indicadores del tablero.
func (c *Client) DashboardStats(ctx context.Context, cred ports.Credentials) (*entity.DashboardStats, error) {
	var w statsWire
	if _, err := c.do(ctx, http.MethodGet, c.routes.DashboardStats, cred, nil, &w); err != nil {
		return nil, err
	}
	s := w.Stats
	return &entity.DashboardStats{
		TotalProducts:    s.TotalProducts,
		LowStockProducts: s.LowStockProducts,
		TotalUsers:       s.TotalUsers,
		TodaySalesCount:  s.TodaySalesCount,
		TodaySalesAmount: s.TodaySalesAmount,
		InventoryValue:   s.InventoryValue,
	}, nil
}

// LowStockProducts productos en o bajo el stock mínimo.
func (c *Client) LowStockProducts(ctx context.Context, cred ports.Credentials) ([]entity.Product, error) {
	var env productsEnvelope
	if _, err := c.do(ctx, http.MethodGet, c.routes.LowStock, cred, nil, &env); err != nil {
		return nil, err
	}
	return toProducts(env.items()), nil
}

func (c *Client) ListSales(ctx context.Context, cred ports.Credentials) ([]entity.SaleSummary, error) {
	var env struct {
		Sales []saleWire `json:"sales"`
	}
	if _, err := c.do(ctx, http.MethodGet, c.routes.Sales, cred, nil, &env); err != nil {
		return nil, err
	}
	out := make([]entity.SaleSummary, 0, len(env.Sales))
	for _, w := range env.Sales {
		out = append(out, entity.SaleSummary{
			ID:           string(w.ID),
			Number:       w.Number,
			ReceiptType:  w.ReceiptType,
			Date:         time.Time(w.Date),
			CustomerName: fullName(w.CustomerFirstName, w.CustomerLastName),
			SellerName:   fullName(w.SellerFirstName, w.SellerLastName),
			Total:        w.Total,
			Status:       w.Status,
		})
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context, cred ports.Credentials) ([]entity.UserSummary, error) {
	var env struct {
		Users []userWire `json:"users"`
	}
	if _, err := c.do(ctx, http.MethodGet, c.routes.Users, cred, nil, &env); err != nil {
		return nil, err
	}
	out := make([]entity.UserSummary, 0, len(env.Users))
	for _, w := range env.Users {
		out = append(out, entity.UserSummary{
			ID:       string(w.ID),
			Username: w.Username,
			Name:     fullName(w.FirstName, w.LastName),
			Email:    w.Email,
			Role:     w.Role,
			Status:   w.Status,
		})
	}
	return out, nil
}
