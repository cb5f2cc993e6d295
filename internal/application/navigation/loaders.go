package navigation

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// dashboardLoader consulta indicadores y stock bajo en paralelo.
func dashboardLoader(pages ports.PageDataProvider) Loader {
	return func(ctx context.Context, cred ports.Credentials) (any, error) {
		var (
			wg       sync.WaitGroup
			stats    *entity.DashboardStats
			low      []entity.Product
			statsErr error
			lowErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			stats, statsErr = pages.DashboardStats(ctx, cred)
		}()
		go func() {
			defer wg.Done()
			low, lowErr = pages.LowStockProducts(ctx, cred)
		}()
		wg.Wait()

		if statsErr != nil {
			return nil, statsErr
		}
		if lowErr != nil {
			return nil, lowErr
		}
		return dto.DashboardPageDTO{
			Stats: dto.DashboardStatsDTO{
				TotalProducts:    stats.TotalProducts,
				LowStockProducts: stats.LowStockProducts,
				TotalUsers:       stats.TotalUsers,
				TodaySalesCount:  stats.TodaySalesCount,
				TodaySalesAmount: stats.TodaySalesAmount,
				InventoryValue:   stats.InventoryValue,
			},
			LowStock: toProductDTOs(low),
		}, nil
	}
}

func productsLoader(catalog ports.CatalogProvider) Loader {
	return func(ctx context.Context, cred ports.Credentials) (any, error) {
		items, err := catalog.ListProducts(ctx, cred)
		if err != nil {
			return nil, err
		}
		return toProductDTOs(items), nil
	}
}

func salesLoader(pages ports.PageDataProvider) Loader {
	return func(ctx context.Context, cred ports.Credentials) (any, error) {
		sales, err := pages.ListSales(ctx, cred)
		if err != nil {
			return nil, err
		}
		out := make([]dto.SaleSummaryDTO, 0, len(sales))
		for _, s := range sales {
			out = append(out, dto.SaleSummaryDTO{
				ID:           s.ID,
				Number:       s.Number,
				ReceiptType:  s.ReceiptType,
				Date:         s.Date,
				CustomerName: s.CustomerName,
				SellerName:   s.SellerName,
				Total:        s.Total,
				Status:       s.Status,
			})
		}
		return out, nil
	}
}

func usersLoader(pages ports.PageDataProvider) Loader {
	return func(ctx context.Context, cred ports.Credentials) (any, error) {
		users, err := pages.ListUsers(ctx, cred)
		if err != nil {
			return nil, err
		}
		out := make([]dto.UserSummaryDTO, 0, len(users))
		for _, u := range users {
			out = append(out, dto.UserSummaryDTO(u))
		}
		return out, nil
	}
}

func toProductDTOs(items []entity.Product) []dto.ProductDTO {
	out := make([]dto.ProductDTO, 0, len(items))
	for i := range items {
		p := &items[i]
		out = append(out, dto.ProductDTO{
			Ref:           p.Ref,
			Code:          p.Code,
			Name:          p.Name,
			Category:      p.Category,
			SalePrice:     p.SalePrice,
			PurchasePrice: p.PurchasePrice,
			Stock:         p.Stock,
			MinStock:      p.MinStock,
			LowStock:      p.LowStock(),
			Status:        p.Status,
		})
	}
	return out
}
