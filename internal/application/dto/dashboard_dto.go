package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO indicadores del tablero.
type DashboardStatsDTO struct {
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
	TotalUsers       int             `json:"total_users"`
	TodaySalesCount  int             `json:"today_sales_count"`
	TodaySalesAmount decimal.Decimal `json:"today_sales_amount"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
}

// DashboardPageDTO datos de la página dashboard.
type DashboardPageDTO struct {
	Stats    DashboardStatsDTO `json:"stats"`
	LowStock []ProductDTO      `json:"low_stock"`
}

// ProductDTO fila de la página de productos.
type ProductDTO struct {
	Ref           string          `json:"ref"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Stock         decimal.Decimal `json:"stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	Status        string          `json:"status"`
}

// SaleSummaryDTO fila de la página de ventas.
type SaleSummaryDTO struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	ReceiptType  string          `json:"receipt_type"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	SellerName   string          `json:"seller_name"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
}
