package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats indicadores del tablero principal.
type DashboardStats struct {
	TotalProducts    int
	LowStockProducts int
	TotalUsers       int
	TodaySalesCount  int
	TodaySalesAmount decimal.Decimal
	InventoryValue   decimal.Decimal
}

// SaleSummary fila del listado de ventas.
type SaleSummary struct {
	ID           string
	Number       string
	ReceiptType  string
	Date         time.Time
	CustomerName string
	SellerName   string
	Total        decimal.Decimal
	Status       string
}

// UserSummary fila del listado de usuarios.
type UserSummary struct {
	ID       string
	Username string
	Name     string
	Email    string
	Role     string
	Status   string
}
