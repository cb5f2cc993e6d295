package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo publica el backend.
type Product struct {
	Ref           string
	Code          string
	Name          string
	Category      string
	SalePrice     decimal.Decimal // precio de venta
	PurchasePrice decimal.Decimal // precio de compra de referencia
	Stock         decimal.Decimal
	MinStock      decimal.Decimal
	Status        string
}

// LowStock indica si el stock actual está en o bajo el mínimo.
func (p *Product) LowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}
