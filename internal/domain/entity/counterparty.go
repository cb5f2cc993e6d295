package entity

// CounterpartyKind distingue clientes (venta) de proveedores (compra).
type CounterpartyKind string

const (
	CounterpartyCustomer CounterpartyKind = "customer"
	CounterpartySupplier CounterpartyKind = "supplier"
)

// Counterparty es la contraparte de un documento: cliente o proveedor.
type Counterparty struct {
	Ref   string
	Kind  CounterpartyKind
	Name  string
	TaxID string // identificación / RUC
}
