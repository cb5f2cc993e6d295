package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// flexString acepta un identificador numérico o string (el backend usa enteros autoincrementales).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// refValue serializa una referencia como número solo si su forma canónica coincide
// ("41"); cualquier otra ("007", "+5", "A-1") viaja como string.
func refValue(ref string) json.RawMessage {
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil && strconv.FormatInt(n, 10) == ref {
		return json.RawMessage(ref)
	}
	b, _ := json.Marshal(ref)
	return b
}

// flexTime acepta RFC3339, el formato HTTP de Flask y "2006-01-02 15:04:05".
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || strings.TrimSpace(s) == "" {
		*f = flexTime(time.Time{})
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*f = flexTime(t)
		return nil
	}
	if t, err := http.ParseTime(s); err == nil {
		*f = flexTime(t)
		return nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		*f = flexTime(t)
		return nil
	}
	*f = flexTime(time.Time{})
	return nil
}

type productWire struct {
	ID            flexString      `json:"id_producto"`
	Code          string          `json:"codigo_producto"`
	Name          string          `json:"nombre_producto"`
	Category      string          `json:"nombre_categoria"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	PurchasePrice decimal.Decimal `json:"precio_compra_ref"`
	Stock         decimal.Decimal `json:"stock_actual"`
	MinStock      decimal.Decimal `json:"stock_minimo"`
	Status        string          `json:"estado"`
}

// productsEnvelope el backend responde {"products": [...]} o {"data": [...]} según la ruta.
type productsEnvelope struct {
	Products []productWire `json:"products"`
	Data     []productWire `json:"data"`
}

func (e productsEnvelope) items() []productWire {
	if len(e.Products) > 0 {
		return e.Products
	}
	return e.Data
}

type customerWire struct {
	ID        flexString `json:"id_cliente"`
	FirstName string     `json:"nombres"`
	LastName  string     `json:"apellidos"`
	TaxID     string     `json:"identificacion"`
}

type supplierWire struct {
	ID        flexString `json:"id_proveedor"`
	TradeName string     `json:"nombre_comercial"`
	TaxID     string     `json:"ruc"`
}

type loginRequestWire struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionUserWire usuario en sesión, igual en /auth/login y /auth/me.
type sessionUserWire struct {
	ID       flexString `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	Email    string     `json:"email"`
}

type loginResponseWire struct {
	Success bool            `json:"success"`
	User    sessionUserWire `json:"user"`
}

type meResponseWire struct {
	User sessionUserWire `json:"user"`
}

type detailWire struct {
	ProductID json.RawMessage `json:"id_producto"`
	Quantity  json.Number     `json:"cantidad"`
	UnitPrice json.Number     `json:"precio_unitario"`
}

type saleRequestWire struct {
	CustomerID  json.RawMessage `json:"id_cliente"`
	ReceiptType string          `json:"tipo_comprobante"`
	Details     []detailWire    `json:"detalles"`
}

type purchaseRequestWire struct {
	SupplierID  json.RawMessage `json:"id_proveedor"`
	ReceiptType string          `json:"tipo_comprobante"`
	Details     []detailWire    `json:"detalles"`
}

type submissionResponseWire struct {
	Success    bool            `json:"success"`
	SaleID     flexString      `json:"id_venta"`
	PurchaseID flexString      `json:"id_compra"`
	Number     string          `json:"numero_comprobante"`
	Total      decimal.Decimal `json:"total"`
	Error      string          `json:"error"`
}

type statsWire struct {
	Stats struct {
		TotalProducts    int             `json:"total_products"`
		LowStockProducts int             `json:"low_stock_products"`
		TotalUsers       int             `json:"total_users"`
		TodaySalesCount  int             `json:"today_sales_count"`
		TodaySalesAmount decimal.Decimal `json:"today_sales_amount"`
		InventoryValue   decimal.Decimal `json:"inventory_value"`
	} `json:"stats"`
}

type saleWire struct {
	ID                flexString      `json:"id_venta"`
	Number            string          `json:"numero_comprobante"`
	ReceiptType       string          `json:"tipo_comprobante"`
	Date              flexTime        `json:"fecha_hora"`
	CustomerFirstName string          `json:"cliente_nombre"`
	CustomerLastName  string          `json:"cliente_apellido"`
	SellerFirstName   string          `json:"vendedor_nombre"`
	SellerLastName    string          `json:"vendedor_apellido"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"estado"`
}

type userWire struct {
	ID        flexString `json:"id_usuario"`
	Username  string     `json:"usuario_login"`
	FirstName string     `json:"nombres"`
	LastName  string     `json:"apellidos"`
	Email     string     `json:"email"`
	Role      string     `json:"rol"`
	Status    string     `json:"estado"`
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
