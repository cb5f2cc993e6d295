package ports

import (
	"context"

	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// Credentials identifica la sesión del backend que se reenvía en cada llamada.
type Credentials struct {
	Cookie string
}

// LoginResult sesión que entrega el backend tras un login exitoso.
type LoginResult struct {
	UserID      string
	Username    string
	DisplayName string
	Email       string
	Role        string
	Credentials Credentials
}

// SessionProvider proveedor de sesión/autenticación (backend).
// La consola nunca valida contraseñas: solo recibe el rol.
type SessionProvider interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, cred Credentials) error
	// Me datos actuales del usuario (el rol puede haber cambiado desde el login).
	Me(ctx context.Context, cred Credentials) (*LoginResult, error)
}

// CatalogProvider lista actual de productos con precios y stock.
type CatalogProvider interface {
	ListProducts(ctx context.Context, cred Credentials) ([]entity.Product, error)
}

// CounterpartyProvider clientes (venta) o proveedores (compra).
type CounterpartyProvider interface {
	ListCounterparties(ctx context.Context, cred Credentials, kind entity.CounterpartyKind) ([]entity.Counterparty, error)
}

// SubmissionGateway registra el documento. Errores esperados:
// domain.ErrBackendUnavailable (red/5xx) y domain.ErrBackendRejected (regla de negocio, ej. stock).
type SubmissionGateway interface {
	Submit(ctx context.Context, cred Credentials, payload order.SubmissionPayload) (*entity.Receipt, error)
}

// PageDataProvider datos de las páginas de listado y del dashboard.
type PageDataProvider interface {
	DashboardStats(ctx context.Context, cred Credentials) (*entity.DashboardStats, error)
	LowStockProducts(ctx context.Context, cred Credentials) ([]entity.Product, error)
	ListSales(ctx context.Context, cred Credentials) ([]entity.SaleSummary, error)
	ListUsers(ctx context.Context, cred Credentials) ([]entity.UserSummary, error)
}
