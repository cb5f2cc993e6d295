package access

import (
	"fmt"

	"github.com/jhoicas/inventario-consola/internal/domain"
)

// Decision resultado de una navegación: la página destino y si hubo redirección al dashboard.
type Decision struct {
	Page       Page
	Requested  Page
	Redirected bool
}

// Warning devuelve domain.ErrNavigationRedirected si la navegación fue redirigida, nil en otro caso.
func (d Decision) Warning() error {
	if !d.Redirected {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrNavigationRedirected, d.Requested)
}

// Navigator guarda la página activa de una sesión y aplica la guarda de navegación.
// No es seguro para uso concurrente; cada sesión tiene el suyo.
type Navigator struct {
	policy *Policy
	active Page
}

// NewNavigator crea un navegador con la página activa inicial (vacía = sin definir).
func NewNavigator(policy *Policy, active Page) *Navigator {
	return &Navigator{policy: policy, active: active}
}

// Active devuelve la página activa.
func (n *Navigator) Active() Page { return n.active }

// RequestNavigate aplica la guarda:
//  1. página permitida: se activa.
//  2. no permitida pero el dashboard sí: se activa el dashboard y Decision.Redirected es true.
//  3. ninguna: ErrAccessDenied y la página activa no cambia.
func (n *Navigator) RequestNavigate(role Role, requested Page) (Decision, error) {
	if n.policy.IsAllowed(role, requested) {
		n.active = requested
		return Decision{Page: requested, Requested: requested}, nil
	}
	if n.policy.IsAllowed(role, PageDashboard) {
		n.active = PageDashboard
		return Decision{Page: PageDashboard, Requested: requested, Redirected: true}, nil
	}
	return Decision{}, fmt.Errorf("%w: %s", domain.ErrAccessDenied, requested)
}
