package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
)

func consoleTable() *access.Table {
	return access.NewTable(map[access.Role][]access.Page{
		"Administrador": {"dashboard", "products", "sales", "purchases", "users", "reports", "configuracion"},
		"Vendedor":      {"dashboard", "sales"},
		"Contador":      {"dashboard", "reports"},
		"Auditor":       {"reports"},
	}, "Vendedor")
}

// ──────────────────────────────────────────────────────────────────────────────
// IsAllowed / Table
// ──────────────────────────────────────────────────────────────────────────────

func TestIsAllowed_SoloPaginasListadas(t *testing.T) {
	table := consoleTable()
	p := access.NewPolicy(table)

	for _, role := range table.Roles() {
		allowed := map[access.Page]bool{}
		for _, pg := range table.Allowed(role) {
			allowed[pg] = true
		}
		for _, e := range access.DefaultNavEntries {
			assert.Equal(t, allowed[e.Page], p.IsAllowed(role, e.Page), "rol %s página %s", role, e.Page)
		}
	}
}

func TestIsAllowed_RolDesconocidoUsaRolPorDefecto(t *testing.T) {
	p := access.NewPolicy(consoleTable())

	assert.True(t, p.IsAllowed("Practicante", "sales"))
	assert.True(t, p.IsAllowed("Practicante", "dashboard"))
	assert.False(t, p.IsAllowed("Practicante", "users"))
}

func TestIsAllowed_SensibleAMayusculas(t *testing.T) {
	p := access.NewPolicy(consoleTable())

	// "administrador" no existe: cae al rol por defecto (Vendedor).
	assert.False(t, p.IsAllowed("administrador", "users"))
	assert.True(t, p.IsAllowed("Administrador", "users"))
}

func TestIsAllowed_RolPorDefectoInexistente_NadaPermitido(t *testing.T) {
	p := access.NewPolicy(access.NewTable(map[access.Role][]access.Page{
		"Vendedor": {"dashboard", "sales"},
	}, "Invitado"))

	assert.False(t, p.IsAllowed("Desconocido", "dashboard"))
	assert.Nil(t, p.Table().Allowed("Desconocido"))
}

func TestNewTable_CopiaEntradasYQuitaDuplicados(t *testing.T) {
	entries := map[access.Role][]access.Page{"Vendedor": {"sales", "dashboard", "sales"}}
	table := access.NewTable(entries, "Vendedor")
	entries["Vendedor"][0] = "users"

	assert.Equal(t, []access.Page{"sales", "dashboard"}, table.Allowed("Vendedor"))

	got := table.Allowed("Vendedor")
	got[0] = "users"
	assert.Equal(t, []access.Page{"sales", "dashboard"}, table.Allowed("Vendedor"), "Allowed devuelve una copia")
}

// ──────────────────────────────────────────────────────────────────────────────
// VisibleNavEntries
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleNavEntries_RespetaOrdenDeclarado(t *testing.T) {
	table := access.NewTable(map[access.Role][]access.Page{
		"Gerente": {"reports", "sales", "dashboard"},
	}, "Gerente")
	p := access.NewPolicy(table)

	got := p.VisibleNavEntries("Gerente", access.DefaultNavEntries)

	pages := make([]access.Page, 0, len(got))
	for _, e := range got {
		pages = append(pages, e.Page)
	}
	assert.Equal(t, []access.Page{"dashboard", "sales", "reports"}, pages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Navigator
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestNavigate_VendedorRedirigidoAlDashboard(t *testing.T) {
	table := access.NewTable(map[access.Role][]access.Page{
		"Vendedor": {"dashboard", "sales"},
	}, "Vendedor")
	nav := access.NewNavigator(access.NewPolicy(table), "")

	d, err := nav.RequestNavigate("Vendedor", "products")
	require.NoError(t, err)
	assert.Equal(t, access.PageDashboard, d.Page)
	assert.True(t, d.Redirected)
	assert.ErrorIs(t, d.Warning(), domain.ErrNavigationRedirected)
	assert.Equal(t, access.PageDashboard, nav.Active())

	d, err = nav.RequestNavigate("Vendedor", "sales")
	require.NoError(t, err)
	assert.Equal(t, access.Page("sales"), d.Page)
	assert.False(t, d.Redirected)
	assert.NoError(t, d.Warning())
	assert.Equal(t, access.Page("sales"), nav.Active())
}

func TestRequestNavigate_Idempotente(t *testing.T) {
	nav := access.NewNavigator(access.NewPolicy(consoleTable()), "")

	first, err := nav.RequestNavigate("Vendedor", "users")
	require.NoError(t, err)
	activeAfterFirst := nav.Active()

	second, err := nav.RequestNavigate("Vendedor", "users")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, activeAfterFirst, nav.Active())
}

func TestRequestNavigate_SinDashboard_AccesoDenegado(t *testing.T) {
	nav := access.NewNavigator(access.NewPolicy(consoleTable()), "reports")

	_, err := nav.RequestNavigate("Auditor", "sales")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAccessDenied))
	assert.Equal(t, access.Page("reports"), nav.Active(), "la página activa no cambia")
}
