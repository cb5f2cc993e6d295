package access

// NavEntry es una entrada declarada del menú lateral.
type NavEntry struct {
	Page  Page
	Title string
}

// DefaultNavEntries menú de la consola en su orden declarado.
var DefaultNavEntries = []NavEntry{
	{Page: "dashboard", Title: "Dashboard"},
	{Page: "products", Title: "Gestión de Productos"},
	{Page: "sales", Title: "Ventas"},
	{Page: "purchases", Title: "Compras"},
	{Page: "users", Title: "Gestión de Usuarios"},
	{Page: "reports", Title: "Reportes"},
	{Page: "configuracion", Title: "Configuración"},
}

// Policy decide permisos de navegación a partir de una Table.
type Policy struct {
	table *Table
}

// NewPolicy construye la política. Una tabla nil no permite ninguna página.
func NewPolicy(table *Table) *Policy {
	if table == nil {
		table = NewTable(nil, "")
	}
	return &Policy{table: table}
}

// Table expone la tabla subyacente (solo lectura).
func (p *Policy) Table() *Table { return p.table }

// IsAllowed informa si page pertenece a las páginas del rol (con respaldo al rol por defecto).
func (p *Policy) IsAllowed(role Role, page Page) bool {
	_, ok := p.table.set(role)[page]
	return ok
}

// VisibleNavEntries filtra allPages a las permitidas para el rol, conservando el orden de allPages.
func (p *Policy) VisibleNavEntries(role Role, allPages []NavEntry) []NavEntry {
	out := make([]NavEntry, 0, len(allPages))
	for _, e := range allPages {
		if p.IsAllowed(role, e.Page) {
			out = append(out, e)
		}
	}
	return out
}
