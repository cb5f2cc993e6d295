// Package access implementa la política de navegación por rol de la consola:
// qué secciones puede ver cada rol y a dónde se redirige un acceso no permitido.
// Todo es función pura de (rol, página) salvo la página activa del Navigator.
package access

// Role identifica la clase de permisos de un usuario ("Administrador", "Vendedor", ...).
// Se compara exactamente, sin normalizar mayúsculas ni espacios.
type Role string

// Page identifica una sección navegable ("dashboard", "products", "sales", ...).
type Page string

// PageDashboard es la sección de respaldo cuando se niega una navegación.
const PageDashboard Page = "dashboard"

// Table asocia cada rol con el conjunto ordenado de páginas permitidas.
// Es inmutable después de NewTable y se comparte sin sincronización.
type Table struct {
	entries     map[Role][]Page
	sets        map[Role]map[Page]struct{}
	defaultRole Role
}

// NewTable copia las entradas (sin duplicados, preservando el orden) y fija el rol por defecto.
// Si defaultRole no tiene entrada, los roles desconocidos no tienen ninguna página permitida.
func NewTable(entries map[Role][]Page, defaultRole Role) *Table {
	t := &Table{
		entries:     make(map[Role][]Page, len(entries)),
		sets:        make(map[Role]map[Page]struct{}, len(entries)),
		defaultRole: defaultRole,
	}
	for role, pages := range entries {
		set := make(map[Page]struct{}, len(pages))
		ordered := make([]Page, 0, len(pages))
		for _, p := range pages {
			if _, dup := set[p]; dup {
				continue
			}
			set[p] = struct{}{}
			ordered = append(ordered, p)
		}
		t.entries[role] = ordered
		t.sets[role] = set
	}
	return t
}

// DefaultRole devuelve el rol de respaldo configurado.
func (t *Table) DefaultRole() Role { return t.defaultRole }

// Roles devuelve los roles con entrada propia (orden no garantizado).
func (t *Table) Roles() []Role {
	out := make([]Role, 0, len(t.entries))
	for r := range t.entries {
		out = append(out, r)
	}
	return out
}

// Allowed devuelve las páginas del rol, o las del rol por defecto, o nil.
// El slice devuelto es una copia.
func (t *Table) Allowed(role Role) []Page {
	pages, ok := t.entries[role]
	if !ok {
		pages = t.entries[t.defaultRole]
	}
	if pages == nil {
		return nil
	}
	return append([]Page(nil), pages...)
}

func (t *Table) set(role Role) map[Page]struct{} {
	if s, ok := t.sets[role]; ok {
		return s
	}
	return t.sets[t.defaultRole]
}
