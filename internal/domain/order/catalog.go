package order

import "github.com/shopspring/decimal"

// CatalogItem producto tal como lo ve el editor: precios y stock al momento de abrir.
type CatalogItem struct {
	Ref           string
	Name          string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	Stock         decimal.Decimal
}

// Catalog tabla de consulta de solo lectura, capturada una vez al abrir el editor.
type Catalog struct {
	items map[string]CatalogItem
	order []string
}

// NewCatalog construye el catálogo. Si una referencia se repite, gana la última.
func NewCatalog(items []CatalogItem) *Catalog {
	c := &Catalog{items: make(map[string]CatalogItem, len(items))}
	for _, it := range items {
		if _, seen := c.items[it.Ref]; !seen {
			c.order = append(c.order, it.Ref)
		}
		c.items[it.Ref] = it
	}
	return c
}

// Lookup busca un producto por referencia.
func (c *Catalog) Lookup(ref string) (CatalogItem, bool) {
	it, ok := c.items[ref]
	return it, ok
}

// Items devuelve los productos en el orden en que llegaron.
func (c *Catalog) Items() []CatalogItem {
	out := make([]CatalogItem, 0, len(c.order))
	for _, ref := range c.order {
		out = append(out, c.items[ref])
	}
	return out
}

// Len cantidad de productos.
func (c *Catalog) Len() int { return len(c.order) }
