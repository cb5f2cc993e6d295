package order_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() *order.Catalog {
	return order.NewCatalog([]order.CatalogItem{
		{Ref: "P1", Name: "Cemento 42.5kg", SalePrice: dec("10.00"), PurchasePrice: dec("7.25"), Stock: dec("5")},
		{Ref: "P2", Name: "Clavos 2\" (kg)", SalePrice: dec("3.10"), PurchasePrice: dec("2.00"), Stock: dec("12.5")},
	})
}

func openSale(t *testing.T) *order.Editor {
	t.Helper()
	e, err := order.Open(order.ModeSale, []string{"C1", "C2"}, testCatalog())
	require.NoError(t, err)
	return e
}

func openPurchase(t *testing.T) *order.Editor {
	t.Helper()
	e, err := order.Open(order.ModePurchase, []string{"S1"}, testCatalog())
	require.NoError(t, err)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Open / AddLine / RemoveLine
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_BorradorConUnaLineaEnBlanco(t *testing.T) {
	e := openSale(t)
	d := e.Draft()

	require.Len(t, d.Lines, 1)
	assert.True(t, d.Lines[0].Blank())
	assert.Empty(t, d.CounterpartyRef)
	assert.Equal(t, order.ReceiptFactura, d.ReceiptType)
	assert.True(t, d.Total.IsZero())
}

func TestOpen_ModoInvalido(t *testing.T) {
	_, err := order.Open("devolucion", nil, testCatalog())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveLine_NuncaMenosDeUnaLinea(t *testing.T) {
	e := openSale(t)
	e.AddLine()
	e.AddLine()
	require.Len(t, e.Draft().Lines, 3)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.RemoveLine(0))
		assert.GreaterOrEqual(t, len(e.Draft().Lines), 1)
	}
	assert.Len(t, e.Draft().Lines, 1)
}

func TestRemoveLine_ConservaOrden(t *testing.T) {
	e := openSale(t)
	e.AddLine()
	e.AddLine()
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineProduct(1, "P2"))
	require.NoError(t, e.SetLineProduct(2, "P1"))

	require.NoError(t, e.RemoveLine(1))

	d := e.Draft()
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "P1", d.Lines[0].ProductRef)
	assert.Equal(t, "P1", d.Lines[1].ProductRef, "mismo producto en dos líneas no se fusiona")
}

func TestRemoveLine_IndiceFueraDeRango(t *testing.T) {
	e := openSale(t)
	assert.ErrorIs(t, e.RemoveLine(3), domain.ErrLineNotFound)
	assert.ErrorIs(t, e.RemoveLine(-1), domain.ErrLineNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_PrecioDesdeCatalogoYTopeDeStock(t *testing.T) {
	e := openSale(t)

	require.NoError(t, e.SetLineProduct(0, "P1"))
	d := e.Draft()
	assert.True(t, dec("10.00").Equal(d.Lines[0].UnitPrice))

	require.NoError(t, e.SetLineQuantity(0, dec("3")))
	d = e.Draft()
	assert.True(t, dec("30.00").Equal(d.Lines[0].Subtotal))
	assert.True(t, dec("30.00").Equal(d.Total))

	err := e.SetLineQuantity(0, dec("6"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	d = e.Draft()
	assert.True(t, dec("3").Equal(d.Lines[0].Quantity), "la cantidad no cambia")
	assert.True(t, dec("30.00").Equal(d.Total), "el total no cambia")
}

func TestVenta_CantidadFraccionaria(t *testing.T) {
	e := openSale(t)
	require.NoError(t, e.SetLineProduct(0, "P2"))
	require.NoError(t, e.SetLineQuantity(0, dec("2.75")))

	assert.True(t, dec("8.525").Equal(e.Draft().Total))
}

func TestVenta_SetLinePriceNoPermitido(t *testing.T) {
	e := openSale(t)
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineQuantity(0, dec("2")))
	before := e.Draft()

	err := e.SetLinePrice(0, dec("1.00"))
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))
	assert.Equal(t, before, e.Draft())
}

func TestVenta_CambioDeProductoReiniciaCantidadSiSuperaStock(t *testing.T) {
	e := openSale(t)
	require.NoError(t, e.SetLineProduct(0, "P2"))
	require.NoError(t, e.SetLineQuantity(0, dec("10")))

	require.NoError(t, e.SetLineProduct(0, "P1"))

	d := e.Draft()
	assert.True(t, d.Lines[0].Quantity.IsZero())
	assert.True(t, d.Total.IsZero())
}

func TestSetLineQuantity_NoPositivaRechazada(t *testing.T) {
	e := openSale(t)
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineQuantity(0, dec("1")))

	assert.ErrorIs(t, e.SetLineQuantity(0, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.SetLineQuantity(0, dec("-2")), domain.ErrInvalidInput)
	assert.True(t, dec("1").Equal(e.Draft().Lines[0].Quantity))
}

func TestSetLineProduct_ProductoInexistente(t *testing.T) {
	e := openSale(t)
	assert.ErrorIs(t, e.SetLineProduct(0, "P9"), domain.ErrNotFound)
	assert.True(t, e.Draft().Lines[0].Blank())
}

// ──────────────────────────────────────────────────────────────────────────────
// Compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCompra_PrecioReferenciaYSobrescritura(t *testing.T) {
	e := openPurchase(t)

	require.NoError(t, e.SetLineProduct(0, "P1"))
	assert.True(t, dec("7.25").Equal(e.Draft().Lines[0].UnitPrice))
	assert.Nil(t, e.Draft().Lines[0].StockLimit, "compra no tiene tope de stock")

	require.NoError(t, e.SetLineQuantity(0, dec("100")))
	require.NoError(t, e.SetLinePrice(0, dec("8.50")))

	d := e.Draft()
	assert.True(t, dec("850.00").Equal(d.Lines[0].Subtotal))
	assert.True(t, dec("850.00").Equal(d.Total))
}

func TestCompra_PrecioNegativoRechazado(t *testing.T) {
	e := openPurchase(t)
	require.NoError(t, e.SetLineProduct(0, "P1"))
	assert.ErrorIs(t, e.SetLinePrice(0, dec("-0.01")), domain.ErrInvalidInput)
	assert.True(t, dec("7.25").Equal(e.Draft().Lines[0].UnitPrice))
}

// ──────────────────────────────────────────────────────────────────────────────
// Recompute
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_IdempotenteYExacto(t *testing.T) {
	e := openPurchase(t)
	e.AddLine()
	e.AddLine()
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineQuantity(0, dec("0.1")))
	require.NoError(t, e.SetLinePrice(0, dec("0.1")))
	require.NoError(t, e.SetLineProduct(1, "P2"))
	require.NoError(t, e.SetLineQuantity(1, dec("0.2")))
	require.NoError(t, e.SetLinePrice(1, dec("0.1")))

	e.Recompute()
	first := e.Draft()
	for i := 0; i < 100; i++ {
		e.Recompute()
	}
	second := e.Draft()

	assert.Equal(t, first, second)
	assert.True(t, dec("0.03").Equal(second.Total))
	assert.True(t, second.Lines[2].Subtotal.IsZero(), "línea en blanco aporta cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate / Payload
// ──────────────────────────────────────────────────────────────────────────────

func codes(errs []order.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, v := range errs {
		out = append(out, v.Code)
	}
	return out
}

func TestValidate_SinContraparte(t *testing.T) {
	e := openSale(t)
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineQuantity(0, dec("1")))

	errs := e.Validate()
	assert.Equal(t, []string{order.RuleCounterpartyRequired}, codes(errs))

	_, err := e.Payload()
	var vf *order.ValidationFailedError
	require.ErrorAs(t, err, &vf)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, errs, vf.Errors)
}

func TestValidate_BorradorVacio(t *testing.T) {
	e := openSale(t)
	assert.Equal(t, []string{order.RuleCounterpartyRequired, order.RuleLinesRequired}, codes(e.Validate()))
}

func TestValidate_LineaConProductoSinCantidad(t *testing.T) {
	e := openSale(t)
	e.AddLine()
	require.NoError(t, e.SetCounterparty("C1"))
	require.NoError(t, e.SetLineProduct(0, "P1"))
	require.NoError(t, e.SetLineQuantity(0, dec("1")))
	require.NoError(t, e.SetLineProduct(1, "P2"))

	errs := e.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, order.RuleQuantityPositive, errs[0].Code)
	assert.Equal(t, []int{1}, errs[0].Lines)
}

func TestPayload_DescartaLineasEnBlanco(t *testing.T) {
	e := openSale(t)
	e.AddLine()
	e.AddLine()
	require.NoError(t, e.SetCounterparty("C2"))
	require.NoError(t, e.SetReceiptType(order.ReceiptBoleta))
	require.NoError(t, e.SetLineProduct(1, "P1"))
	require.NoError(t, e.SetLineQuantity(1, dec("2")))

	assert.Empty(t, e.Validate())
	p, err := e.Payload()
	require.NoError(t, err)

	assert.Equal(t, "C2", p.CounterpartyRef)
	assert.Equal(t, order.ReceiptBoleta, p.ReceiptType)
	require.Len(t, p.Lines, 1)
	assert.Equal(t, "P1", p.Lines[0].ProductRef)
	assert.True(t, dec("2").Equal(p.Lines[0].Quantity))
	assert.True(t, dec("10.00").Equal(p.Lines[0].UnitPrice))
	assert.True(t, dec("20.00").Equal(p.Total))
}

func TestSetCounterparty_FueraDeOpciones(t *testing.T) {
	e := openSale(t)
	assert.ErrorIs(t, e.SetCounterparty("S1"), domain.ErrNotFound)
	assert.Empty(t, e.Draft().CounterpartyRef)
}

func TestSetReceiptType_Invalido(t *testing.T) {
	e := openSale(t)
	assert.ErrorIs(t, e.SetReceiptType("TICKET"), domain.ErrInvalidInput)
	assert.Equal(t, order.ReceiptFactura, e.Draft().ReceiptType)
}
