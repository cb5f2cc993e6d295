package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-consola/internal/application/editor"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// ──── Dobles ────

type fakeBackend struct {
	mu            sync.Mutex
	productCalls  int
	partyCalls    []entity.CounterpartyKind
	submissions   []order.SubmissionPayload
	submitErr     error
	submitStarted chan struct{}
	submitRelease chan struct{}
}

func (f *fakeBackend) ListProducts(context.Context, ports.Credentials) ([]entity.Product, error) {
	f.mu.Lock()
	f.productCalls++
	f.mu.Unlock()
	return []entity.Product{
		{Ref: "1", Name: "Arroz", SalePrice: decimal.RequireFromString("12.50"), PurchasePrice: decimal.NewFromInt(10), Stock: decimal.NewFromInt(5)},
		{Ref: "2", Name: "Azúcar", SalePrice: decimal.RequireFromString("4.20"), PurchasePrice: decimal.RequireFromString("3.10"), Stock: decimal.NewFromInt(100)},
	}, nil
}

func (f *fakeBackend) ListCounterparties(_ context.Context, _ ports.Credentials, kind entity.CounterpartyKind) ([]entity.Counterparty, error) {
	f.mu.Lock()
	f.partyCalls = append(f.partyCalls, kind)
	f.mu.Unlock()
	if kind == entity.CounterpartySupplier {
		return []entity.Counterparty{{Ref: "9", Kind: kind, Name: "Distribuidora Sur"}}, nil
	}
	return []entity.Counterparty{{Ref: "3", Kind: kind, Name: "Luis Rojas"}}, nil
}

func (f *fakeBackend) Submit(_ context.Context, _ ports.Credentials, p order.SubmissionPayload) (*entity.Receipt, error) {
	f.mu.Lock()
	f.submissions = append(f.submissions, p)
	started, release, err := f.submitStarted, f.submitRelease, f.submitErr
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return &entity.Receipt{DocumentID: "41", Number: "B001-000041", Total: p.Total}, nil
}

func (f *fakeBackend) Submissions() []order.SubmissionPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]order.SubmissionPayload(nil), f.submissions...)
}

type fakeRenderer struct {
	docs []ports.PreviewDocument
}

func (r *fakeRenderer) RenderPreview(_ context.Context, doc ports.PreviewDocument) ([]byte, error) {
	r.docs = append(r.docs, doc)
	return []byte("%PDF-1.3"), nil
}

func newService(backend *fakeBackend, renderer *fakeRenderer) *editor.Service {
	policy := access.NewPolicy(access.NewTable(map[access.Role][]access.Page{
		"Vendedor":       {"dashboard", "sales"},
		"Jefe de Bodega": {"dashboard", "products", "purchases"},
	}, "Vendedor"))
	return editor.NewService(editor.Deps{
		Catalog:  backend,
		Parties:  backend,
		Gateway:  backend,
		Renderer: renderer,
		Policy:   policy,
	})
}

var (
	seller    = &entity.Session{ID: "s-vendedor", Role: "Vendedor", DisplayName: "Ana Pérez", BackendCookie: "session=a"}
	warehouse = &entity.Session{ID: "s-bodega", Role: "Jefe de Bodega", BackendCookie: "session=b"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fillSale deja un borrador de venta válido: cliente 3, 2 x Arroz.
func fillSale(t *testing.T, svc *editor.Service, id string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.SetCounterparty(ctx, seller, id, "3")
	require.NoError(t, err)
	_, err = svc.SetLineProduct(ctx, seller, id, 0, "1")
	require.NoError(t, err)
	_, err = svc.SetLineQuantity(ctx, seller, id, 0, "2")
	require.NoError(t, err)
}

// ──── Open ────

func TestOpen_VentaCargaOpcionesUnaVez(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(backend, &fakeRenderer{})

	view, err := svc.Open(context.Background(), seller, "sale")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "sale", view.Mode)
	assert.Equal(t, "FACTURA", view.ReceiptType)
	require.Len(t, view.Lines, 1)
	assert.False(t, view.Lines[0].Complete)
	assert.True(t, view.Total.IsZero())
	require.NotNil(t, view.Options)
	assert.Len(t, view.Options.Catalog, 2)
	assert.Equal(t, "Luis Rojas", view.Options.Counterparties[0].Name)

	_, err = svc.AddLine(context.Background(), seller, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.productCalls)
	assert.Equal(t, []entity.CounterpartyKind{entity.CounterpartyCustomer}, backend.partyCalls)
}

func TestOpen_CompraUsaProveedores(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(backend, &fakeRenderer{})

	view, err := svc.Open(context.Background(), warehouse, "purchase")
	require.NoError(t, err)
	assert.Equal(t, "purchase", view.Mode)
	assert.Equal(t, []entity.CounterpartyKind{entity.CounterpartySupplier}, backend.partyCalls)
}

func TestOpen_SinAccesoALaSeccion(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(backend, &fakeRenderer{})

	_, err := svc.Open(context.Background(), seller, "purchase")
	assert.True(t, errors.Is(err, domain.ErrAccessDenied))
	assert.Zero(t, backend.productCalls)
	assert.Empty(t, backend.partyCalls)
}

func TestOpen_ModoInvalido(t *testing.T) {
	svc := newService(&fakeBackend{}, &fakeRenderer{})
	_, err := svc.Open(context.Background(), seller, "devolucion")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──── Mutaciones ────

func TestMutaciones_RecalculaTrasCadaCambio(t *testing.T) {
	ctx := context.Background()
	svc := newService(&fakeBackend{}, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	id := view.ID

	view, err = svc.SetLineProduct(ctx, seller, id, 0, "1")
	require.NoError(t, err)
	assert.True(t, view.Lines[0].UnitPrice.Equal(dec("12.50")))
	require.NotNil(t, view.Lines[0].StockLimit)
	assert.Equal(t, "Arroz", view.Lines[0].ProductName)
	assert.Nil(t, view.Options)

	view, err = svc.SetLineQuantity(ctx, seller, id, 0, "2")
	require.NoError(t, err)
	assert.True(t, view.Lines[0].Subtotal.Equal(dec("25")))

	view, err = svc.AddLine(ctx, seller, id)
	require.NoError(t, err)
	_, err = svc.SetLineProduct(ctx, seller, id, 1, "2")
	require.NoError(t, err)
	view, err = svc.SetLineQuantity(ctx, seller, id, 1, "1.5")
	require.NoError(t, err)
	assert.True(t, view.Total.Equal(dec("31.30")))

	_, err = svc.SetLineQuantity(ctx, seller, id, 0, "6")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = svc.SetLinePrice(ctx, seller, id, 0, "1")
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	_, err = svc.SetLineQuantity(ctx, seller, id, 0, "dos")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	view, err = svc.RemoveLine(ctx, seller, id, 0)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.True(t, view.Total.Equal(dec("6.30")))
}

func TestMutaciones_EditorDeOtraSesion(t *testing.T) {
	ctx := context.Background()
	svc := newService(&fakeBackend{}, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)

	other := &entity.Session{ID: "otra", Role: "Vendedor"}
	_, err = svc.AddLine(ctx, other, view.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.Get(ctx, other, view.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──── Submit ────

func TestSubmit_ValidacionFallidaNoLlamaAlBackend(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	svc := newService(backend, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	_, err = svc.SetLineProduct(ctx, seller, view.ID, 0, "1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, seller, view.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))

	var vf *order.ValidationFailedError
	require.True(t, errors.As(err, &vf))
	details := editor.ValidationDetails(vf)
	codes := make([]string, 0, len(details))
	for _, d := range details {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []string{order.RuleCounterpartyRequired, order.RuleLinesRequired, order.RuleQuantityPositive}, codes)
	assert.Empty(t, backend.Submissions())

	// el borrador sigue disponible
	_, err = svc.Get(ctx, seller, view.ID)
	assert.NoError(t, err)
}

func TestSubmit_ExitoDescartaElEditor(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	svc := newService(backend, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	fillSale(t, svc, view.ID)
	_, err = svc.AddLine(ctx, seller, view.ID)
	require.NoError(t, err)

	receipt, err := svc.Submit(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "B001-000041", receipt.Number)
	assert.Equal(t, "sale", receipt.Mode)

	subs := backend.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, "3", subs[0].CounterpartyRef)
	require.Len(t, subs[0].Lines, 1)
	assert.True(t, subs[0].Lines[0].Quantity.Equal(dec("2")))
	assert.True(t, subs[0].Total.Equal(dec("25")))

	_, err = svc.Get(ctx, seller, view.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, svc.Len())
}

func TestSubmit_RechazoDelBackendConservaBorrador(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{submitErr: domain.ErrBackendRejected}
	svc := newService(backend, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	fillSale(t, svc, view.ID)

	_, err = svc.Submit(ctx, seller, view.ID)
	assert.True(t, errors.Is(err, domain.ErrBackendRejected))

	got, err := svc.Get(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.False(t, got.Submitting)
	assert.True(t, got.Total.Equal(dec("25")))

	backend.mu.Lock()
	backend.submitErr = nil
	backend.mu.Unlock()
	_, err = svc.Submit(ctx, seller, view.ID)
	assert.NoError(t, err)
	assert.Len(t, backend.Submissions(), 2)
}

func TestSubmit_EnvioPendienteBloqueaMutaciones(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{submitStarted: make(chan struct{}), submitRelease: make(chan struct{})}
	svc := newService(backend, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	fillSale(t, svc, view.ID)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, seller, view.ID)
		done <- err
	}()
	<-backend.submitStarted

	_, err = svc.AddLine(ctx, seller, view.ID)
	assert.True(t, errors.Is(err, domain.ErrEditorBusy))
	_, err = svc.Submit(ctx, seller, view.ID)
	assert.True(t, errors.Is(err, domain.ErrEditorBusy))

	got, err := svc.Get(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.True(t, got.Submitting)

	close(backend.submitRelease)
	require.NoError(t, <-done)
	assert.Len(t, backend.Submissions(), 1)
}

func TestCancel_DuranteEnvioIgnoraRespuestaTardia(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{submitStarted: make(chan struct{}), submitRelease: make(chan struct{})}
	svc := newService(backend, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	fillSale(t, svc, view.ID)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, seller, view.ID)
		done <- err
	}()
	<-backend.submitStarted

	require.NoError(t, svc.Cancel(ctx, seller, view.ID))
	_, err = svc.Get(ctx, seller, view.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	close(backend.submitRelease)
	err = <-done
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, svc.Len())
}

// ──── Ciclo de vida ────

func TestCloseAll_SoloEditoresDeLaSesion(t *testing.T) {
	ctx := context.Background()
	svc := newService(&fakeBackend{}, &fakeRenderer{})
	_, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	_, err = svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	_, err = svc.Open(ctx, warehouse, "purchase")
	require.NoError(t, err)

	assert.Equal(t, 2, svc.CloseAll(seller.ID))
	assert.Equal(t, 1, svc.Len())
}

func TestSweep_DescartaInactivos(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)
	svc := newService(&fakeBackend{}, &fakeRenderer{}).WithClock(func() time.Time { return now })

	old, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	now = now.Add(45 * time.Minute)
	_, err = svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, svc.Sweep(time.Hour))
	_, err = svc.Get(ctx, seller, old.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 1, svc.Len())
}

// ──── Validación y vista previa ────

func TestValidate_SinEnviar(t *testing.T) {
	ctx := context.Background()
	svc := newService(&fakeBackend{}, &fakeRenderer{})
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)

	res, err := svc.Validate(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)

	fillSale(t, svc, view.ID)
	res, err = svc.Validate(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestPreview_SoloLineasCompletas(t *testing.T) {
	ctx := context.Background()
	renderer := &fakeRenderer{}
	svc := newService(&fakeBackend{}, renderer)
	view, err := svc.Open(ctx, seller, "sale")
	require.NoError(t, err)
	fillSale(t, svc, view.ID)
	_, err = svc.AddLine(ctx, seller, view.ID)
	require.NoError(t, err)

	out, err := svc.Preview(ctx, seller, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), out)

	require.Len(t, renderer.docs, 1)
	doc := renderer.docs[0]
	assert.Equal(t, "VENTA", doc.Title)
	assert.Equal(t, "Luis Rojas", doc.CounterpartyName)
	assert.Equal(t, "Ana Pérez", doc.PreparedBy)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Arroz", doc.Lines[0].ProductName)
	assert.True(t, doc.Total.Equal(dec("25")))
	assert.Empty(t, doc.Issues)
}
