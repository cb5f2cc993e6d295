// Package editor administra los borradores de venta y compra abiertos por cada sesión:
// apertura con catálogo y contrapartes del backend, mutaciones serializadas, envío con
// bloqueo mientras la respuesta está pendiente y cancelación.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
	"github.com/jhoicas/inventario-consola/pkg/logger"
)

// draftSession un editor abierto. mu serializa las operaciones sobre el borrador;
// no se mantiene tomado durante la llamada al backend.
type draftSession struct {
	mu             sync.Mutex
	id             string
	owner          string
	editor         *order.Editor
	counterparties []entity.Counterparty
	inFlight       bool
	discarded      bool
	touched        time.Time
}

// Service registro de editores en memoria del proceso.
type Service struct {
	catalog  ports.CatalogProvider
	parties  ports.CounterpartyProvider
	gateway  ports.SubmissionGateway
	renderer ports.PreviewRenderer
	policy   *access.Policy
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	editors map[string]*draftSession
}

// Deps colaboradores del servicio.
type Deps struct {
	Catalog  ports.CatalogProvider
	Parties  ports.CounterpartyProvider
	Gateway  ports.SubmissionGateway
	Renderer ports.PreviewRenderer
	Policy   *access.Policy
	Logger   *logger.Logger
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		catalog:  d.Catalog,
		parties:  d.Parties,
		gateway:  d.Gateway,
		renderer: d.Renderer,
		policy:   d.Policy,
		log:      log.Component("editor"),
		now:      time.Now,
		editors:  make(map[string]*draftSession),
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// pageFor sección que habilita cada modo.
func pageFor(m order.Mode) access.Page {
	if m == order.ModePurchase {
		return "purchases"
	}
	return "sales"
}

func credentials(sess *entity.Session) ports.Credentials {
	return ports.Credentials{Cookie: sess.BackendCookie}
}

// Open carga catálogo y contrapartes una sola vez y abre un borrador con una línea en blanco.
// El rol debe tener acceso a la sección del modo (sales o purchases).
func (s *Service) Open(ctx context.Context, sess *entity.Session, mode string) (*dto.EditorResponse, error) {
	m := order.Mode(mode)
	if !m.Valid() {
		return nil, fmt.Errorf("%w: modo %q", domain.ErrInvalidInput, mode)
	}
	page := pageFor(m)
	if !s.policy.IsAllowed(access.Role(sess.Role), page) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccessDenied, page)
	}

	kind := entity.CounterpartyCustomer
	if m == order.ModePurchase {
		kind = entity.CounterpartySupplier
	}
	cred := credentials(sess)

	var (
		wg          sync.WaitGroup
		products    []entity.Product
		parties     []entity.Counterparty
		productsErr error
		partiesErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = s.catalog.ListProducts(ctx, cred)
	}()
	go func() {
		defer wg.Done()
		parties, partiesErr = s.parties.ListCounterparties(ctx, cred, kind)
	}()
	wg.Wait()
	if productsErr != nil {
		return nil, productsErr
	}
	if partiesErr != nil {
		return nil, partiesErr
	}

	items := make([]order.CatalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, order.CatalogItem{
			Ref:           p.Ref,
			Name:          p.Name,
			SalePrice:     p.SalePrice,
			PurchasePrice: p.PurchasePrice,
			Stock:         p.Stock,
		})
	}
	refs := make([]string, 0, len(parties))
	for _, c := range parties {
		refs = append(refs, c.Ref)
	}

	ed, err := order.Open(m, refs, order.NewCatalog(items))
	if err != nil {
		return nil, err
	}
	ds := &draftSession{
		id:             uuid.New().String(),
		owner:          sess.ID,
		editor:         ed,
		counterparties: parties,
		touched:        s.now(),
	}

	s.mu.Lock()
	s.editors[ds.id] = ds
	s.mu.Unlock()

	s.log.Debug().Str("editor_id", ds.id).Str("mode", mode).Str("session_id", sess.ID).
		Int("products", len(items)).Int("counterparties", len(parties)).Msg("editor abierto")
	return ds.view(true), nil
}

// Get proyección del borrador con sus opciones. Se puede consultar durante un envío.
func (s *Service) Get(_ context.Context, sess *entity.Session, id string) (*dto.EditorResponse, error) {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return nil, err
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.discarded {
		return nil, notFound(id)
	}
	return ds.view(true), nil
}

// Validate reglas violadas del borrador sin enviarlo.
func (s *Service) Validate(_ context.Context, sess *entity.Session, id string) (*dto.ValidationResponse, error) {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return nil, err
	}
	ds.mu.Lock()
	errs := ds.editor.Validate()
	ds.mu.Unlock()

	return &dto.ValidationResponse{
		Valid:  len(errs) == 0,
		Errors: toValidationDTOs(errs),
	}, nil
}

// Cancel descarta el borrador de inmediato, incluso con un envío pendiente.
// La respuesta tardía de ese envío se ignora.
func (s *Service) Cancel(_ context.Context, sess *entity.Session, id string) error {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return err
	}
	s.remove(id)

	ds.mu.Lock()
	inFlight := ds.inFlight
	ds.discarded = true
	ds.mu.Unlock()

	s.log.Debug().Str("editor_id", id).Bool("in_flight", inFlight).Msg("editor cancelado")
	return nil
}

// CloseAll descarta todos los editores de una sesión (logout). Devuelve cuántos cerró.
func (s *Service) CloseAll(sessionID string) int {
	s.mu.Lock()
	var closed []*draftSession
	for id, ds := range s.editors {
		if ds.owner == sessionID {
			closed = append(closed, ds)
			delete(s.editors, id)
		}
	}
	s.mu.Unlock()

	for _, ds := range closed {
		ds.mu.Lock()
		ds.discarded = true
		ds.mu.Unlock()
	}
	return len(closed)
}

// Sweep descarta los editores sin actividad desde hace más de maxIdle.
// Los que tienen un envío pendiente se conservan.
func (s *Service) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	all := make([]*draftSession, 0, len(s.editors))
	for _, ds := range s.editors {
		all = append(all, ds)
	}
	s.mu.Unlock()

	n := 0
	for _, ds := range all {
		ds.mu.Lock()
		stale := !ds.inFlight && !ds.discarded && ds.touched.Before(cutoff)
		if stale {
			ds.discarded = true
		}
		ds.mu.Unlock()
		if stale {
			s.remove(ds.id)
			n++
		}
	}
	if n > 0 {
		s.log.Info().Int("editors", n).Msg("editores inactivos descartados")
	}
	return n
}

// Len cantidad de editores abiertos.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.editors)
}

// lookup un editor de otra sesión se reporta igual que uno inexistente.
func (s *Service) lookup(owner, id string) (*draftSession, error) {
	s.mu.Lock()
	ds, ok := s.editors[id]
	s.mu.Unlock()
	if !ok || ds.owner != owner {
		return nil, notFound(id)
	}
	return ds, nil
}

func (s *Service) remove(id string) {
	s.mu.Lock()
	delete(s.editors, id)
	s.mu.Unlock()
}

func notFound(id string) error {
	return fmt.Errorf("%w: editor %s", domain.ErrNotFound, id)
}
