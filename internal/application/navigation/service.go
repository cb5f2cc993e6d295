// Package navigation aplica la política de acceso a cada cambio de sección y carga
// los datos de la página resultante desde el backend.
package navigation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/repository"
	"github.com/jhoicas/inventario-consola/pkg/logger"
)

// Loader obtiene los datos de una página. Las páginas sin loader no tienen datos.
type Loader func(ctx context.Context, cred ports.Credentials) (any, error)

// Service caso de uso de navegación.
type Service struct {
	policy   *access.Policy
	entries  []access.NavEntry
	sessions repository.SessionRepository
	loaders  map[access.Page]Loader
	log      *logger.Logger
}

// NewService construye el servicio con los loaders de dashboard, productos, ventas y usuarios.
func NewService(
	policy *access.Policy,
	entries []access.NavEntry,
	sessions repository.SessionRepository,
	pages ports.PageDataProvider,
	catalog ports.CatalogProvider,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		policy:   policy,
		entries:  entries,
		sessions: sessions,
		loaders:  make(map[access.Page]Loader),
		log:      log.Component("navigation"),
	}
	s.loaders["dashboard"] = dashboardLoader(pages)
	s.loaders["products"] = productsLoader(catalog)
	s.loaders["sales"] = salesLoader(pages)
	s.loaders["users"] = usersLoader(pages)
	return s
}

// Register agrega o reemplaza el loader de una página.
func (s *Service) Register(page access.Page, l Loader) {
	s.loaders[page] = l
}

// Menu entradas visibles para el rol de la sesión y página activa.
func (s *Service) Menu(sess *entity.Session) dto.MenuResponse {
	visible := s.policy.VisibleNavEntries(access.Role(sess.Role), s.entries)
	out := dto.MenuResponse{
		Entries: make([]dto.NavEntryResponse, 0, len(visible)),
		Active:  sess.ActivePage,
	}
	for _, e := range visible {
		out.Entries = append(out.Entries, dto.NavEntryResponse{Page: string(e.Page), Title: e.Title})
	}
	return out
}

// Navigate aplica la guarda de navegación, persiste la página activa y carga sus datos.
// ErrAccessDenied deja la sesión sin cambios. Si la carga de datos falla, la página
// activa ya quedó registrada y se devuelve el error del backend.
func (s *Service) Navigate(ctx context.Context, sess *entity.Session, page string) (*dto.NavigateResponse, error) {
	if page == "" {
		return nil, fmt.Errorf("%w: página vacía", domain.ErrInvalidInput)
	}

	nav := access.NewNavigator(s.policy, access.Page(sess.ActivePage))
	decision, err := nav.RequestNavigate(access.Role(sess.Role), access.Page(page))
	if err != nil {
		s.log.Warn().Str("role", sess.Role).Str("page", page).Msg("acceso denegado")
		return nil, err
	}

	resp := &dto.NavigateResponse{
		Page:       string(decision.Page),
		Requested:  string(decision.Requested),
		Redirected: decision.Redirected,
	}
	if w := decision.Warning(); w != nil {
		resp.Warning = domain.ErrNavigationRedirected.Error()
		s.log.Warn().Err(w).Str("role", sess.Role).Str("requested", page).Msg("navegación redirigida")
	}

	if active := string(nav.Active()); active != sess.ActivePage {
		sess.ActivePage = active
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("guardar sesión: %w", err)
		}
	}

	loader, ok := s.loaders[decision.Page]
	if !ok {
		return resp, nil
	}
	data, err := loader(ctx, ports.Credentials{Cookie: sess.BackendCookie})
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			s.log.Error().Err(err).Str("page", resp.Page).Msg("error cargando datos de la página")
		}
		return nil, err
	}
	resp.Data = data
	return resp, nil
}
