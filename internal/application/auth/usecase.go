// Package auth envuelve la sesión del backend: la consola no valida contraseñas,
// solo guarda el rol y la cookie que entrega el backend y emite su propio token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/ports"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/repository"
	"github.com/jhoicas/inventario-consola/pkg/jwt"
	"github.com/jhoicas/inventario-consola/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// EditorCloser descarta los editores abiertos de una sesión.
type EditorCloser interface {
	CloseAll(sessionID string) int
}

// MenuProvider menú visible para la sesión.
type MenuProvider interface {
	Menu(sess *entity.Session) dto.MenuResponse
}

// AuthUseCase login, logout y datos de la sesión.
type AuthUseCase struct {
	provider ports.SessionProvider
	sessions repository.SessionRepository
	editors  EditorCloser
	menu     MenuProvider
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	provider ports.SessionProvider,
	sessions repository.SessionRepository,
	editors EditorCloser,
	menu MenuProvider,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		provider: provider,
		sessions: sessions,
		editors:  editors,
		menu:     menu,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

// Login delega las credenciales al backend, guarda la sesión y genera el JWT de la consola.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	res, err := uc.provider.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sess := &entity.Session{
		ID:            uuid.New().String(),
		UserID:        res.UserID,
		Username:      res.Username,
		DisplayName:   res.DisplayName,
		Email:         res.Email,
		Role:          res.Role,
		BackendCookie: res.Credentials.Cookie,
		CreatedAt:     now,
		ExpiresAt:     now.Add(uc.jwtCfg.TTL),
	}
	if sess.DisplayName == "" {
		sess.DisplayName = sess.Username
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, sess.UserID, sess.Role, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("session_id", sess.ID).Str("username", sess.Username).Str("role", sess.Role).Msg("login")
	return &dto.LoginResponse{
		Token:   token,
		Session: ToSessionResponse(sess),
		Menu:    uc.menu.Menu(sess),
	}, nil
}

// Session carga la sesión referida por el token. Inexistente o vencida: ErrUnauthorized.
func (uc *AuthUseCase) Session(ctx context.Context, id string) (*entity.Session, error) {
	sess, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Expired(uc.now()) {
		return nil, fmt.Errorf("%w: sesión expirada", domain.ErrUnauthorized)
	}
	return sess, nil
}

// Logout cierra la sesión del backend, descarta los editores y borra la sesión.
// Un fallo del backend se registra pero no impide cerrar la sesión local.
func (uc *AuthUseCase) Logout(ctx context.Context, sess *entity.Session) error {
	if err := uc.provider.Logout(ctx, ports.Credentials{Cookie: sess.BackendCookie}); err != nil {
		uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("logout del backend fallido")
	}
	closed := uc.editors.CloseAll(sess.ID)
	if err := uc.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	uc.log.Info().Str("session_id", sess.ID).Int("editors", closed).Msg("logout")
	return nil
}

// Me refresca los datos del usuario desde el backend y devuelve la sesión.
// Si el backend ya no reconoce la sesión, la sesión local se cierra (ErrUnauthorized).
// Si el backend no responde se devuelven los datos guardados.
func (uc *AuthUseCase) Me(ctx context.Context, sess *entity.Session) (dto.SessionResponse, error) {
	user, err := uc.provider.Me(ctx, ports.Credentials{Cookie: sess.BackendCookie})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.editors.CloseAll(sess.ID)
			if derr := uc.sessions.Delete(ctx, sess.ID); derr != nil {
				uc.log.Error().Err(derr).Str("session_id", sess.ID).Msg("borrar sesión vencida")
			}
			return dto.SessionResponse{}, fmt.Errorf("%w: sesión del backend vencida", domain.ErrUnauthorized)
		}
		uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("no se pudo refrescar el usuario, se usan los datos guardados")
		return ToSessionResponse(sess), nil
	}

	changed := false
	if user.Role != "" && user.Role != sess.Role {
		uc.log.Info().Str("session_id", sess.ID).Str("from", sess.Role).Str("to", user.Role).Msg("rol actualizado")
		sess.Role = user.Role
		changed = true
	}
	if user.DisplayName != "" && user.DisplayName != sess.DisplayName {
		sess.DisplayName = user.DisplayName
		changed = true
	}
	if user.Email != sess.Email {
		sess.Email = user.Email
		changed = true
	}
	if changed {
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return dto.SessionResponse{}, fmt.Errorf("guardar sesión: %w", err)
		}
	}
	return ToSessionResponse(sess), nil
}

func ToSessionResponse(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		UserID:      s.UserID,
		Username:    s.Username,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		Role:        s.Role,
		ActivePage:  s.ActivePage,
		ExpiresAt:   s.ExpiresAt,
	}
}
