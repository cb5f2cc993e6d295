package repository

import (
	"context"

	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// SessionRepository define el puerto de almacenamiento de sesiones de la consola.
// Get devuelve (nil, nil) si la sesión no existe o expiró.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
