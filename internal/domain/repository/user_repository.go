package repository

import (
	"context"

	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Get/Find devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail compara el email exacto tal como fue almacenado
	// (sensible a mayúsculas).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, params ListParams) ([]*entity.User, int, error)
	Delete(ctx context.Context, id string) error
}
