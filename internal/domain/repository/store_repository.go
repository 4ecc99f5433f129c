package repository

import (
	"context"

	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, storeID int64) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// List pagina las tiendas; orden por defecto store_id ascendente.
	List(ctx context.Context, params ListParams) ([]*entity.Store, int, error)
	Delete(ctx context.Context, storeID int64) error
}
