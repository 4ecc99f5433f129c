package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
)

// SalesRepository define el puerto de persistencia para SalesRecord (DIP).
type SalesRepository interface {
	Create(ctx context.Context, record *entity.SalesRecord) error
	GetByID(ctx context.Context, recordID int64) (*entity.SalesRecord, error)
	Update(ctx context.Context, record *entity.SalesRecord) error
	// List pagina el ledger; orden por defecto record_id ascendente.
	List(ctx context.Context, params ListParams) ([]*entity.SalesRecord, int, error)
	ListByStore(ctx context.Context, storeID int64) ([]*entity.SalesRecord, error)
	ListByProduct(ctx context.Context, skuID int64) ([]*entity.SalesRecord, error)
	// ListByWeek compara igualdad exacta de fecha (week es DATE, no número
	// de semana).
	ListByWeek(ctx context.Context, week time.Time) ([]*entity.SalesRecord, error)
	Delete(ctx context.Context, recordID int64) error
}
