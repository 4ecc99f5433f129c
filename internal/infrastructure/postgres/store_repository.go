package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	pool *pgxpool.Pool
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(pool *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

var storeSortColumns = map[string]bool{
	"store_id": true, "store_name": true,
}

// Create persiste una tienda nueva.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (store_id, store_name, location, manager_id)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, store.StoreID, store.StoreName, store.Location, store.ManagerID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tienda %d duplicada: %w", store.StoreID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda; (nil, nil) si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, storeID int64) (*entity.Store, error) {
	query := `
		SELECT store_id, store_name, location, manager_id
		FROM stores WHERE store_id = $1`
	var s entity.Store
	err := r.pool.QueryRow(ctx, query, storeID).Scan(&s.StoreID, &s.StoreName, &s.Location, &s.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// Update sobrescribe los campos mutables de la tienda.
func (r *StoreRepo) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores SET store_name = $2, location = $3, manager_id = $4
		WHERE store_id = $1`
	tag, err := r.pool.Exec(ctx, query, store.StoreID, store.StoreName, store.Location, store.ManagerID)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página pedida y el total de tiendas.
func (r *StoreRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Store, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}

	query := `
		SELECT store_id, store_name, location, manager_id
		FROM stores` +
		sortClause(storeSortColumns, params.SortBy, "store_id", params.SortOrder) +
		` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.StoreID, &s.StoreName, &s.Location, &s.ManagerID); err != nil {
			return nil, 0, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, &s)
	}
	return stores, total, rows.Err()
}

// Delete elimina la tienda; ErrNotFound si no existía.
func (r *StoreRepo) Delete(ctx context.Context, storeID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE store_id = $1`, storeID)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
