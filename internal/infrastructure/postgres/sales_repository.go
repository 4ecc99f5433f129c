package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación del puerto SalesRepository sobre PostgreSQL.
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepository construye el adaptador de persistencia del ledger.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

var salesSortColumns = map[string]bool{
	"record_id": true, "week": true, "store_id": true, "sku_id": true,
	"total_price": true, "units_sold": true,
}

const salesColumns = `record_id, week, store_id, sku_id, total_price, base_price, units_sold, is_featured, is_display`

// Create persiste un registro nuevo; record_id lo asigna la secuencia de la
// tabla y se escribe de vuelta en la entidad.
func (r *SalesRepo) Create(ctx context.Context, record *entity.SalesRecord) error {
	query := `
		INSERT INTO sales_records (week, store_id, sku_id, total_price, base_price, units_sold, is_featured, is_display)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING record_id`
	err := r.pool.QueryRow(ctx, query,
		record.Week, record.StoreID, record.SKUID,
		record.TotalPrice, record.BasePrice, record.UnitsSold,
		record.IsFeatured, record.IsDisplay,
	).Scan(&record.RecordID)
	if err != nil {
		return fmt.Errorf("insert sales record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro; (nil, nil) si no existe.
func (r *SalesRepo) GetByID(ctx context.Context, recordID int64) (*entity.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE record_id = $1`
	var rec entity.SalesRecord
	err := r.pool.QueryRow(ctx, query, recordID).Scan(
		&rec.RecordID, &rec.Week, &rec.StoreID, &rec.SKUID,
		&rec.TotalPrice, &rec.BasePrice, &rec.UnitsSold,
		&rec.IsFeatured, &rec.IsDisplay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales record: %w", err)
	}
	return &rec, nil
}

// Update sobrescribe todos los campos mutables del registro.
func (r *SalesRepo) Update(ctx context.Context, record *entity.SalesRecord) error {
	query := `
		UPDATE sales_records
		SET week = $2, store_id = $3, sku_id = $4, total_price = $5,
		    base_price = $6, units_sold = $7, is_featured = $8, is_display = $9
		WHERE record_id = $1`
	tag, err := r.pool.Exec(ctx, query,
		record.RecordID, record.Week, record.StoreID, record.SKUID,
		record.TotalPrice, record.BasePrice, record.UnitsSold,
		record.IsFeatured, record.IsDisplay,
	)
	if err != nil {
		return fmt.Errorf("update sales record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página pedida y el total del ledger.
func (r *SalesRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.SalesRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales_records`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales records: %w", err)
	}

	query := `SELECT ` + salesColumns + ` FROM sales_records` +
		sortClause(salesSortColumns, params.SortBy, "record_id", params.SortOrder) +
		` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list sales records: %w", err)
	}
	defer rows.Close()

	records, err := scanSalesRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByStore ventas de una tienda, orden cronológico.
func (r *SalesRepo) ListByStore(ctx context.Context, storeID int64) ([]*entity.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE store_id = $1 ORDER BY week, record_id`
	return r.queryRecords(ctx, query, storeID)
}

// ListByProduct ventas de un producto, orden cronológico.
func (r *SalesRepo) ListByProduct(ctx context.Context, skuID int64) ([]*entity.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE sku_id = $1 ORDER BY week, record_id`
	return r.queryRecords(ctx, query, skuID)
}

// ListByWeek ventas de una fecha exacta.
func (r *SalesRepo) ListByWeek(ctx context.Context, week time.Time) ([]*entity.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE week = $1 ORDER BY record_id`
	return r.queryRecords(ctx, query, week)
}

// Delete elimina el registro; ErrNotFound si no existía.
func (r *SalesRepo) Delete(ctx context.Context, recordID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales_records WHERE record_id = $1`, recordID)
	if err != nil {
		return fmt.Errorf("delete sales record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesRepo) queryRecords(ctx context.Context, query string, arg any) ([]*entity.SalesRecord, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query sales records: %w", err)
	}
	defer rows.Close()
	return scanSalesRecords(rows)
}

func scanSalesRecords(rows pgx.Rows) ([]*entity.SalesRecord, error) {
	var records []*entity.SalesRecord
	for rows.Next() {
		var rec entity.SalesRecord
		if err := rows.Scan(
			&rec.RecordID, &rec.Week, &rec.StoreID, &rec.SKUID,
			&rec.TotalPrice, &rec.BasePrice, &rec.UnitsSold,
			&rec.IsFeatured, &rec.IsDisplay,
		); err != nil {
			return nil, fmt.Errorf("scan sales record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
