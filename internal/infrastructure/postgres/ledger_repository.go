package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

var _ repository.SalesLedger = (*LedgerRepo)(nil)

// LedgerRepo lecturas agregadas del ledger para el dashboard. Las sumas y
// agrupaciones se empujan a SQL; el orden y los porcentajes los pone el
// agregador.
//
// Los errores de consulta se marcan con domain.ErrUpstream: para el
// agregador la base es un sistema externo y sus lecturas se reintentan.
type LedgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository construye el adaptador de lecturas agregadas.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// windowClause arma la condición de la ventana sobre week con placeholders
// $1 y $2. ExcludeTo decide si el borde superior entra o no.
func windowClause(w repository.Window) string {
	if w.ExcludeTo {
		return "week >= $1 AND week < $2"
	}
	return "week >= $1 AND week <= $2"
}

// LatestWeek max(week) del ledger; domain.ErrNoData si está vacío.
func (r *LedgerRepo) LatestWeek(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.pool.QueryRow(ctx, `SELECT MAX(week) FROM sales_records`).Scan(&latest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, fmt.Errorf("última semana: %v: %w", err, domain.ErrUpstream)
	}
	if latest == nil {
		return time.Time{}, domain.ErrNoData
	}
	return *latest, nil
}

// SumTotal suma total_price dentro de la ventana; cero si no hay filas.
func (r *LedgerRepo) SumTotal(ctx context.Context, w repository.Window) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_price), 0) FROM sales_records WHERE ` + windowClause(w)
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, w.From, w.To).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("suma de ventas: %v: %w", err, domain.ErrUpstream)
	}
	return sum, nil
}

// SumByStore agrupa por tienda dentro de la ventana, con nombre y
// coordenada resueltos en el mismo JOIN. Solo tiendas con ventas.
func (r *LedgerRepo) SumByStore(ctx context.Context, w repository.Window) ([]repository.StoreSales, error) {
	query := `
		SELECT s.store_id, st.store_name, st.location, SUM(s.total_price) AS total
		FROM sales_records s
		JOIN stores st ON st.store_id = s.store_id
		WHERE ` + windowClause(w) + `
		GROUP BY s.store_id, st.store_name, st.location`
	rows, err := r.pool.Query(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("ventas por tienda: %v: %w", err, domain.ErrUpstream)
	}
	defer rows.Close()

	var out []repository.StoreSales
	for rows.Next() {
		var row repository.StoreSales
		if err := rows.Scan(&row.StoreID, &row.StoreName, &row.Location, &row.Total); err != nil {
			return nil, fmt.Errorf("scan ventas por tienda: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SumByProduct agrupa por producto dentro de la ventana.
func (r *LedgerRepo) SumByProduct(ctx context.Context, w repository.Window) ([]repository.ProductSales, error) {
	query := `
		SELECT s.sku_id, p.product_name, SUM(s.total_price) AS total
		FROM sales_records s
		JOIN products p ON p.sku_id = s.sku_id
		WHERE ` + windowClause(w) + `
		GROUP BY s.sku_id, p.product_name`
	rows, err := r.pool.Query(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("ventas por producto: %v: %w", err, domain.ErrUpstream)
	}
	defer rows.Close()

	var out []repository.ProductSales
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(&row.SKUID, &row.ProductName, &row.Total); err != nil {
			return nil, fmt.Errorf("scan ventas por producto: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountActiveStores tiendas distintas con al menos una venta en la ventana.
func (r *LedgerRepo) CountActiveStores(ctx context.Context, w repository.Window) (int, error) {
	query := `SELECT COUNT(DISTINCT store_id) FROM sales_records WHERE ` + windowClause(w)
	var n int
	if err := r.pool.QueryRow(ctx, query, w.From, w.To).Scan(&n); err != nil {
		return 0, fmt.Errorf("tiendas activas: %v: %w", err, domain.ErrUpstream)
	}
	return n, nil
}

// CountStores total de tiendas registradas.
func (r *LedgerRepo) CountStores(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("conteo de tiendas: %v: %w", err, domain.ErrUpstream)
	}
	return n, nil
}
