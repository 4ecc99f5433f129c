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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

var productSortColumns = map[string]bool{
	"sku_id": true, "product_name": true, "base_price": true,
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (sku_id, product_name, base_price)
		VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, product.SKUID, product.ProductName, product.BasePrice)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %d duplicado: %w", product.SKUID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBySKU obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, skuID int64) (*entity.Product, error) {
	query := `
		SELECT sku_id, product_name, base_price
		FROM products WHERE sku_id = $1`
	var p entity.Product
	err := r.pool.QueryRow(ctx, query, skuID).Scan(&p.SKUID, &p.ProductName, &p.BasePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update sobrescribe los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET product_name = $2, base_price = $3
		WHERE sku_id = $1`
	tag, err := r.pool.Exec(ctx, query, product.SKUID, product.ProductName, product.BasePrice)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página pedida y el total del catálogo.
func (r *ProductRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Product, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `
		SELECT sku_id, product_name, base_price
		FROM products` +
		sortClause(productSortColumns, params.SortBy, "sku_id", params.SortOrder) +
		` LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListFeatured productos con al menos un registro de venta destacado.
func (r *ProductRepo) ListFeatured(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT DISTINCT p.sku_id, p.product_name, p.base_price
		FROM products p
		JOIN sales_records s ON s.sku_id = p.sku_id
		WHERE s.is_featured
		ORDER BY p.sku_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list featured: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete elimina el producto; ErrNotFound si no existía.
func (r *ProductRepo) Delete(ctx context.Context, skuID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE sku_id = $1`, skuID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.SKUID, &p.ProductName, &p.BasePrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
