package repository

import (
	"context"

	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetBySKU(ctx context.Context, skuID int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List pagina el catálogo; orden por defecto sku_id ascendente.
	List(ctx context.Context, params ListParams) ([]*entity.Product, int, error)
	// ListFeatured devuelve los productos que aparecen en registros de
	// venta marcados como destacados (is_featured), sin duplicados.
	ListFeatured(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, skuID int64) error
}
