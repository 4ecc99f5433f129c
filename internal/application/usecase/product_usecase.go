// Package usecase contiene los casos de uso CRUD del catálogo, las tiendas,
// el ledger de ventas y los usuarios. Las reglas de autorización no viven
// aquí: se resuelven en el middleware de políticas antes de llegar.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create registra un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.products.GetBySKU(ctx, req.SKUID)
	if err != nil {
		return nil, fmt.Errorf("verificando sku: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %d ya existe: %w", req.SKUID, domain.ErrInvalidInput)
	}

	product := &entity.Product{
		SKUID:       req.SKUID,
		ProductName: req.ProductName,
		BasePrice:   req.BasePrice,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("creando producto: %w", err)
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, skuID int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetBySKU(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial: solo los campos presentes cambian.
func (uc *ProductUseCase) Update(ctx context.Context, skuID int64, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetBySKU(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizando producto %d: %w", skuID, err)
	}
	return toProductResponse(product), nil
}

// List listado paginado, orden por defecto sku_id ascendente.
func (uc *ProductUseCase) List(ctx context.Context, query dto.PageQuery) (*dto.ProductListResponse, error) {
	params := query.ToParams()
	params.Normalize("sku_id")

	products, total, err := uc.products.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listando productos: %w", err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Data: out, Total: total}, nil
}

// ListFeatured productos que aparecen destacados en el ledger, sin duplicar.
func (uc *ProductUseCase) ListFeatured(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.products.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("listando destacados: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, skuID int64) error {
	return uc.products.Delete(ctx, skuID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		SKUID:       p.SKUID,
		ProductName: p.ProductName,
		BasePrice:   p.BasePrice,
	}
}
