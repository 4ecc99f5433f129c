package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKUID       int64           `json:"sku_id" validate:"required,min=1"`
	ProductName string          `json:"product_name" validate:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	ProductName *string          `json:"product_name"`
	BasePrice   *decimal.Decimal `json:"base_price"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	SKUID       int64           `json:"sku_id"`
	ProductName string          `json:"product_name"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int               `json:"total"`
}
