package dto

import "github.com/shopspring/decimal"

// WeekLayout formato de fecha del campo week en la API.
const WeekLayout = "2006-01-02"

// CreateSalesRecordRequest alta de un registro en el ledger de ventas.
type CreateSalesRecordRequest struct {
	Week       string          `json:"week" validate:"required,datetime=2006-01-02"`
	StoreID    int64           `json:"store_id" validate:"required,min=1"`
	SKUID      int64           `json:"sku_id" validate:"required,min=1"`
	TotalPrice decimal.Decimal `json:"total_price"`
	BasePrice  decimal.Decimal `json:"base_price"`
	UnitsSold  int             `json:"units_sold" validate:"required,min=1"`
	IsFeatured bool            `json:"is_featured"`
	IsDisplay  bool            `json:"is_display"`
}

// UpdateSalesRecordRequest corrección explícita de un registro histórico.
type UpdateSalesRecordRequest struct {
	Week       *string          `json:"week" validate:"omitempty,datetime=2006-01-02"`
	StoreID    *int64           `json:"store_id" validate:"omitempty,min=1"`
	SKUID      *int64           `json:"sku_id" validate:"omitempty,min=1"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	BasePrice  *decimal.Decimal `json:"base_price"`
	UnitsSold  *int             `json:"units_sold" validate:"omitempty,min=1"`
	IsFeatured *bool            `json:"is_featured"`
	IsDisplay  *bool            `json:"is_display"`
}

// SalesRecordResponse representación pública de un registro de venta.
type SalesRecordResponse struct {
	RecordID   int64           `json:"record_id"`
	Week       string          `json:"week"`
	StoreID    int64           `json:"store_id"`
	SKUID      int64           `json:"sku_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	BasePrice  decimal.Decimal `json:"base_price"`
	UnitsSold  int             `json:"units_sold"`
	IsFeatured bool            `json:"is_featured"`
	IsDisplay  bool            `json:"is_display"`
}

// SalesListResponse listado paginado de registros de venta.
type SalesListResponse struct {
	Data  []SalesRecordResponse `json:"data"`
	Total int                   `json:"total"`
}
