package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// SalesUseCase casos de uso del ledger de ventas semanales.
type SalesUseCase struct {
	sales    repository.SalesRepository
	stores   repository.StoreRepository
	products repository.ProductRepository
}

// NewSalesUseCase construye el caso de uso del ledger.
func NewSalesUseCase(sales repository.SalesRepository, stores repository.StoreRepository, products repository.ProductRepository) *SalesUseCase {
	return &SalesUseCase{sales: sales, stores: stores, products: products}
}

// Create registra una venta semanal. La tienda y el producto referenciados
// deben existir: el ledger no admite referencias colgantes nuevas.
func (uc *SalesUseCase) Create(ctx context.Context, req *dto.CreateSalesRecordRequest) (*dto.SalesRecordResponse, error) {
	week, err := time.Parse(dto.WeekLayout, req.Week)
	if err != nil {
		return nil, fmt.Errorf("semana %q inválida: %w", req.Week, domain.ErrInvalidInput)
	}

	store, err := uc.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("verificando tienda: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("tienda %d no existe: %w", req.StoreID, domain.ErrInvalidInput)
	}
	product, err := uc.products.GetBySKU(ctx, req.SKUID)
	if err != nil {
		return nil, fmt.Errorf("verificando producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d no existe: %w", req.SKUID, domain.ErrInvalidInput)
	}

	record := &entity.SalesRecord{
		Week:       week,
		StoreID:    req.StoreID,
		SKUID:      req.SKUID,
		TotalPrice: req.TotalPrice,
		BasePrice:  req.BasePrice,
		UnitsSold:  req.UnitsSold,
		IsFeatured: req.IsFeatured,
		IsDisplay:  req.IsDisplay,
	}
	if err := uc.sales.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("creando registro de venta: %w", err)
	}
	return toSalesResponse(record), nil
}

// GetByID obtiene un registro; ErrNotFound si no existe.
func (uc *SalesUseCase) GetByID(ctx context.Context, recordID int64) (*dto.SalesRecordResponse, error) {
	record, err := uc.sales.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return toSalesResponse(record), nil
}

// Update corrección explícita de un registro histórico, campo a campo.
func (uc *SalesUseCase) Update(ctx context.Context, recordID int64, req *dto.UpdateSalesRecordRequest) (*dto.SalesRecordResponse, error) {
	record, err := uc.sales.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	if req.Week != nil {
		week, err := time.Parse(dto.WeekLayout, *req.Week)
		if err != nil {
			return nil, fmt.Errorf("semana %q inválida: %w", *req.Week, domain.ErrInvalidInput)
		}
		record.Week = week
	}
	if req.StoreID != nil {
		record.StoreID = *req.StoreID
	}
	if req.SKUID != nil {
		record.SKUID = *req.SKUID
	}
	if req.TotalPrice != nil {
		record.TotalPrice = *req.TotalPrice
	}
	if req.BasePrice != nil {
		record.BasePrice = *req.BasePrice
	}
	if req.UnitsSold != nil {
		record.UnitsSold = *req.UnitsSold
	}
	if req.IsFeatured != nil {
		record.IsFeatured = *req.IsFeatured
	}
	if req.IsDisplay != nil {
		record.IsDisplay = *req.IsDisplay
	}
	if err := uc.sales.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("actualizando registro %d: %w", recordID, err)
	}
	return toSalesResponse(record), nil
}

// List listado paginado, orden por defecto record_id ascendente.
func (uc *SalesUseCase) List(ctx context.Context, query dto.PageQuery) (*dto.SalesListResponse, error) {
	params := query.ToParams()
	params.Normalize("record_id")

	records, total, err := uc.sales.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listando ventas: %w", err)
	}
	return &dto.SalesListResponse{Data: toSalesResponses(records), Total: total}, nil
}

// ListByStore ventas de una tienda, sin paginar.
func (uc *SalesUseCase) ListByStore(ctx context.Context, storeID int64) ([]dto.SalesRecordResponse, error) {
	records, err := uc.sales.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("ventas de la tienda %d: %w", storeID, err)
	}
	return toSalesResponses(records), nil
}

// ListByProduct ventas de un producto, sin paginar.
func (uc *SalesUseCase) ListByProduct(ctx context.Context, skuID int64) ([]dto.SalesRecordResponse, error) {
	records, err := uc.sales.ListByProduct(ctx, skuID)
	if err != nil {
		return nil, fmt.Errorf("ventas del producto %d: %w", skuID, err)
	}
	return toSalesResponses(records), nil
}

// ListByWeek ventas de una semana exacta.
func (uc *SalesUseCase) ListByWeek(ctx context.Context, week string) ([]dto.SalesRecordResponse, error) {
	parsed, err := time.Parse(dto.WeekLayout, week)
	if err != nil {
		return nil, fmt.Errorf("semana %q inválida: %w", week, domain.ErrInvalidInput)
	}
	records, err := uc.sales.ListByWeek(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("ventas de la semana %s: %w", week, err)
	}
	return toSalesResponses(records), nil
}

// Delete elimina un registro del ledger.
func (uc *SalesUseCase) Delete(ctx context.Context, recordID int64) error {
	return uc.sales.Delete(ctx, recordID)
}

func toSalesResponse(r *entity.SalesRecord) *dto.SalesRecordResponse {
	return &dto.SalesRecordResponse{
		RecordID:   r.RecordID,
		Week:       r.Week.Format(dto.WeekLayout),
		StoreID:    r.StoreID,
		SKUID:      r.SKUID,
		TotalPrice: r.TotalPrice,
		BasePrice:  r.BasePrice,
		UnitsSold:  r.UnitsSold,
		IsFeatured: r.IsFeatured,
		IsDisplay:  r.IsDisplay,
	}
}

func toSalesResponses(records []*entity.SalesRecord) []dto.SalesRecordResponse {
	out := make([]dto.SalesRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *toSalesResponse(r))
	}
	return out
}
