package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// StoreUseCase casos de uso de tiendas.
type StoreUseCase struct {
	stores repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso de tiendas.
func NewStoreUseCase(stores repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{stores: stores}
}

// Create registra una tienda nueva.
func (uc *StoreUseCase) Create(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	existing, err := uc.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("verificando tienda: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("tienda %d ya existe: %w", req.StoreID, domain.ErrInvalidInput)
	}

	store := &entity.Store{
		StoreID:   req.StoreID,
		StoreName: req.StoreName,
		Location:  req.Location,
		ManagerID: req.ManagerID,
	}
	if err := uc.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("creando tienda: %w", err)
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda; ErrNotFound si no existe.
func (uc *StoreUseCase) GetByID(ctx context.Context, storeID int64) (*dto.StoreResponse, error) {
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Update actualización parcial de la tienda.
func (uc *StoreUseCase) Update(ctx context.Context, storeID int64, req *dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	if req.StoreName != nil {
		store.StoreName = *req.StoreName
	}
	if req.Location != nil {
		store.Location = *req.Location
	}
	if req.ManagerID != nil {
		store.ManagerID = req.ManagerID
	}
	if err := uc.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("actualizando tienda %d: %w", storeID, err)
	}
	return toStoreResponse(store), nil
}

// List listado paginado, orden por defecto store_id ascendente.
func (uc *StoreUseCase) List(ctx context.Context, query dto.PageQuery) (*dto.StoreListResponse, error) {
	params := query.ToParams()
	params.Normalize("store_id")

	stores, total, err := uc.stores.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listando tiendas: %w", err)
	}

	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{Data: out, Total: total}, nil
}

// Delete elimina una tienda.
func (uc *StoreUseCase) Delete(ctx context.Context, storeID int64) error {
	return uc.stores.Delete(ctx, storeID)
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		StoreID:   s.StoreID,
		StoreName: s.StoreName,
		Location:  s.Location,
		ManagerID: s.ManagerID,
	}
}
