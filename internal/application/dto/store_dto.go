package dto

// CreateStoreRequest alta de tienda.
type CreateStoreRequest struct {
	StoreID   int64   `json:"store_id" validate:"required,min=1"`
	StoreName string  `json:"store_name" validate:"required"`
	Location  string  `json:"location" validate:"required"`
	ManagerID *string `json:"manager_id"`
}

// UpdateStoreRequest actualización parcial de tienda.
type UpdateStoreRequest struct {
	StoreName *string `json:"store_name"`
	Location  *string `json:"location"`
	ManagerID *string `json:"manager_id"`
}

// StoreResponse representación pública de una tienda.
type StoreResponse struct {
	StoreID   int64   `json:"store_id"`
	StoreName string  `json:"store_name"`
	Location  string  `json:"location"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// StoreListResponse listado paginado de tiendas.
type StoreListResponse struct {
	Data  []StoreResponse `json:"data"`
	Total int             `json:"total"`
}
