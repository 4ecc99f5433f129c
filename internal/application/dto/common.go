package dto

import "github.com/jhoicas/retail-analytics-api/internal/domain/repository"

// PageQuery parámetros de paginación aceptados por los listados.
// page y limit son >= 1 (defaults 1 y 10); sortOrder ∈ {asc, desc}.
type PageQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// ToParams convierte la query a los parámetros del puerto de listado.
// Los defaults por colección se aplican en Normalize.
func (q PageQuery) ToParams() repository.ListParams {
	return repository.ListParams{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
}

// ErrorResponse cuerpo de error HTTP. Message es apto para el caller:
// nunca incluye stacks ni detalle de queries.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
