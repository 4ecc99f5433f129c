package repository

import "time"

// Orden de listado.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams parámetros de paginación/orden para los listados.
// Contrato: offset = (page-1)*limit; page y limit son >= 1.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc | desc
}

// Normalize aplica los valores por defecto del contrato: page=1, limit=10,
// orden ascendente y la columna de orden propia de cada colección.
func (p *ListParams) Normalize(defaultSort string) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.SortBy == "" {
		p.SortBy = defaultSort
	}
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
}

// Offset devuelve el desplazamiento según el contrato de paginación.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Window acota un agregado en el tiempo. Si ExcludeTo es true el rango es
// semiabierto [From, To); si no, cerrado [From, To].
type Window struct {
	From      time.Time
	To        time.Time
	ExcludeTo bool
}
