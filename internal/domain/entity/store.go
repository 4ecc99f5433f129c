package entity

// Store representa una tienda física.
// Location guarda la coordenada geográfica como "lat,lng"; el agregador
// de distribución la parsea y omite tiendas con coordenada ilegible.
type Store struct {
	StoreID   int64
	StoreName string
	Location  string
	ManagerID *string // referencia opcional a User (back-reference, no ownership)
}
