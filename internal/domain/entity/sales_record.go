package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord es una fila del ledger de ventas, la tabla de hechos sobre la
// que se calcula toda la analítica. Historia inmutable salvo correcciones
// explícitas vía update.
//
// Week es una fecha real (columna DATE), no un número de semana: las
// búsquedas exactas comparan igualdad de fecha y la analítica la usa como
// límite de rango.
type SalesRecord struct {
	RecordID   int64
	Week       time.Time
	StoreID    int64
	SKUID      int64
	TotalPrice decimal.Decimal // >= 0
	BasePrice  decimal.Decimal // >= 0
	UnitsSold  int             // >= 1
	IsFeatured bool
	IsDisplay  bool
}
