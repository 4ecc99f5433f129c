package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ForecastRequest filtros opcionales para la predicción de ventas.
type ForecastRequest struct {
	SKUID   *int64
	StoreID *int64
	Weeks   int
}

// ForecastPoint un período de la serie de predicción. Actual es nil para
// períodos futuros: la ausencia debe distinguirse de un cero real.
type ForecastPoint struct {
	Week      time.Time
	Predicted decimal.Decimal
	Actual    *decimal.Decimal
}

// ForecastProvider es el colaborador externo que produce las predicciones
// de venta. El modelo en sí no se implementa aquí.
type ForecastProvider interface {
	Predict(ctx context.Context, req ForecastRequest) ([]ForecastPoint, error)
}
