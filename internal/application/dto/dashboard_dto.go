package dto

import "github.com/shopspring/decimal"

// TotalSalesResponse total del período actual y variación porcentual contra
// el período anterior (1 decimal, redondeo half-away-from-zero).
type TotalSalesResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Change decimal.Decimal `json:"change"`
}

// TopItem entrada de un ranking top-N (tiendas o productos).
type TopItem struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Value  decimal.Decimal `json:"value"`
	Change decimal.Decimal `json:"change"`
}

// StorePerformanceResponse porcentaje agregado de desempeño más su
// variación período contra período.
type StorePerformanceResponse struct {
	Percentage decimal.Decimal `json:"percentage"`
	Change     decimal.Decimal `json:"change"`
}

// LocationPoint ventas agregadas de una tienda con su coordenada, para
// visualización espacial. Solo aparecen tiendas con >= 1 venta en la ventana.
type LocationPoint struct {
	Lat   float64         `json:"lat"`
	Lng   float64         `json:"lng"`
	Value decimal.Decimal `json:"value"`
	Name  string          `json:"name"`
}

// PredictionPoint un período de la serie de predicción. Actual se omite
// (no cero) en períodos futuros.
type PredictionPoint struct {
	Date      string           `json:"date"`
	Predicted decimal.Decimal  `json:"predicted"`
	Actual    *decimal.Decimal `json:"actual,omitempty"`
}

// ProductShare participación porcentual de un producto sobre el total
// vendido. Las participaciones suman ~100 salvo redondeo.
type ProductShare struct {
	ProductName string          `json:"product_name"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// TrendingResponse porcentaje de tendencia y etiqueta del período cubierto.
type TrendingResponse struct {
	Trending decimal.Decimal `json:"trending"`
	Period   string          `json:"period"`
}
