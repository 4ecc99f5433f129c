package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StoreSales suma de ventas de una tienda dentro de una ventana.
type StoreSales struct {
	StoreID   int64
	StoreName string
	Location  string
	Total     decimal.Decimal
}

// ProductSales suma de ventas de un producto dentro de una ventana.
type ProductSales struct {
	SKUID       int64
	ProductName string
	Total       decimal.Decimal
}

// SalesLedger define las lecturas agregadas sobre el ledger de ventas.
// Las implementaciones empujan la agregación (SUM/GROUP BY) al almacén;
// el ordenamiento, el desempate y los porcentajes viven en el agregador.
//
// Las lecturas son snapshot best-effort: ninguna transacción envuelve las
// varias consultas que emite un cálculo del dashboard, así que bajo
// escrituras concurrentes un resultado puede reflejar un ledger
// parcialmente actualizado. Aceptable para un dashboard.
type SalesLedger interface {
	// LatestWeek devuelve max(week) del ledger. Ledger vacío → domain.ErrNoData.
	LatestWeek(ctx context.Context) (time.Time, error)

	// SumTotal suma total_price dentro de la ventana.
	SumTotal(ctx context.Context, w Window) (decimal.Decimal, error)

	// SumByStore agrupa total_price por tienda dentro de la ventana.
	// Solo aparecen tiendas con al menos una venta. Sin orden garantizado.
	SumByStore(ctx context.Context, w Window) ([]StoreSales, error)

	// SumByProduct agrupa total_price por producto dentro de la ventana.
	SumByProduct(ctx context.Context, w Window) ([]ProductSales, error)

	// CountActiveStores cuenta tiendas con al menos una venta en la ventana.
	CountActiveStores(ctx context.Context, w Window) (int, error)

	// CountStores cuenta todas las tiendas registradas.
	CountStores(ctx context.Context) (int, error)
}
