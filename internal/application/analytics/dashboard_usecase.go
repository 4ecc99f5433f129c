// Package analytics implementa el agregador del dashboard: sumas por
// ventana de tiempo, rankings, variaciones porcentuales, distribuciones y
// delegación de predicciones.
//
// Toda ventana se ancla en la última semana presente en el ledger, nunca en
// el reloj de pared: el ledger puede ir retrasado respecto al tiempo real.
// Las lecturas son snapshot best-effort (ver repository.SalesLedger).
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

const (
	defaultWindowDays    = 7
	trailingWeeks        = 4 // ventana fija de los rankings, por convención
	defaultTopLimit      = 5
	defaultForecastWeeks = 4
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase calcula los agregados del dashboard sobre el ledger.
type DashboardUseCase struct {
	ledger   repository.SalesLedger
	forecast repository.ForecastProvider
}

// NewDashboardUseCase construye el agregador.
func NewDashboardUseCase(ledger repository.SalesLedger, forecast repository.ForecastProvider) *DashboardUseCase {
	return &DashboardUseCase{ledger: ledger, forecast: forecast}
}

// retryRead ejecuta una lectura y la reintenta una sola vez si falló el
// sistema externo. Solo lecturas: las escrituras nunca se reintentan
// automáticamente (riesgo de duplicados).
func retryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err != nil && errors.Is(err, domain.ErrUpstream) && ctx.Err() == nil {
		return fn()
	}
	return out, err
}

// windows devuelve la ventana actual [latest-days, latest] y la anterior
// [latest-2*days, latest-days) ancladas en la última semana del ledger.
func windows(latest time.Time, days int) (current, previous repository.Window) {
	start := latest.AddDate(0, 0, -days)
	current = repository.Window{From: start, To: latest}
	previous = repository.Window{From: latest.AddDate(0, 0, -2*days), To: start, ExcludeTo: true}
	return current, previous
}

// changePercent calcula (cur-prev)/prev*100 redondeado a 1 decimal
// (half-away-from-zero). Base cero → cambio 0 por definición, nunca un
// error ni NaN: solo la ausencia total de datos es un error.
func changePercent(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(1)
}

// TotalSales suma las ventas de la ventana actual y su variación contra la
// ventana anterior. days <= 0 usa el default de 7.
// Ledger vacío → domain.ErrNoData: "sin datos" se distingue de "ventas en cero".
func (uc *DashboardUseCase) TotalSales(ctx context.Context, days int) (*dto.TotalSalesResponse, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, previous := windows(latest, days)

	amount, err := retryRead(ctx, func() (decimal.Decimal, error) { return uc.ledger.SumTotal(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("total ventas ventana actual: %w", err)
	}
	prevAmount, err := retryRead(ctx, func() (decimal.Decimal, error) { return uc.ledger.SumTotal(ctx, previous) })
	if err != nil {
		return nil, fmt.Errorf("total ventas ventana anterior: %w", err)
	}

	return &dto.TotalSalesResponse{
		Amount: amount,
		Change: changePercent(amount, prevAmount),
	}, nil
}

// TopStores ranking de tiendas por ventas en la ventana móvil de 4 semanas,
// descendente por total; empates se resuelven por id menor primero (orden
// estable y determinista, obligatorio para un top-N sin paginación).
// limit < 1 usa el default de 5; pedir más de lo disponible devuelve todo.
func (uc *DashboardUseCase) TopStores(ctx context.Context, limit int) ([]dto.TopItem, error) {
	rows, prev, err := uc.trailingSums(ctx, uc.ledger.SumByStore)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].StoreID < rows[j].StoreID
	})
	rows = capRows(rows, limit)

	items := make([]dto.TopItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopItem{
			ID:     r.StoreID,
			Name:   r.StoreName,
			Value:  r.Total,
			Change: changePercent(r.Total, prev[r.StoreID]),
		})
	}
	return items, nil
}

// TopProducts ranking de productos; misma semántica de ventana, desempate y
// límite que TopStores.
func (uc *DashboardUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopItem, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, previous := windows(latest, trailingWeeks*7)

	rows, err := retryRead(ctx, func() ([]repository.ProductSales, error) { return uc.ledger.SumByProduct(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("ventas por producto: %w", err)
	}
	prevRows, err := retryRead(ctx, func() ([]repository.ProductSales, error) { return uc.ledger.SumByProduct(ctx, previous) })
	if err != nil {
		return nil, fmt.Errorf("ventas por producto (ventana anterior): %w", err)
	}
	prev := make(map[int64]decimal.Decimal, len(prevRows))
	for _, r := range prevRows {
		prev[r.SKUID] = r.Total
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].SKUID < rows[j].SKUID
	})
	if limit < 1 {
		limit = defaultTopLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	items := make([]dto.TopItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopItem{
			ID:     r.SKUID,
			Name:   r.ProductName,
			Value:  r.Total,
			Change: changePercent(r.Total, prev[r.SKUID]),
		})
	}
	return items, nil
}

// trailingSums obtiene las sumas por tienda de la ventana móvil actual y un
// mapa id → total de la anterior.
func (uc *DashboardUseCase) trailingSums(
	ctx context.Context,
	sum func(context.Context, repository.Window) ([]repository.StoreSales, error),
) ([]repository.StoreSales, map[int64]decimal.Decimal, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, nil, err
	}
	current, previous := windows(latest, trailingWeeks*7)

	rows, err := retryRead(ctx, func() ([]repository.StoreSales, error) { return sum(ctx, current) })
	if err != nil {
		return nil, nil, fmt.Errorf("ventas por tienda: %w", err)
	}
	prevRows, err := retryRead(ctx, func() ([]repository.StoreSales, error) { return sum(ctx, previous) })
	if err != nil {
		return nil, nil, fmt.Errorf("ventas por tienda (ventana anterior): %w", err)
	}
	prev := make(map[int64]decimal.Decimal, len(prevRows))
	for _, r := range prevRows {
		prev[r.StoreID] = r.Total
	}
	return rows, prev, nil
}

func capRows(rows []repository.StoreSales, limit int) []repository.StoreSales {
	if limit < 1 {
		limit = defaultTopLimit
	}
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// StorePerformance porcentaje de tiendas con ventas en la ventana móvil
// sobre el total de tiendas registradas, y su variación contra la ventana
// anterior. Misma política de división por cero que TotalSales.
func (uc *DashboardUseCase) StorePerformance(ctx context.Context) (*dto.StorePerformanceResponse, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, previous := windows(latest, trailingWeeks*7)

	total, err := retryRead(ctx, func() (int, error) { return uc.ledger.CountStores(ctx) })
	if err != nil {
		return nil, fmt.Errorf("conteo de tiendas: %w", err)
	}
	if total == 0 {
		return nil, domain.ErrNoData
	}
	active, err := retryRead(ctx, func() (int, error) { return uc.ledger.CountActiveStores(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("tiendas activas: %w", err)
	}
	prevActive, err := retryRead(ctx, func() (int, error) { return uc.ledger.CountActiveStores(ctx, previous) })
	if err != nil {
		return nil, fmt.Errorf("tiendas activas (ventana anterior): %w", err)
	}

	pct := ratioPercent(active, total)
	prevPct := ratioPercent(prevActive, total)
	return &dto.StorePerformanceResponse{
		Percentage: pct,
		Change:     changePercent(pct, prevPct),
	}, nil
}

func ratioPercent(part, whole int) decimal.Decimal {
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(whole))).
		Mul(hundred).
		Round(1)
}

// SalesDistribution ventas agregadas por tienda con su coordenada, para el
// mapa. Solo aparecen tiendas con al menos una venta en la ventana; las
// tiendas con coordenada ilegible o referencia colgante se omiten.
func (uc *DashboardUseCase) SalesDistribution(ctx context.Context) ([]dto.LocationPoint, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, _ := windows(latest, trailingWeeks*7)

	rows, err := retryRead(ctx, func() ([]repository.StoreSales, error) { return uc.ledger.SumByStore(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("distribución de ventas: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StoreID < rows[j].StoreID })

	points := make([]dto.LocationPoint, 0, len(rows))
	for _, r := range rows {
		lat, lng, ok := parseLocation(r.Location)
		if !ok {
			continue
		}
		points = append(points, dto.LocationPoint{
			Lat:   lat,
			Lng:   lng,
			Value: r.Total,
			Name:  r.StoreName,
		})
	}
	return points, nil
}

// parseLocation interpreta "lat,lng".
func parseLocation(loc string) (lat, lng float64, ok bool) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// SalesPredictions delega en el Forecast Provider externo y normaliza la
// serie: Actual solo se conserva en períodos ya transcurridos; en períodos
// futuros se anula para que la ausencia no se confunda con un cero real.
func (uc *DashboardUseCase) SalesPredictions(ctx context.Context, skuID, storeID *int64, weeks int) ([]dto.PredictionPoint, error) {
	if weeks < 1 {
		weeks = defaultForecastWeeks
	}
	req := repository.ForecastRequest{SKUID: skuID, StoreID: storeID, Weeks: weeks}
	points, err := retryRead(ctx, func() ([]repository.ForecastPoint, error) { return uc.forecast.Predict(ctx, req) })
	if err != nil {
		return nil, fmt.Errorf("forecast provider: %w", err)
	}

	latest, err := uc.ledger.LatestWeek(ctx)
	noHistory := errors.Is(err, domain.ErrNoData)
	if err != nil && !noHistory {
		return nil, err
	}

	out := make([]dto.PredictionPoint, 0, len(points))
	for _, p := range points {
		actual := p.Actual
		if noHistory || p.Week.After(latest) {
			actual = nil
		}
		out = append(out, dto.PredictionPoint{
			Date:      p.Week.Format(dto.WeekLayout),
			Predicted: p.Predicted,
			Actual:    actual,
		})
	}
	return out, nil
}

// ProductDistribution participación porcentual de cada producto sobre el
// total vendido en la ventana móvil. Las participaciones suman ~100 dentro
// de la tolerancia de redondeo (2 decimales).
func (uc *DashboardUseCase) ProductDistribution(ctx context.Context) ([]dto.ProductShare, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, _ := windows(latest, trailingWeeks*7)

	rows, err := retryRead(ctx, func() ([]repository.ProductSales, error) { return uc.ledger.SumByProduct(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("distribución por producto: %w", err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].SKUID < rows[j].SKUID
	})

	shares := make([]dto.ProductShare, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = r.Total.Div(total).Mul(hundred).Round(2)
		}
		shares = append(shares, dto.ProductShare{
			ProductName: r.ProductName,
			Percentage:  pct,
		})
	}
	return shares, nil
}

// TrendingMetrics porcentaje de tendencia de la ventana semanal actual
// contra la anterior, con la etiqueta del período que cubre.
func (uc *DashboardUseCase) TrendingMetrics(ctx context.Context) (*dto.TrendingResponse, error) {
	latest, err := retryRead(ctx, func() (time.Time, error) { return uc.ledger.LatestWeek(ctx) })
	if err != nil {
		return nil, err
	}
	current, previous := windows(latest, defaultWindowDays)

	amount, err := retryRead(ctx, func() (decimal.Decimal, error) { return uc.ledger.SumTotal(ctx, current) })
	if err != nil {
		return nil, fmt.Errorf("tendencia ventana actual: %w", err)
	}
	prevAmount, err := retryRead(ctx, func() (decimal.Decimal, error) { return uc.ledger.SumTotal(ctx, previous) })
	if err != nil {
		return nil, fmt.Errorf("tendencia ventana anterior: %w", err)
	}

	return &dto.TrendingResponse{
		Trending: changePercent(amount, prevAmount),
		Period:   current.From.Format(dto.WeekLayout) + " a " + current.To.Format(dto.WeekLayout),
	}, nil
}
