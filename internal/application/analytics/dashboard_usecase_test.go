package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics-api/internal/application/analytics"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
	"github.com/jhoicas/retail-analytics-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeForecast implementación controlable del Forecast Provider.
type fakeForecast struct {
	points   []repository.ForecastPoint
	failures int // cuántas llamadas fallan antes de responder
	calls    int
}

func (f *fakeForecast) Predict(ctx context.Context, req repository.ForecastRequest) ([]repository.ForecastPoint, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, fmt.Errorf("forecast caído: %w", domain.ErrUpstream)
	}
	return f.points, nil
}

func addSale(t *testing.T, db *memory.DB, storeID, skuID int64, week time.Time, total string) {
	t.Helper()
	err := db.Sales().Create(context.Background(), &entity.SalesRecord{
		Week:       week,
		StoreID:    storeID,
		SKUID:      skuID,
		TotalPrice: dec(total),
		BasePrice:  dec(total),
		UnitsSold:  1,
	})
	require.NoError(t, err)
}

func addStore(t *testing.T, db *memory.DB, id int64, name, location string) {
	t.Helper()
	require.NoError(t, db.Stores().Create(context.Background(), &entity.Store{
		StoreID: id, StoreName: name, Location: location,
	}))
}

func addProduct(t *testing.T, db *memory.DB, sku int64, name string) {
	t.Helper()
	require.NoError(t, db.Products().Create(context.Background(), &entity.Product{
		SKUID: sku, ProductName: name, BasePrice: dec("10"),
	}))
}

func newUC(db *memory.DB) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(db, &fakeForecast{})
}

// ──────────────────────────────────────────────────────────────────────────────
// TotalSales
// ──────────────────────────────────────────────────────────────────────────────

// Vector del contrato: última semana 2024-03-21, semana anterior suma 1000,
// semana actual suma 1200 → amount=1200, change=20.0.
func TestTotalSales_VentanaDe7Dias(t *testing.T) {
	db := memory.New()
	// Ventana anterior [2024-03-07, 2024-03-14): suma 1000
	addSale(t, db, 1, 1, date(2024, time.March, 7), "400")
	addSale(t, db, 1, 1, date(2024, time.March, 13), "600")
	// Ventana actual [2024-03-14, 2024-03-21]: suma 1200
	addSale(t, db, 1, 1, date(2024, time.March, 14), "500")
	addSale(t, db, 1, 1, date(2024, time.March, 21), "700")

	out, err := newUC(db).TotalSales(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, out.Amount.Equal(dec("1200")), "amount esperado 1200, got %s", out.Amount)
	assert.True(t, out.Change.Equal(dec("20.0")), "change esperado 20.0, got %s", out.Change)
}

// El ancla es max(week) del ledger, no el reloj de pared: un ledger viejo
// sigue produciendo resultados.
func TestTotalSales_AnclaEnUltimaSemanaDelLedger(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2020, time.January, 10), "100")
	addSale(t, db, 1, 1, date(2020, time.January, 5), "50")

	out, err := newUC(db).TotalSales(context.Background(), 7)
	require.NoError(t, err)
	// Ambos registros caen en [2020-01-03, 2020-01-10]
	assert.True(t, out.Amount.Equal(dec("150")))
}

// Ledger vacío → ErrNoData, nunca {amount:0, change:0}: "sin datos" y
// "ventas en cero" son cosas distintas para el caller.
func TestTotalSales_LedgerVacio_ErrNoData(t *testing.T) {
	db := memory.New()
	out, err := newUC(db).TotalSales(context.Background(), 7)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

// Base anterior en cero → change 0 por definición, no error ni infinito.
func TestTotalSales_BaseCero_CambioCero(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 21), "800")

	out, err := newUC(db).TotalSales(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, out.Change.IsZero(), "con base cero el cambio es 0, got %s", out.Change)
	assert.True(t, out.Amount.Equal(dec("800")))
}

// Redondeo half-away-from-zero a 1 decimal: 12.45 → 12.5 (no 12.4).
func TestTotalSales_RedondeoMitadHaciaFuera(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 10), "10000")
	addSale(t, db, 1, 1, date(2024, time.March, 21), "11245")

	out, err := newUC(db).TotalSales(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, out.Change.Equal(dec("12.5")), "12.45%% debe redondear a 12.5, got %s", out.Change)
}

// days <= 0 cae al default de 7 días.
func TestTotalSales_DefaultSieteDias(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 21), "300")
	addSale(t, db, 1, 1, date(2024, time.March, 16), "200")
	// Fuera de la ventana de 7 días
	addSale(t, db, 1, 1, date(2024, time.February, 1), "9999")

	out, err := newUC(db).TotalSales(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(dec("500")))
}

// ──────────────────────────────────────────────────────────────────────────────
// TopStores / TopProducts
// ──────────────────────────────────────────────────────────────────────────────

// Empate A=500/B=500 con A.id < B.id: A va primero. Con limit=3 se
// devuelven exactamente 3 entradas.
func TestTopStores_EmpateResueltoPorIDMenor(t *testing.T) {
	db := memory.New()
	addStore(t, db, 1, "A", "1,1")
	addStore(t, db, 2, "B", "2,2")
	addStore(t, db, 3, "C", "3,3")
	addStore(t, db, 4, "D", "4,4")
	latest := date(2024, time.March, 21)
	addSale(t, db, 2, 1, latest, "500") // B insertada antes que A a propósito
	addSale(t, db, 1, 1, latest, "500")
	addSale(t, db, 3, 1, latest, "300")
	addSale(t, db, 4, 1, latest, "100")

	top, err := newUC(db).TopStores(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 3, "limit=3 debe devolver exactamente 3 entradas")

	assert.Equal(t, int64(1), top[0].ID, "el empate lo gana el id menor")
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, int64(2), top[1].ID)
	assert.Equal(t, int64(3), top[2].ID)
}

// Pedir más de lo disponible devuelve todo lo disponible, no un error.
func TestTopStores_LimiteMayorQueDisponible(t *testing.T) {
	db := memory.New()
	addStore(t, db, 1, "A", "1,1")
	addStore(t, db, 2, "B", "2,2")
	latest := date(2024, time.March, 21)
	addSale(t, db, 1, 1, latest, "100")
	addSale(t, db, 2, 1, latest, "200")

	top, err := newUC(db).TopStores(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].ID, "mayor total primero")
}

// limit < 1 usa el default de 5.
func TestTopStores_LimitePorDefecto(t *testing.T) {
	db := memory.New()
	latest := date(2024, time.March, 21)
	for i := int64(1); i <= 7; i++ {
		addStore(t, db, i, fmt.Sprintf("S%d", i), "1,1")
		addSale(t, db, i, 1, latest, fmt.Sprintf("%d00", i))
	}

	top, err := newUC(db).TopStores(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, 5)
}

// El change de cada entrada compara la ventana móvil de 4 semanas contra
// las 4 semanas anteriores, con la misma regla de base cero.
func TestTopStores_CambioPorVentanaMovil(t *testing.T) {
	db := memory.New()
	addStore(t, db, 1, "A", "1,1")
	latest := date(2024, time.March, 21)
	addSale(t, db, 1, 1, latest, "900")
	// 5 semanas atrás: cae en la ventana anterior [latest-56d, latest-28d)
	addSale(t, db, 1, 1, latest.AddDate(0, 0, -35), "600")

	top, err := newUC(db).TopStores(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.True(t, top[0].Change.Equal(dec("50.0")), "de 600 a 900 es +50.0%%, got %s", top[0].Change)
}

func TestTopProducts_OrdenYDesempate(t *testing.T) {
	db := memory.New()
	addProduct(t, db, 10, "Café")
	addProduct(t, db, 20, "Azúcar")
	addProduct(t, db, 30, "Arroz")
	latest := date(2024, time.March, 21)
	addSale(t, db, 1, 30, latest, "250")
	addSale(t, db, 1, 10, latest, "250")
	addSale(t, db, 1, 20, latest, "400")

	top, err := newUC(db).TopProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(20), top[0].ID)
	assert.Equal(t, int64(10), top[1].ID, "empate 250/250: gana el sku menor")
	assert.Equal(t, int64(30), top[2].ID)
}

func TestTopStores_LedgerVacio_ErrNoData(t *testing.T) {
	db := memory.New()
	_, err := newUC(db).TopStores(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

// ──────────────────────────────────────────────────────────────────────────────
// StorePerformance
// ──────────────────────────────────────────────────────────────────────────────

func TestStorePerformance_PorcentajeYCambio(t *testing.T) {
	db := memory.New()
	for i := int64(1); i <= 4; i++ {
		addStore(t, db, i, fmt.Sprintf("S%d", i), "1,1")
	}
	latest := date(2024, time.March, 21)
	// Ventana actual: tiendas 1 y 2 activas → 50%
	addSale(t, db, 1, 1, latest, "100")
	addSale(t, db, 2, 1, latest, "100")
	// Ventana anterior (5 semanas atrás): solo la tienda 1 → 25%
	addSale(t, db, 1, 1, latest.AddDate(0, 0, -35), "100")

	out, err := newUC(db).StorePerformance(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Percentage.Equal(dec("50.0")), "2 de 4 tiendas → 50.0, got %s", out.Percentage)
	assert.True(t, out.Change.Equal(dec("100.0")), "de 25 a 50 es +100.0, got %s", out.Change)
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesDistribution
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesDistribution_SoloTiendasConVentasYCoordenadaValida(t *testing.T) {
	db := memory.New()
	addStore(t, db, 1, "Centro", "4.60971, -74.08175")
	addStore(t, db, 2, "Norte", "sin-coordenada")
	addStore(t, db, 3, "Sur", "6.24420, -75.58121")
	latest := date(2024, time.March, 21)
	addSale(t, db, 1, 1, latest, "300")
	addSale(t, db, 2, 1, latest, "200")
	// La tienda 3 no tiene ventas en la ventana: se omite.

	points, err := newUC(db).SalesDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 1, "solo Centro tiene ventas y coordenada parseable")

	assert.Equal(t, "Centro", points[0].Name)
	assert.InDelta(t, 4.60971, points[0].Lat, 1e-9)
	assert.InDelta(t, -74.08175, points[0].Lng, 1e-9)
	assert.True(t, points[0].Value.Equal(dec("300")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductDistribution
// ──────────────────────────────────────────────────────────────────────────────

// Las participaciones deben sumar 100 ± 0.1 para cualquier ledger no vacío.
func TestProductDistribution_SumaCien(t *testing.T) {
	db := memory.New()
	latest := date(2024, time.March, 21)
	addProduct(t, db, 1, "P1")
	addProduct(t, db, 2, "P2")
	addProduct(t, db, 3, "P3")
	// Tercios: 33.33 * 3 = 99.99, dentro de la tolerancia.
	addSale(t, db, 1, 1, latest, "100")
	addSale(t, db, 1, 2, latest, "100")
	addSale(t, db, 1, 3, latest, "100")

	shares, err := newUC(db).ProductDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, shares, 3)

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Percentage)
	}
	diff := sum.Sub(dec("100")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.1")),
		"las participaciones deben sumar 100 ± 0.1, suman %s", sum)
}

func TestProductDistribution_OrdenDescendente(t *testing.T) {
	db := memory.New()
	latest := date(2024, time.March, 21)
	addProduct(t, db, 1, "Menor")
	addProduct(t, db, 2, "Mayor")
	addSale(t, db, 1, 1, latest, "100")
	addSale(t, db, 1, 2, latest, "300")

	shares, err := newUC(db).ProductDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "Mayor", shares[0].ProductName)
	assert.True(t, shares[0].Percentage.Equal(dec("75")))
	assert.True(t, shares[1].Percentage.Equal(dec("25")))
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesPredictions
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPredictions_ActualSoloEnPeriodosTranscurridos(t *testing.T) {
	db := memory.New()
	latest := date(2024, time.March, 21)
	addSale(t, db, 1, 1, latest, "100")

	past := dec("90")
	leaked := dec("0") // el provider manda actual=0 en un período futuro
	fc := &fakeForecast{points: []repository.ForecastPoint{
		{Week: latest.AddDate(0, 0, -7), Predicted: dec("95"), Actual: &past},
		{Week: latest.AddDate(0, 0, 7), Predicted: dec("110"), Actual: &leaked},
		{Week: latest.AddDate(0, 0, 14), Predicted: dec("120")},
	}}
	uc := analytics.NewDashboardUseCase(db, fc)

	out, err := uc.SalesPredictions(context.Background(), nil, nil, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.NotNil(t, out[0].Actual, "período transcurrido conserva su actual")
	assert.True(t, out[0].Actual.Equal(dec("90")))
	assert.Nil(t, out[1].Actual, "un actual en período futuro se anula: ausencia ≠ cero")
	assert.Nil(t, out[2].Actual)
}

// Un fallo del provider se reintenta una sola vez.
func TestSalesPredictions_ReintentaUnaVez(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 21), "100")

	fc := &fakeForecast{failures: 1, points: []repository.ForecastPoint{
		{Week: date(2024, time.March, 28), Predicted: dec("100")},
	}}
	uc := analytics.NewDashboardUseCase(db, fc)

	out, err := uc.SalesPredictions(context.Background(), nil, nil, 1)
	require.NoError(t, err, "el primer fallo upstream debe reintentarse")
	assert.Len(t, out, 1)
	assert.Equal(t, 2, fc.calls)
}

func TestSalesPredictions_DosFallos_PropagaUpstream(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 21), "100")

	fc := &fakeForecast{failures: 2}
	uc := analytics.NewDashboardUseCase(db, fc)

	_, err := uc.SalesPredictions(context.Background(), nil, nil, 1)
	assert.True(t, errors.Is(err, domain.ErrUpstream), "tras el reintento el error upstream se propaga")
	assert.Equal(t, 2, fc.calls, "exactamente un reintento, no más")
}

// ──────────────────────────────────────────────────────────────────────────────
// TrendingMetrics
// ──────────────────────────────────────────────────────────────────────────────

func TestTrendingMetrics_ValorYEtiqueta(t *testing.T) {
	db := memory.New()
	addSale(t, db, 1, 1, date(2024, time.March, 10), "1000")
	addSale(t, db, 1, 1, date(2024, time.March, 21), "1200")

	out, err := newUC(db).TrendingMetrics(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Trending.Equal(dec("20.0")))
	assert.Equal(t, "2024-03-14 a 2024-03-21", out.Period)
}
