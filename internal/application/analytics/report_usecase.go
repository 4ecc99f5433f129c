package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
)

// DashboardReport datos consolidados para el reporte imprimible.
type DashboardReport struct {
	GeneratedAt time.Time
	Total       dto.TotalSalesResponse
	Trending    dto.TrendingResponse
	Performance dto.StorePerformanceResponse
	TopStores   []dto.TopItem
	TopProducts []dto.TopItem
	Products    []dto.ProductShare
}

// ReportGenerator produce el documento binario a partir de los datos.
type ReportGenerator interface {
	GenerateDashboardReport(ctx context.Context, report *DashboardReport) ([]byte, error)
}

// ReportUseCase arma el reporte del dashboard reutilizando el agregador y
// delega el render al generador.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso del reporte.
func NewReportUseCase(dashboard *DashboardUseCase, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// Generate consolida los agregados y devuelve el PDF. Un ledger vacío
// propaga ErrNoData: no hay reporte de la nada.
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	total, err := uc.dashboard.TotalSales(ctx, 0)
	if err != nil {
		return nil, err
	}
	trending, err := uc.dashboard.TrendingMetrics(ctx)
	if err != nil {
		return nil, err
	}
	performance, err := uc.dashboard.StorePerformance(ctx)
	if err != nil {
		return nil, err
	}
	topStores, err := uc.dashboard.TopStores(ctx, 0)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.dashboard.TopProducts(ctx, 0)
	if err != nil {
		return nil, err
	}
	products, err := uc.dashboard.ProductDistribution(ctx)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		GeneratedAt: time.Now().UTC(),
		Total:       *total,
		Trending:    *trending,
		Performance: *performance,
		TopStores:   topStores,
		TopProducts: topProducts,
		Products:    products,
	}
	out, err := uc.generator.GenerateDashboardReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generando reporte: %w", err)
	}
	return out, nil
}
