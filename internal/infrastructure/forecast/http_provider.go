// Package forecast adaptador HTTP del servicio externo de predicción de
// ventas. El servicio es un modelo aparte; esta API solo reexpone su serie
// normalizada.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que HTTPProvider implementa el puerto.
var _ repository.ForecastProvider = (*HTTPProvider)(nil)

// HTTPProvider cliente del servicio de forecast.
// Usa net/http de la librería estándar; el servicio no publica SDK.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProvider construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Timeout de red; el caller puede imponer además un context más corto.
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras del protocolo del servicio de forecast ────────────────────────

type predictRequest struct {
	SKUID   *int64 `json:"sku_id,omitempty"`
	StoreID *int64 `json:"store_id,omitempty"`
	Weeks   int    `json:"weeks"`
}

type predictResponse struct {
	Predictions []struct {
		Week      string           `json:"week"`
		Predicted decimal.Decimal  `json:"predicted"`
		Actual    *decimal.Decimal `json:"actual,omitempty"`
	} `json:"predictions"`
	Error string `json:"error,omitempty"`
}

// Predict pide la serie de predicciones al servicio externo.
// Los fallos de red y los 5xx se marcan con domain.ErrUpstream para que el
// agregador pueda reintentar la lectura.
func (p *HTTPProvider) Predict(ctx context.Context, req repository.ForecastRequest) ([]repository.ForecastPoint, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("forecast: FORECAST_URL no configurado")
	}

	body, err := json.Marshal(predictRequest{
		SKUID:   req.SKUID,
		StoreID: req.StoreID,
		Weeks:   req.Weeks,
	})
	if err != nil {
		return nil, fmt.Errorf("forecast: serializar request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("forecast: crear HTTP request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("x-api-key", p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("forecast: llamada HTTP: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("forecast: leer respuesta: %v: %w", err, domain.ErrUpstream)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("forecast: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed predictResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("forecast: respuesta ilegible: %v: %w", err, domain.ErrUpstream)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("forecast: el servicio reportó: %s", parsed.Error)
	}

	points := make([]repository.ForecastPoint, 0, len(parsed.Predictions))
	for _, pr := range parsed.Predictions {
		week, err := time.Parse(dto.WeekLayout, pr.Week)
		if err != nil {
			return nil, fmt.Errorf("forecast: semana %q ilegible: %w", pr.Week, domain.ErrUpstream)
		}
		points = append(points, repository.ForecastPoint{
			Week:      week,
			Predicted: pr.Predicted,
			Actual:    pr.Actual,
		})
	}
	return points, nil
}
