package forecast_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
	"github.com/jhoicas/retail-analytics-api/internal/infrastructure/forecast"
)

func TestPredict_ParseaLaSerie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "clave", r.Header.Get("x-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 4, body["weeks"])

		_, _ = w.Write([]byte(`{"predictions":[
			{"week":"2024-03-28","predicted":"120.5"},
			{"week":"2024-03-14","predicted":"95","actual":"90.25"}
		]}`))
	}))
	defer srv.Close()

	p := forecast.NewHTTPProvider(srv.URL, "clave")
	points, err := p.Predict(context.Background(), repository.ForecastRequest{Weeks: 4})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, time.Date(2024, time.March, 28, 0, 0, 0, 0, time.UTC), points[0].Week)
	assert.Equal(t, "120.5", points[0].Predicted.String())
	assert.Nil(t, points[0].Actual)
	require.NotNil(t, points[1].Actual)
	assert.Equal(t, "90.25", points[1].Actual.String())
}

// Un 5xx del servicio se marca como fallo upstream: el agregador decide el
// reintento.
func TestPredict_ErrorDelServicioEsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := forecast.NewHTTPProvider(srv.URL, "")
	_, err := p.Predict(context.Background(), repository.ForecastRequest{Weeks: 1})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// Un 4xx es un error del request, no del servicio: no se marca upstream y
// por tanto no se reintenta.
func TestPredict_RechazoDelRequestNoEsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"weeks fuera de rango"}`))
	}))
	defer srv.Close()

	p := forecast.NewHTTPProvider(srv.URL, "")
	_, err := p.Predict(context.Background(), repository.ForecastRequest{Weeks: 99})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestPredict_ServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito: fallo de conexión

	p := forecast.NewHTTPProvider(srv.URL, "")
	_, err := p.Predict(context.Background(), repository.ForecastRequest{Weeks: 1})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestPredict_SinURLConfigurada(t *testing.T) {
	p := forecast.NewHTTPProvider("", "")
	_, err := p.Predict(context.Background(), repository.ForecastRequest{Weeks: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUpstream, "configuración ausente no es un fallo transitorio")
}
