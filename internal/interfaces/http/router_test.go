package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics-api/internal/application/analytics"
	"github.com/jhoicas/retail-analytics-api/internal/application/auth"
	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/application/usecase"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
	"github.com/jhoicas/retail-analytics-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/retail-analytics-api/internal/interfaces/http"
)

type nullForecast struct{}

func (nullForecast) Predict(context.Context, repository.ForecastRequest) ([]repository.ForecastPoint, error) {
	return nil, nil
}

type nullReportGen struct{}

func (nullReportGen) GenerateDashboardReport(context.Context, *analytics.DashboardReport) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

// buildAPI arma la app completa contra el almacén en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.DB) {
	t.Helper()
	db := memory.New()
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

	dashboard := analytics.NewDashboardUseCase(db, nullForecast{})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewUseCase(db, jwtCfg),
		UserUC:      usecase.NewUserUseCase(db),
		ProductUC:   usecase.NewProductUseCase(db.Products()),
		StoreUC:     usecase.NewStoreUseCase(db.Stores()),
		SalesUC:     usecase.NewSalesUseCase(db.Sales(), db.Stores(), db.Products()),
		DashboardUC: dashboard,
		ReportUC:    analytics.NewReportUseCase(dashboard, nullReportGen{}),
		JWTSecret:   testJWTSecret,
	})
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroYLogin(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "ana@acme.co", Password: "secreta1", Role: "ADMIN",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	reg := decode[dto.AuthResponse](t, resp)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "ADMIN", reg.User.Role)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ana@acme.co", Password: "secreta1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Email desconocido y password incorrecto devuelven exactamente el mismo
// error: el caller no puede enumerar cuentas.
func TestAPI_LoginFallidoIndistinguible(t *testing.T) {
	app, _ := buildAPI(t)
	doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "ana@acme.co", Password: "secreta1",
	})

	badPass := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ana@acme.co", Password: "incorrecta",
	})
	unknown := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "nadie@acme.co", Password: "loquesea",
	})

	assert.Equal(t, fiber.StatusUnauthorized, badPass.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	b1 := decode[dto.ErrorResponse](t, badPass)
	b2 := decode[dto.ErrorResponse](t, unknown)
	assert.Equal(t, b1, b2, "mismo código y mensaje en ambos caminos")
}

func TestAPI_RegistroEmailDuplicado(t *testing.T) {
	app, _ := buildAPI(t)
	body := dto.RegisterRequest{Name: "Ana", Email: "ana@acme.co", Password: "secreta1"}

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD sobre HTTP con autorización real
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CicloProducto(t *testing.T) {
	app, _ := buildAPI(t)
	admin := tokenForRole(t, "ADMIN")

	resp := doJSON(t, app, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{
		SKUID: 10, ProductName: "Café", BasePrice: decimal.NewFromInt(12),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/10", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Café", got.ProductName)

	resp = doJSON(t, app, http.MethodGet, "/api/products/99", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/10", admin, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAPI_TiendaAsimetriaDeBorrado(t *testing.T) {
	app, _ := buildAPI(t)
	admin := tokenForRole(t, "ADMIN")
	manager := tokenForRole(t, "SALE_MANAGER")

	resp := doJSON(t, app, http.MethodPost, "/api/stores", admin, dto.CreateStoreRequest{
		StoreID: 1, StoreName: "Centro", Location: "4.6,-74.0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// SALE_MANAGER no crea tiendas
	resp = doJSON(t, app, http.MethodPost, "/api/stores", manager, dto.CreateStoreRequest{
		StoreID: 2, StoreName: "Norte", Location: "4.7,-74.0",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// ADMIN no borra tiendas; SALE_MANAGER sí
	resp = doJSON(t, app, http.MethodDelete, "/api/stores/1", admin, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/api/stores/1", manager, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAPI_VentaRechazaReferenciaColgante(t *testing.T) {
	app, _ := buildAPI(t)
	admin := tokenForRole(t, "ADMIN")

	resp := doJSON(t, app, http.MethodPost, "/api/sales", admin, dto.CreateSalesRecordRequest{
		Week: "2024-03-21", StoreID: 1, SKUID: 10, UnitsSold: 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UsuariosSoloAdmin(t *testing.T) {
	app, _ := buildAPI(t)
	user := tokenForRole(t, "USER")

	resp := doJSON(t, app, http.MethodGet, "/api/users", user, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_DashboardSinDatos(t *testing.T) {
	app, _ := buildAPI(t)
	user := tokenForRole(t, "USER")

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/total-sales", user, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_DATA", body.Code, "ledger vacío no es {amount: 0}")
}

func TestAPI_DashboardTotalSales(t *testing.T) {
	app, _ := buildAPI(t)
	admin := tokenForRole(t, "ADMIN")
	user := tokenForRole(t, "USER")

	resp := doJSON(t, app, http.MethodPost, "/api/stores", admin, dto.CreateStoreRequest{
		StoreID: 1, StoreName: "Centro", Location: "4.6,-74.0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{
		SKUID: 10, ProductName: "Café", BasePrice: decimal.NewFromInt(12),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/sales", admin, dto.CreateSalesRecordRequest{
		Week: "2024-03-21", StoreID: 1, SKUID: 10,
		TotalPrice: decimal.NewFromInt(120), UnitsSold: 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// El dashboard es lectura: USER también accede.
	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/total-sales", user, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.TotalSalesResponse](t, resp)
	assert.True(t, out.Amount.Equal(decimal.NewFromInt(120)))
	assert.True(t, out.Change.IsZero(), "sin ventana anterior el cambio es 0")
}
