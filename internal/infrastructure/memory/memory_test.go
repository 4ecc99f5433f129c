package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
	"github.com/jhoicas/retail-analytics-api/internal/infrastructure/memory"
)

func seedSales(t *testing.T, db *memory.DB, n int) {
	t.Helper()
	week := time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Sales().Create(context.Background(), &entity.SalesRecord{
			Week:       week,
			StoreID:    1,
			SKUID:      int64(i),
			TotalPrice: decimal.NewFromInt(int64(i)),
			UnitsSold:  1,
		}))
	}
}

// offset = (page-1)*limit: con 25 registros, la página 2 de 10 devuelve
// los registros 11..20 y el total sigue siendo 25.
func TestListSales_Paginacion(t *testing.T) {
	db := memory.New()
	seedSales(t, db, 25)

	params := repository.ListParams{Page: 2, Limit: 10}
	params.Normalize("record_id")

	rows, total, err := db.Sales().List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 25, total)
	require.Len(t, rows, 10)
	assert.Equal(t, int64(11), rows[0].RecordID)
	assert.Equal(t, int64(20), rows[9].RecordID)
}

// La última página devuelve solo lo que queda; una página más allá del
// final devuelve vacío sin error.
func TestListSales_UltimaPaginaYFueraDeRango(t *testing.T) {
	db := memory.New()
	seedSales(t, db, 25)

	params := repository.ListParams{Page: 3, Limit: 10}
	params.Normalize("record_id")
	rows, total, err := db.Sales().List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, rows, 5)

	params = repository.ListParams{Page: 4, Limit: 10}
	params.Normalize("record_id")
	rows, total, err = db.Sales().List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, rows)
}

// Sin parámetros: page=1, limit=10, orden ascendente por la clave natural.
func TestListSales_Defaults(t *testing.T) {
	db := memory.New()
	seedSales(t, db, 12)

	var params repository.ListParams
	params.Normalize("record_id")

	rows, _, err := db.Sales().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, int64(1), rows[0].RecordID)
}

func TestListSales_OrdenDescendente(t *testing.T) {
	db := memory.New()
	seedSales(t, db, 3)

	params := repository.ListParams{SortBy: "record_id", SortOrder: repository.SortDesc}
	params.Normalize("record_id")

	rows, _, err := db.Sales().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].RecordID)
}

// Los gets devuelven (nil, nil) cuando la entidad no existe; el mapeo a
// ErrNotFound es responsabilidad del caso de uso.
func TestGets_AusenciaSinError(t *testing.T) {
	db := memory.New()

	p, err := db.Products().GetBySKU(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := db.Stores().GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.Create(ctx, &entity.User{ID: "u1", Email: "ana@acme.co"}))

	err := db.Create(ctx, &entity.User{ID: "u2", Email: "ana@acme.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestListFeatured_SinDuplicados(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.Products().Create(ctx, &entity.Product{SKUID: 1, ProductName: "Café"}))
	week := time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Sales().Create(ctx, &entity.SalesRecord{
			Week: week, StoreID: 1, SKUID: 1, IsFeatured: true, UnitsSold: 1,
		}))
	}

	featured, err := db.Products().ListFeatured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 1, "un producto destacado aparece una sola vez")
}
