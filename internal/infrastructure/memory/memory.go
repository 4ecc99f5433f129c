// Package memory implementa los puertos de persistencia en memoria, para
// tests y desarrollo local sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-analytics-api/internal/domain"
	"github.com/jhoicas/retail-analytics-api/internal/domain/entity"
	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// DB almacén en memoria. Seguro para uso concurrente.
type DB struct {
	mu       sync.Mutex
	users    []*entity.User
	products []*entity.Product
	stores   []*entity.Store
	sales    []*entity.SalesRecord

	recordSeq int64
}

// New crea un almacén vacío.
func New() *DB {
	return &DB{}
}

// Los nombres de los puertos colisionan entre colecciones (Create, List...),
// así que cada puerto se expone con un adaptador fino sobre el mismo DB.
var _ repository.UserRepository = (*DB)(nil)
var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.StoreRepository = (*StoreRepo)(nil)
var _ repository.SalesRepository = (*SalesRepo)(nil)
var _ repository.SalesLedger = (*DB)(nil)

// ProductRepo adaptador del puerto ProductRepository.
type ProductRepo struct{ db *DB }

// StoreRepo adaptador del puerto StoreRepository.
type StoreRepo struct{ db *DB }

// SalesRepo adaptador del puerto SalesRepository.
type SalesRepo struct{ db *DB }

// Products devuelve el adaptador de productos.
func (db *DB) Products() *ProductRepo { return &ProductRepo{db} }

// Stores devuelve el adaptador de tiendas.
func (db *DB) Stores() *StoreRepo { return &StoreRepo{db} }

// Sales devuelve el adaptador del ledger CRUD.
func (db *DB) Sales() *SalesRepo { return &SalesRepo{db} }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.db.CreateProduct(ctx, p)
}
func (r *ProductRepo) GetBySKU(ctx context.Context, skuID int64) (*entity.Product, error) {
	return r.db.GetBySKU(ctx, skuID)
}
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.db.UpdateProduct(ctx, p)
}
func (r *ProductRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Product, int, error) {
	return r.db.ListProducts(ctx, params)
}
func (r *ProductRepo) ListFeatured(ctx context.Context) ([]*entity.Product, error) {
	return r.db.ListFeatured(ctx)
}
func (r *ProductRepo) Delete(ctx context.Context, skuID int64) error {
	return r.db.DeleteProduct(ctx, skuID)
}

func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	return r.db.CreateStore(ctx, s)
}
func (r *StoreRepo) GetByID(ctx context.Context, storeID int64) (*entity.Store, error) {
	return r.db.GetStoreByID(ctx, storeID)
}
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	return r.db.UpdateStore(ctx, s)
}
func (r *StoreRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Store, int, error) {
	return r.db.ListStores(ctx, params)
}
func (r *StoreRepo) Delete(ctx context.Context, storeID int64) error {
	return r.db.DeleteStore(ctx, storeID)
}

func (r *SalesRepo) Create(ctx context.Context, rec *entity.SalesRecord) error {
	return r.db.CreateSalesRecord(ctx, rec)
}
func (r *SalesRepo) GetByID(ctx context.Context, recordID int64) (*entity.SalesRecord, error) {
	return r.db.GetSalesRecordByID(ctx, recordID)
}
func (r *SalesRepo) Update(ctx context.Context, rec *entity.SalesRecord) error {
	return r.db.UpdateSalesRecord(ctx, rec)
}
func (r *SalesRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.SalesRecord, int, error) {
	return r.db.ListSalesRecords(ctx, params)
}
func (r *SalesRepo) ListByStore(ctx context.Context, storeID int64) ([]*entity.SalesRecord, error) {
	return r.db.ListByStore(ctx, storeID)
}
func (r *SalesRepo) ListByProduct(ctx context.Context, skuID int64) ([]*entity.SalesRecord, error) {
	return r.db.ListByProduct(ctx, skuID)
}
func (r *SalesRepo) ListByWeek(ctx context.Context, week time.Time) ([]*entity.SalesRecord, error) {
	return r.db.ListByWeek(ctx, week)
}
func (r *SalesRepo) Delete(ctx context.Context, recordID int64) error {
	return r.db.DeleteSalesRecord(ctx, recordID)
}

func paginate[T any](items []T, params repository.ListParams) []T {
	offset := params.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

func descending(params repository.ListParams) bool {
	return params.SortOrder == repository.SortDesc
}

// ── UserRepository ────────────────────────────────────────────────────────────

func (db *DB) Create(ctx context.Context, user *entity.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	db.users = append(db.users, &cp)
	return nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*entity.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *DB) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email { // comparación exacta, sensible a mayúsculas
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *DB) Update(ctx context.Context, user *entity.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, u := range db.users {
		if u.ID == user.ID {
			cp := *user
			db.users[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (db *DB) List(ctx context.Context, params repository.ListParams) ([]*entity.User, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	sorted := make([]*entity.User, len(db.users))
	copy(sorted, db.users)
	desc := descending(params)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "email":
			less = sorted[i].Email < sorted[j].Email
		case "name":
			less = sorted[i].Name < sorted[j].Name
		default:
			less = sorted[i].ID < sorted[j].ID
		}
		if desc {
			return !less
		}
		return less
	})
	return paginate(sorted, params), len(db.users), nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, u := range db.users {
		if u.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── ProductRepository ────────────────────────────────────────────────────────

func (db *DB) CreateProduct(ctx context.Context, product *entity.Product) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range db.products {
		if p.SKUID == product.SKUID {
			return domain.ErrInvalidInput
		}
	}
	cp := *product
	db.products = append(db.products, &cp)
	return nil
}

func (db *DB) GetBySKU(ctx context.Context, skuID int64) (*entity.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range db.products {
		if p.SKUID == skuID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *DB) UpdateProduct(ctx context.Context, product *entity.Product) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, p := range db.products {
		if p.SKUID == product.SKUID {
			cp := *product
			db.products[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (db *DB) ListProducts(ctx context.Context, params repository.ListParams) ([]*entity.Product, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	sorted := make([]*entity.Product, len(db.products))
	copy(sorted, db.products)
	desc := descending(params)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "product_name":
			less = sorted[i].ProductName < sorted[j].ProductName
		default:
			less = sorted[i].SKUID < sorted[j].SKUID
		}
		if desc {
			return !less
		}
		return less
	})
	return paginate(sorted, params), len(db.products), nil
}

func (db *DB) ListFeatured(ctx context.Context) ([]*entity.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	seen := make(map[int64]bool)
	var out []*entity.Product
	for _, r := range db.sales {
		if !r.IsFeatured || seen[r.SKUID] {
			continue
		}
		for _, p := range db.products {
			if p.SKUID == r.SKUID {
				seen[r.SKUID] = true
				cp := *p
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (db *DB) DeleteProduct(ctx context.Context, skuID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, p := range db.products {
		if p.SKUID == skuID {
			db.products = append(db.products[:i], db.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── StoreRepository ──────────────────────────────────────────────────────────

func (db *DB) CreateStore(ctx context.Context, store *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, s := range db.stores {
		if s.StoreID == store.StoreID {
			return domain.ErrInvalidInput
		}
	}
	cp := *store
	db.stores = append(db.stores, &cp)
	return nil
}

func (db *DB) GetStoreByID(ctx context.Context, storeID int64) (*entity.Store, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, s := range db.stores {
		if s.StoreID == storeID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *DB) UpdateStore(ctx context.Context, store *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, s := range db.stores {
		if s.StoreID == store.StoreID {
			cp := *store
			db.stores[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (db *DB) ListStores(ctx context.Context, params repository.ListParams) ([]*entity.Store, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	sorted := make([]*entity.Store, len(db.stores))
	copy(sorted, db.stores)
	desc := descending(params)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "store_name":
			less = sorted[i].StoreName < sorted[j].StoreName
		default:
			less = sorted[i].StoreID < sorted[j].StoreID
		}
		if desc {
			return !less
		}
		return less
	})
	return paginate(sorted, params), len(db.stores), nil
}

func (db *DB) DeleteStore(ctx context.Context, storeID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, s := range db.stores {
		if s.StoreID == storeID {
			db.stores = append(db.stores[:i], db.stores[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── SalesRepository ──────────────────────────────────────────────────────────

func (db *DB) CreateSalesRecord(ctx context.Context, record *entity.SalesRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.recordSeq++
	cp := *record
	if cp.RecordID == 0 {
		cp.RecordID = db.recordSeq
	}
	db.sales = append(db.sales, &cp)
	*record = cp
	return nil
}

func (db *DB) GetSalesRecordByID(ctx context.Context, recordID int64) (*entity.SalesRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, r := range db.sales {
		if r.RecordID == recordID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (db *DB) UpdateSalesRecord(ctx context.Context, record *entity.SalesRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, r := range db.sales {
		if r.RecordID == record.RecordID {
			cp := *record
			db.sales[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (db *DB) ListSalesRecords(ctx context.Context, params repository.ListParams) ([]*entity.SalesRecord, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	sorted := make([]*entity.SalesRecord, len(db.sales))
	copy(sorted, db.sales)
	desc := descending(params)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "week":
			less = sorted[i].Week.Before(sorted[j].Week)
		case "store_id":
			less = sorted[i].StoreID < sorted[j].StoreID
		case "sku_id":
			less = sorted[i].SKUID < sorted[j].SKUID
		default:
			less = sorted[i].RecordID < sorted[j].RecordID
		}
		if desc {
			return !less
		}
		return less
	})
	return paginate(sorted, params), len(db.sales), nil
}

func (db *DB) ListByStore(ctx context.Context, storeID int64) ([]*entity.SalesRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []*entity.SalesRecord
	for _, r := range db.sales {
		if r.StoreID == storeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (db *DB) ListByProduct(ctx context.Context, skuID int64) ([]*entity.SalesRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []*entity.SalesRecord
	for _, r := range db.sales {
		if r.SKUID == skuID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (db *DB) ListByWeek(ctx context.Context, week time.Time) ([]*entity.SalesRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []*entity.SalesRecord
	for _, r := range db.sales {
		if sameDate(r.Week, week) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (db *DB) DeleteSalesRecord(ctx context.Context, recordID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, r := range db.sales {
		if r.RecordID == recordID {
			db.sales = append(db.sales[:i], db.sales[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── SalesLedger ──────────────────────────────────────────────────────────────

func (db *DB) LatestWeek(ctx context.Context) (time.Time, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.sales) == 0 {
		return time.Time{}, domain.ErrNoData
	}
	latest := db.sales[0].Week
	for _, r := range db.sales[1:] {
		if r.Week.After(latest) {
			latest = r.Week
		}
	}
	return latest, nil
}

func (db *DB) SumTotal(ctx context.Context, w repository.Window) (decimal.Decimal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	sum := decimal.Zero
	for _, r := range db.sales {
		if inWindow(r.Week, w) {
			sum = sum.Add(r.TotalPrice)
		}
	}
	return sum, nil
}

func (db *DB) SumByStore(ctx context.Context, w repository.Window) ([]repository.StoreSales, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	totals := make(map[int64]decimal.Decimal)
	for _, r := range db.sales {
		if inWindow(r.Week, w) {
			totals[r.StoreID] = totals[r.StoreID].Add(r.TotalPrice)
		}
	}
	var out []repository.StoreSales
	for id, total := range totals {
		row := repository.StoreSales{StoreID: id, Total: total}
		for _, s := range db.stores {
			if s.StoreID == id {
				row.StoreName = s.StoreName
				row.Location = s.Location
				break
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (db *DB) SumByProduct(ctx context.Context, w repository.Window) ([]repository.ProductSales, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	totals := make(map[int64]decimal.Decimal)
	for _, r := range db.sales {
		if inWindow(r.Week, w) {
			totals[r.SKUID] = totals[r.SKUID].Add(r.TotalPrice)
		}
	}
	var out []repository.ProductSales
	for id, total := range totals {
		row := repository.ProductSales{SKUID: id, Total: total}
		for _, p := range db.products {
			if p.SKUID == id {
				row.ProductName = p.ProductName
				break
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (db *DB) CountActiveStores(ctx context.Context, w repository.Window) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	active := make(map[int64]bool)
	for _, r := range db.sales {
		if inWindow(r.Week, w) {
			active[r.StoreID] = true
		}
	}
	return len(active), nil
}

func (db *DB) CountStores(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.stores), nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func inWindow(t time.Time, w repository.Window) bool {
	if t.Before(w.From) {
		return false
	}
	if w.ExcludeTo {
		return t.Before(w.To)
	}
	return !t.After(w.To)
}
