package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics-api/internal/application/analytics"
	"github.com/jhoicas/retail-analytics-api/internal/application/auth"
	"github.com/jhoicas/retail-analytics-api/internal/application/usecase"
	"github.com/jhoicas/retail-analytics-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	StoreUC     *usecase.StoreUseCase
	SalesUC     *usecase.SalesUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Cada ruta protegida lleva su
// RequirePermission explícito: la tabla de políticas se consulta por
// (recurso, acción), nunca por nombre de rol en el router.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", RequirePermission(policy.ResourceProduct, policy.ActionRead), productHandler.List)
	products.Get("/featured", RequirePermission(policy.ResourceProduct, policy.ActionRead), productHandler.ListFeatured)
	products.Post("/", RequirePermission(policy.ResourceProduct, policy.ActionCreate), productHandler.Create)
	products.Get("/:sku_id", RequirePermission(policy.ResourceProduct, policy.ActionRead), productHandler.GetBySKU)
	products.Patch("/:sku_id", RequirePermission(policy.ResourceProduct, policy.ActionUpdate), productHandler.Update)
	products.Delete("/:sku_id", RequirePermission(policy.ResourceProduct, policy.ActionDelete), productHandler.Delete)

	// Stores
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", RequirePermission(policy.ResourceStore, policy.ActionRead), storeHandler.List)
	stores.Post("/", RequirePermission(policy.ResourceStore, policy.ActionCreate), storeHandler.Create)
	stores.Get("/:store_id", RequirePermission(policy.ResourceStore, policy.ActionRead), storeHandler.GetByID)
	stores.Patch("/:store_id", RequirePermission(policy.ResourceStore, policy.ActionUpdate), storeHandler.Update)
	stores.Delete("/:store_id", RequirePermission(policy.ResourceStore, policy.ActionDelete), storeHandler.Delete)

	// Sales ledger
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	sales.Get("/", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead), salesHandler.List)
	sales.Post("/", RequirePermission(policy.ResourceSalesRecord, policy.ActionCreate), salesHandler.Create)
	sales.Get("/store/:store_id", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead), salesHandler.ListByStore)
	sales.Get("/product/:sku_id", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead), salesHandler.ListByProduct)
	sales.Get("/week/:week", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead), salesHandler.ListByWeek)
	sales.Get("/:record_id", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead), salesHandler.GetByID)
	sales.Patch("/:record_id", RequirePermission(policy.ResourceSalesRecord, policy.ActionUpdate), salesHandler.Update)
	sales.Delete("/:record_id", RequirePermission(policy.ResourceSalesRecord, policy.ActionDelete), salesHandler.Delete)

	// Users (solo ADMIN según la tabla)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequirePermission(policy.ResourceUser, policy.ActionRead), userHandler.List)
	users.Post("/", RequirePermission(policy.ResourceUser, policy.ActionCreate), userHandler.Create)
	users.Get("/:id", RequirePermission(policy.ResourceUser, policy.ActionRead), userHandler.GetByID)
	users.Patch("/:id", RequirePermission(policy.ResourceUser, policy.ActionUpdate), userHandler.Update)
	users.Delete("/:id", RequirePermission(policy.ResourceUser, policy.ActionDelete), userHandler.Delete)

	// Dashboard (lectura del ledger para cualquier rol autenticado)
	dashboard := protected.Group("/dashboard", RequirePermission(policy.ResourceSalesRecord, policy.ActionRead))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard.Get("/total-sales", dashboardHandler.TotalSales)
	dashboard.Get("/top-stores", dashboardHandler.TopStores)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)
	dashboard.Get("/store-performance", dashboardHandler.StorePerformance)
	dashboard.Get("/sales-distribution", dashboardHandler.SalesDistribution)
	dashboard.Get("/sales-predictions", dashboardHandler.SalesPredictions)
	dashboard.Get("/product-distribution", dashboardHandler.ProductDistribution)
	dashboard.Get("/trending", dashboardHandler.Trending)
	dashboard.Get("/report", dashboardHandler.Report)
}
