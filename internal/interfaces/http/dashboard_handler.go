package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics-api/internal/application/analytics"
)

// DashboardHandler expone los agregados del dashboard (protegido, lectura).
type DashboardHandler struct {
	uc     *analytics.DashboardUseCase
	report *analytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, report *analytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

func queryInt64Ptr(c *fiber.Ctx, name string) *int64 {
	v := c.QueryInt(name, 0)
	if v < 1 {
		return nil
	}
	out := int64(v)
	return &out
}

// TotalSales godoc
// @Summary      Ventas totales de la ventana actual
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días de la ventana"  default(7)
// @Success      200  {object}  dto.TotalSalesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/total-sales [get]
func (h *DashboardHandler) TotalSales(c *fiber.Ctx) error {
	out, err := h.uc.TotalSales(c.UserContext(), c.QueryInt("days", 0))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// TopStores godoc
// @Summary      Ranking de tiendas por ventas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Tamaño del ranking"  default(5)
// @Success      200  {array}  dto.TopItem
// @Router       /api/dashboard/top-stores [get]
func (h *DashboardHandler) TopStores(c *fiber.Ctx) error {
	out, err := h.uc.TopStores(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Ranking de productos por ventas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Tamaño del ranking"  default(5)
// @Success      200  {array}  dto.TopItem
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// StorePerformance godoc
// @Summary      Desempeño agregado de tiendas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StorePerformanceResponse
// @Router       /api/dashboard/store-performance [get]
func (h *DashboardHandler) StorePerformance(c *fiber.Ctx) error {
	out, err := h.uc.StorePerformance(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// SalesDistribution godoc
// @Summary      Ventas por tienda con coordenadas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationPoint
// @Router       /api/dashboard/sales-distribution [get]
func (h *DashboardHandler) SalesDistribution(c *fiber.Ctx) error {
	out, err := h.uc.SalesDistribution(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// SalesPredictions godoc
// @Summary      Serie de predicción de ventas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        sku_id    query  int  false  "Filtrar por producto"
// @Param        store_id  query  int  false  "Filtrar por tienda"
// @Param        weeks     query  int  false  "Semanas a predecir"  default(4)
// @Success      200  {array}  dto.PredictionPoint
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales-predictions [get]
func (h *DashboardHandler) SalesPredictions(c *fiber.Ctx) error {
	out, err := h.uc.SalesPredictions(
		c.UserContext(),
		queryInt64Ptr(c, "sku_id"),
		queryInt64Ptr(c, "store_id"),
		c.QueryInt("weeks", 0),
	)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ProductDistribution godoc
// @Summary      Participación porcentual por producto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductShare
// @Router       /api/dashboard/product-distribution [get]
func (h *DashboardHandler) ProductDistribution(c *fiber.Ctx) error {
	out, err := h.uc.ProductDistribution(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Trending godoc
// @Summary      Tendencia de la semana actual
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TrendingResponse
// @Router       /api/dashboard/trending [get]
func (h *DashboardHandler) Trending(c *fiber.Ctx) error {
	out, err := h.uc.TrendingMetrics(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte del dashboard en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	out, err := h.report.Generate(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(out)
}
