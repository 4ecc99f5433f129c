package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/application/usecase"
	"github.com/jhoicas/retail-analytics-api/pkg/validator"
)

// SalesHandler maneja las peticiones HTTP del ledger de ventas (protegido).
type SalesHandler struct {
	uc *usecase.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta semanal
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesRecordRequest  true  "Registro de venta"
// @Success      201   {object}  dto.SalesRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), &in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        record_id  path  int  true  "ID del registro"
// @Success      200  {object}  dto.SalesRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{record_id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	recordID, ok := paramInt64(c, "record_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "record_id debe ser un entero positivo")
	}
	out, err := h.uc.GetByID(c.UserContext(), recordID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir registro de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        record_id  path  int  true  "ID del registro"
// @Param        body       body  dto.UpdateSalesRecordRequest  true  "Campos a corregir"
// @Success      200  {object}  dto.SalesRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{record_id} [patch]
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	recordID, ok := paramInt64(c, "record_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "record_id debe ser un entero positivo")
	}
	var in dto.UpdateSalesRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), recordID, &in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño"  default(10)
// @Param        sortBy     query  string  false  "Columna de orden"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.SalesListResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListByStore godoc
// @Summary      Ventas de una tienda
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        store_id  path  int  true  "ID de la tienda"
// @Success      200  {array}  dto.SalesRecordResponse
// @Router       /api/sales/store/{store_id} [get]
func (h *SalesHandler) ListByStore(c *fiber.Ctx) error {
	storeID, ok := paramInt64(c, "store_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "store_id debe ser un entero positivo")
	}
	out, err := h.uc.ListByStore(c.UserContext(), storeID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Ventas de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        sku_id  path  int  true  "SKU del producto"
// @Success      200  {array}  dto.SalesRecordResponse
// @Router       /api/sales/product/{sku_id} [get]
func (h *SalesHandler) ListByProduct(c *fiber.Ctx) error {
	skuID, ok := paramInt64(c, "sku_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "sku_id debe ser un entero positivo")
	}
	out, err := h.uc.ListByProduct(c.UserContext(), skuID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListByWeek godoc
// @Summary      Ventas de una semana
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        week  path  string  true  "Semana (YYYY-MM-DD)"
// @Success      200  {array}  dto.SalesRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/week/{week} [get]
func (h *SalesHandler) ListByWeek(c *fiber.Ctx) error {
	out, err := h.uc.ListByWeek(c.UserContext(), c.Params("week"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de venta
// @Tags         sales
// @Security     Bearer
// @Param        record_id  path  int  true  "ID del registro"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{record_id} [delete]
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	recordID, ok := paramInt64(c, "record_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "record_id debe ser un entero positivo")
	}
	if err := h.uc.Delete(c.UserContext(), recordID); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
