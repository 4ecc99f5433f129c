package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/application/usecase"
	"github.com/jhoicas/retail-analytics-api/pkg/validator"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func paramInt64(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{
		Page:      c.QueryInt("page", 0),
		Limit:     c.QueryInt("limit", 0),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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

// GetBySKU godoc
// @Summary      Obtener producto por SKU
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku_id  path  int  true  "SKU del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku_id} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	skuID, ok := paramInt64(c, "sku_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "sku_id debe ser un entero positivo")
	}
	out, err := h.uc.GetBySKU(c.UserContext(), skuID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku_id  path  int  true  "SKU del producto"
// @Param        body    body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku_id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	skuID, ok := paramInt64(c, "sku_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "sku_id debe ser un entero positivo")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), skuID, &in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño"  default(10)
// @Param        sortBy     query  string  false  "Columna de orden"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListFeatured godoc
// @Summary      Productos destacados
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/featured [get]
func (h *ProductHandler) ListFeatured(c *fiber.Ctx) error {
	out, err := h.uc.ListFeatured(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        sku_id  path  int  true  "SKU del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku_id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	skuID, ok := paramInt64(c, "sku_id")
	if !ok {
		return badRequest(c, "INVALID_ID", "sku_id debe ser un entero positivo")
	}
	if err := h.uc.Delete(c.UserContext(), skuID); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
