package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
)

// ProductHandler maneja el catálogo de productos.
type ProductHandler struct {
	uc *inventory.LedgerUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.LedgerUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar producto
// @Description  Quantity > 0 registra además un movimiento IN de stock inicial.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductInput  true  "Datos del producto"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterProductInput
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	id, err := h.uc.RegisterProduct(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "id debe ser un entero")
	}
	p, err := h.uc.FindProduct(c.Context(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// List godoc
// @Summary      Listar productos
// @Description  Ordenados por nombre. category filtra por igualdad exacta (sin distinguir mayúsculas).
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListProducts(c.Context(), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToProductResponses(list)))
}

// Search godoc
// @Summary      Buscar productos por nombre
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "Subcadena del nombre"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		return badRequest(c, "name es requerido")
	}
	list, err := h.uc.SearchProductsByName(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToProductResponses(list)))
}

// Update godoc
// @Summary      Editar producto
// @Description  Solo nombre, descripción, categoría y ubicación. La cantidad cambia únicamente con movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "id debe ser un entero")
	}
	var in dto.UpdateProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.UpdateProductFields(c.Context(), int64(id), in.ToFields()); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.FindProduct(c.Context(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}
