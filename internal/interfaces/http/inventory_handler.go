package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
)

// DateLayout formato de las fechas en query params.
const DateLayout = "2006-01-02"

// InventoryHandler maneja los movimientos de stock.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// PostMovement godoc
// @Summary      Registrar entrada o salida
// @Description  Una salida mayor que el stock disponible se rechaza con 409 y no modifica nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementInput  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// "in" y "out" se aceptan igual que en la CLI.
	in.Kind = strings.ToUpper(strings.TrimSpace(in.Kind))
	if ok, err := validateBody(c, &in); !ok {
		return err
	}
	mov, err := h.uc.PostMovement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Del más reciente al más antiguo, hasta 500 filas. from y to son inclusivos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "ID del producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var f dto.MovementFilter
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badRequest(c, "product_id debe ser un entero positivo")
		}
		f.ProductID = id
	}
	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		return badRequest(c, "from debe tener formato YYYY-MM-DD")
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		return badRequest(c, "to debe tener formato YYYY-MM-DD")
	}
	list, err := h.uc.ListMovements(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.ToMovementResponses(list)))
}

// queryDate devuelve nil si el parámetro no viene.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
