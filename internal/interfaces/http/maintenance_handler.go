package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/maintenance"
)

// MaintenanceHandler respaldo del archivo del depósito. La restauración solo existe en la CLI.
type MaintenanceHandler struct {
	uc *maintenance.BackupUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.BackupUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Backup godoc
// @Summary      Respaldar la base
// @Description  Copia consistente del archivo SQLite, siempre en el directorio de la base.
// @Description  path es solo un nombre de archivo; sin path se usa un nombre fechado.
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackupRequest  false  "Destino"
// @Success      201   {object}  dto.BackupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/maintenance/backup [post]
func (h *MaintenanceHandler) Backup(c *fiber.Ctx) error {
	var in dto.BackupRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	path, err := h.uc.BackupBeside(c.Context(), in.Path)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BackupResponse{Path: path})
}
