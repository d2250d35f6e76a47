package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/pkg/utils"
	"github.com/restaurant-discovery/internal/pkg/validator"
	"github.com/restaurant-discovery/internal/usecase"
	"github.com/restaurant-discovery/internal/usecase/dto"
)

// TileHandler - обработчик конфигурации и покрытия тайлов подложки
type TileHandler struct {
	tileUC *usecase.TileUseCase
	logger *zap.Logger
}

// NewTileHandler - создание нового TileHandler
func NewTileHandler(tileUC *usecase.TileUseCase, logger *zap.Logger) *TileHandler {
	return &TileHandler{
		tileUC: tileUC,
		logger: logger,
	}
}

// GetConfig - XYZ-шаблон и атрибуция тайлового слоя для клиента
func (h *TileHandler) GetConfig(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.tileUC.Config(), nil)
}

// GetCoverage - набор тайлов, покрывающих прямоугольник на заданном зуме
func (h *TileHandler) GetCoverage(c *fiber.Ctx) error {
	var req dto.TileCoverageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.tileUC.Coverage(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Tiles),
	})
}
