package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/pkg/utils"
	"github.com/restaurant-discovery/internal/pkg/validator"
	"github.com/restaurant-discovery/internal/usecase"
	"github.com/restaurant-discovery/internal/usecase/dto"
)

// GeocodeHandler - обработчик запросов геокодирования
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// Resolve - прямое геокодирование адреса в координату
func (h *GeocodeHandler) Resolve(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pos, cached, err := h.geocodeUC.Resolve(c.Context(), req.Address, req.City)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.GeocodeResponse{
		Position: *pos,
		Cached:   cached,
	}, nil)
}
