package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/pkg/errors"
	"github.com/restaurant-discovery/internal/pkg/utils"
	"github.com/restaurant-discovery/internal/pkg/validator"
	"github.com/restaurant-discovery/internal/usecase"
	"github.com/restaurant-discovery/internal/usecase/dto"
)

// PositionHandler - обработчик позиции посетителя в рамках сессии
type PositionHandler struct {
	positionUC *usecase.PositionUseCase
	logger     *zap.Logger
}

// NewPositionHandler - создание нового PositionHandler
func NewPositionHandler(positionUC *usecase.PositionUseCase, logger *zap.Logger) *PositionHandler {
	return &PositionHandler{
		positionUC: positionUC,
		logger:     logger,
	}
}

// Save - сохранение фикса сессии
func (h *PositionHandler) Save(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSessionID)
	}

	var req dto.SavePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	fix := domain.Fix{
		Position:  domain.Position{Lat: req.Lat, Lng: req.Lng},
		AccuracyM: req.AccuracyM,
		TakenAt:   time.Now().UTC(),
	}

	if err := h.positionUC.SavePosition(c.Context(), sessionID, fix); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PositionResponse{
		Status: domain.PositionActive,
		Fix:    &fix,
	}, nil)
}

// Get - текущее состояние позиции сессии
func (h *PositionHandler) Get(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSessionID)
	}

	status, fix, posErr, err := h.positionUC.SessionStatus(c.Context(), sessionID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PositionResponse{
		Status: status,
		Fix:    fix,
		Error:  posErr,
	}, nil)
}

// Clear - сброс позиции сессии
func (h *PositionHandler) Clear(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSessionID)
	}

	if err := h.positionUC.ClearPosition(c.Context(), sessionID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PositionResponse{
		Status: domain.PositionIdle,
	}, nil)
}

// RecordFailure - фиксация отказа устройства определить позицию
func (h *PositionHandler) RecordFailure(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSessionID)
	}

	var req dto.PositionFailureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	code := domain.PositionErrorCode(req.Code)
	if err := h.positionUC.RecordFailure(c.Context(), sessionID, code); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PositionResponse{
		Status: domain.PositionFailed,
		Error:  domain.NewPositionError(code, "device position request failed"),
	}, nil)
}
