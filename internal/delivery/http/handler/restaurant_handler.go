package handler

import (
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

// RestaurantHandler - обработчик запросов каталога заведений
type RestaurantHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	positionUC  *usecase.PositionUseCase
	logger      *zap.Logger
}

// NewRestaurantHandler - создание нового RestaurantHandler
func NewRestaurantHandler(
	discoveryUC *usecase.DiscoveryUseCase,
	positionUC *usecase.PositionUseCase,
	logger *zap.Logger,
) *RestaurantHandler {
	return &RestaurantHandler{
		discoveryUC: discoveryUC,
		positionUC:  positionUC,
		logger:      logger,
	}
}

// List - поиск заведений с фильтрами и опциональным ранжированием по дистанции
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	req := dto.DiscoverRequest{
		District: c.Query("district", domain.AllDistricts),
		Category: c.Query("category", domain.AllCategories),
		Query:    c.Query("q"),
		OpenNow:  c.QueryBool("open_now"),
	}

	// Позиция берётся из сохранённого фикса сессии, если она передана
	if sessionID := c.Query("session_id"); sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidSessionID)
		}

		fix, err := h.positionUC.GetPosition(c.Context(), id)
		if err != nil {
			return utils.SendError(c, err)
		}
		if fix != nil {
			req.Position = &fix.Position
		}
	}

	result, err := h.discoveryUC.Discover(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Ranked: result.Ranked,
	})
}

// GetByID - получение заведения по идентификатору
func (h *RestaurantHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	listing, err := h.discoveryUC.GetListing(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, listing, nil)
}

// UpdateCoordinates - сохранение координаты после редактирования пина
func (h *RestaurantHandler) UpdateCoordinates(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	var req dto.UpdateCoordinatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pos := domain.Position{Lat: req.Lat, Lng: req.Lng}
	if err := h.discoveryUC.UpdateCoordinates(c.Context(), id, pos); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"id":  id.String(),
		"lat": pos.Lat,
		"lng": pos.Lng,
	}, nil)
}

// Districts - список районов для фильтра
func (h *RestaurantHandler) Districts(c *fiber.Ctx) error {
	districts, err := h.discoveryUC.Districts(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"districts": districts,
	}, &utils.Meta{
		Total: len(districts),
	})
}

// Categories - список категорий для фильтра
func (h *RestaurantHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.discoveryUC.Categories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"categories": categories,
	}, &utils.Meta{
		Total: len(categories),
	})
}
