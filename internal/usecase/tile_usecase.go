package usecase

import (
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/config"
	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/pkg/errors"
	"github.com/restaurant-discovery/internal/pkg/utils"
	"github.com/restaurant-discovery/internal/usecase/dto"
)

// Верхняя граница числа тайлов в одном ответе покрытия,
// чтобы случайный глубокий зум не разворачивал миллионы ссылок
const maxCoverageTiles = 256

// TileUseCase - адресация XYZ-тайлов подложки карты.
// Сами тайлы сервис не проксирует и не кеширует.
type TileUseCase struct {
	cfg    config.TilesConfig
	logger *zap.Logger
}

// NewTileUseCase - создание нового TileUseCase
func NewTileUseCase(cfg config.TilesConfig, logger *zap.Logger) *TileUseCase {
	return &TileUseCase{cfg: cfg, logger: logger}
}

// Config возвращает шаблон тайлов и атрибуцию для UI
func (uc *TileUseCase) Config() dto.TileConfigResponse {
	return dto.TileConfigResponse{
		URLTemplate: uc.cfg.URLTemplate,
		Attribution: uc.cfg.Attribution,
		MinZoom:     uc.cfg.MinZoom,
		MaxZoom:     uc.cfg.MaxZoom,
	}
}

// Coverage возвращает тайлы, покрывающие прямоугольник на заданном зуме
func (uc *TileUseCase) Coverage(req dto.TileCoverageRequest) (*dto.TileCoverageResponse, error) {
	if req.Zoom < uc.cfg.MinZoom || req.Zoom > uc.cfg.MaxZoom {
		return nil, errors.ErrInvalidZoom
	}

	box := domain.BoundingBox{
		MinLat: req.MinLat,
		MinLng: req.MinLng,
		MaxLat: req.MaxLat,
		MaxLng: req.MaxLng,
	}

	coords := utils.TilesForBounds(box, req.Zoom)
	if len(coords) > maxCoverageTiles {
		uc.logger.Warn("Tile coverage too large",
			zap.Int("zoom", req.Zoom),
			zap.Int("tiles", len(coords)))
		return nil, errors.ErrInvalidZoom.WithDetails(map[string]interface{}{
			"tiles":     len(coords),
			"max_tiles": maxCoverageTiles,
		})
	}

	tiles := make([]dto.TileRef, len(coords))
	for i, tc := range coords {
		tiles[i] = dto.TileRef{
			Z:   tc.Z,
			X:   tc.X,
			Y:   tc.Y,
			URL: utils.TileURL(uc.cfg.URLTemplate, tc),
		}
	}

	return &dto.TileCoverageResponse{
		Tiles:       tiles,
		Attribution: uc.cfg.Attribution,
	}, nil
}
