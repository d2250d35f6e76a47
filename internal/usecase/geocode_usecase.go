package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	"github.com/restaurant-discovery/internal/pkg/errors"
)

// GeocodeUseCase - use case прямого геокодирования с кешем результатов
// и защитой от устаревших ответов при быстрых последовательных запросах
type GeocodeUseCase struct {
	geocodeRepo repository.GeocodeRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration

	// Номер последнего выданного запроса: ответ более раннего запроса,
	// пришедший позже, отбрасывается как устаревший
	seq atomic.Uint64
}

// NewGeocodeUseCase - создание нового GeocodeUseCase
func NewGeocodeUseCase(
	geocodeRepo repository.GeocodeRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocodeRepo: geocodeRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// Resolve разрешает адрес для интерактивного вызова (набор адреса в UI).
// Если за время запроса был выдан более новый, результат отбрасывается
// с ErrGeocodeSuperseded и не должен применяться вызывающим.
func (uc *GeocodeUseCase) Resolve(ctx context.Context, address, locality string) (*domain.Position, bool, error) {
	token := uc.seq.Add(1)

	pos, cached, err := uc.lookup(ctx, address, locality)

	if uc.seq.Load() != token {
		uc.logger.Debug("Discarding superseded geocode result",
			zap.String("address", address))
		return nil, false, errors.ErrGeocodeSuperseded
	}
	if err != nil {
		return nil, false, err
	}
	return pos, cached, nil
}

// ResolveAddress разрешает адрес без защиты от гонок - для фоновых
// потребителей, у которых нет конкурирующих запросов
func (uc *GeocodeUseCase) ResolveAddress(ctx context.Context, address, locality string) (*domain.Position, error) {
	pos, _, err := uc.lookup(ctx, address, locality)
	return pos, err
}

func (uc *GeocodeUseCase) lookup(ctx context.Context, address, locality string) (*domain.Position, bool, error) {
	key := cacheKey(address, locality)

	if data, err := uc.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var pos domain.Position
		if err := json.Unmarshal(data, &pos); err == nil {
			return &pos, true, nil
		}
		// Битый кеш перезаписываем свежим результатом
		uc.logger.Warn("Corrupt geocode cache entry", zap.String("key", key))
	}

	pos, err := uc.geocodeRepo.Forward(ctx, address, locality)
	if err != nil {
		// Один запрос без повторов: вызывающий оставляет текущие
		// координаты нетронутыми и показывает неблокирующее уведомление
		uc.logger.Warn("Geocode lookup failed",
			zap.String("address", address),
			zap.String("locality", locality),
			zap.Error(err))
		return nil, false, err
	}

	if data, err := json.Marshal(pos); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache geocode result", zap.String("key", key), zap.Error(err))
		}
	}

	return pos, false, nil
}

func cacheKey(address, locality string) string {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return "geocode:" + normalize(address) + "|" + normalize(locality)
}
