package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	"github.com/restaurant-discovery/internal/pkg/errors"
)

// PositionUseCase - хранение фикса позиции по сессии клиента.
// TTL записи равен максимальному возрасту фикса: по истечении фикс
// молча пропадает, автоматического обновления нет - клиент
// запрашивает позицию заново явным действием пользователя.
type PositionUseCase struct {
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	maxFixAge time.Duration
}

// NewPositionUseCase - создание нового PositionUseCase
func NewPositionUseCase(cacheRepo repository.CacheRepository, maxFixAge time.Duration, logger *zap.Logger) *PositionUseCase {
	if maxFixAge == 0 {
		maxFixAge = domain.DefaultPositionOptions().MaximumAge
	}
	return &PositionUseCase{
		cacheRepo: cacheRepo,
		logger:    logger,
		maxFixAge: maxFixAge,
	}
}

// SavePosition сохраняет фикс сессии и снимает прошлый отказ
func (uc *PositionUseCase) SavePosition(ctx context.Context, sessionID uuid.UUID, fix domain.Fix) error {
	if fix.TakenAt.IsZero() {
		fix.TakenAt = time.Now()
	}

	data, err := json.Marshal(fix)
	if err != nil {
		return errors.ErrInternalServer
	}

	if err := uc.cacheRepo.Set(ctx, positionKey(sessionID), data, uc.maxFixAge); err != nil {
		uc.logger.Error("Failed to store session position", zap.Error(err))
		return errors.ErrCacheError
	}
	_ = uc.cacheRepo.Delete(ctx, failureKey(sessionID))

	uc.logger.Debug("Session position stored",
		zap.String("session_id", sessionID.String()),
		zap.Float64("lat", fix.Lat),
		zap.Float64("lng", fix.Lng))
	return nil
}

// GetPosition возвращает живой фикс сессии; (nil, nil) если его нет
func (uc *PositionUseCase) GetPosition(ctx context.Context, sessionID uuid.UUID) (*domain.Fix, error) {
	data, err := uc.cacheRepo.Get(ctx, positionKey(sessionID))
	if err != nil {
		uc.logger.Error("Failed to read session position", zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if data == nil {
		return nil, nil
	}

	var fix domain.Fix
	if err := json.Unmarshal(data, &fix); err != nil {
		uc.logger.Warn("Corrupt session position entry",
			zap.String("session_id", sessionID.String()))
		return nil, nil
	}
	return &fix, nil
}

// ClearPosition явно забывает фикс сессии
func (uc *PositionUseCase) ClearPosition(ctx context.Context, sessionID uuid.UUID) error {
	if err := uc.cacheRepo.Delete(ctx, positionKey(sessionID)); err != nil {
		uc.logger.Error("Failed to clear session position", zap.Error(err))
		return errors.ErrCacheError
	}
	_ = uc.cacheRepo.Delete(ctx, failureKey(sessionID))
	return nil
}

// RecordFailure запоминает отказ устройства для сессии
func (uc *PositionUseCase) RecordFailure(ctx context.Context, sessionID uuid.UUID, code domain.PositionErrorCode) error {
	if err := uc.cacheRepo.Set(ctx, failureKey(sessionID), []byte(code), uc.maxFixAge); err != nil {
		uc.logger.Error("Failed to record position failure", zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

// SessionStatus собирает состояние позиции сессии: активный фикс,
// последний отказ либо idle
func (uc *PositionUseCase) SessionStatus(ctx context.Context, sessionID uuid.UUID) (domain.PositionStatus, *domain.Fix, *domain.PositionError, error) {
	fix, err := uc.GetPosition(ctx, sessionID)
	if err != nil {
		return domain.PositionIdle, nil, nil, err
	}
	if fix != nil {
		return domain.PositionActive, fix, nil, nil
	}

	data, err := uc.cacheRepo.Get(ctx, failureKey(sessionID))
	if err == nil && data != nil {
		posErr := domain.NewPositionError(domain.PositionErrorCode(data), "device position request failed")
		return domain.PositionFailed, nil, posErr, nil
	}
	return domain.PositionIdle, nil, nil, nil
}

func positionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:position", sessionID)
}

func failureKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:position:error", sessionID)
}
