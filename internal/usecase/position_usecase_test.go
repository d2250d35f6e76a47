package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/usecase"
)

func TestPositionUseCase_SavePosition(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	sessionID := uuid.New()
	maxFixAge := 5 * time.Minute

	t.Run("stores fix with TTL and clears previous failure", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, maxFixAge, logger)

		positionKey := fmt.Sprintf("session:%s:position", sessionID)
		failureKey := fmt.Sprintf("session:%s:position:error", sessionID)

		mockCache.On("Set", ctx, positionKey, mock.Anything, maxFixAge).Return(nil)
		mockCache.On("Delete", ctx, failureKey).Return(nil)

		fix := domain.Fix{
			Position:  domain.Position{Lat: 0.3187, Lng: 32.5840},
			AccuracyM: 8,
			TakenAt:   time.Now(),
		}

		assert.NoError(t, uc.SavePosition(ctx, sessionID, fix))
		mockCache.AssertExpectations(t)
	})
}

func TestPositionUseCase_GetPosition(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("returns stored fix", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		fix := domain.Fix{
			Position:  domain.Position{Lat: 0.3187, Lng: 32.5840},
			AccuracyM: 8,
			TakenAt:   time.Now().UTC(),
		}
		data, _ := json.Marshal(fix)
		mockCache.On("Get", ctx, mock.Anything).Return(data, nil)

		got, err := uc.GetPosition(ctx, sessionID)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.InDelta(t, 0.3187, got.Lat, 1e-9)
	})

	t.Run("expired or absent fix yields nil without error", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)

		got, err := uc.GetPosition(ctx, sessionID)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt entry is treated as absent", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		mockCache.On("Get", ctx, mock.Anything).Return([]byte("{broken"), nil)

		got, err := uc.GetPosition(ctx, sessionID)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPositionUseCase_SessionStatus(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	sessionID := uuid.New()

	positionKey := fmt.Sprintf("session:%s:position", sessionID)
	failureKey := fmt.Sprintf("session:%s:position:error", sessionID)

	t.Run("active when a fix exists", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		fix := domain.Fix{Position: domain.Position{Lat: 0.3, Lng: 32.58}}
		data, _ := json.Marshal(fix)
		mockCache.On("Get", ctx, positionKey).Return(data, nil)

		status, got, posErr, err := uc.SessionStatus(ctx, sessionID)

		assert.NoError(t, err)
		assert.Equal(t, domain.PositionActive, status)
		assert.NotNil(t, got)
		assert.Nil(t, posErr)
	})

	t.Run("error state when only a recorded failure exists", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		mockCache.On("Get", ctx, positionKey).Return(nil, nil)
		mockCache.On("Get", ctx, failureKey).Return([]byte(domain.PermissionDenied), nil)

		status, got, posErr, err := uc.SessionStatus(ctx, sessionID)

		assert.NoError(t, err)
		assert.Equal(t, domain.PositionFailed, status)
		assert.Nil(t, got)
		assert.Equal(t, domain.PermissionDenied, posErr.Code)
	})

	t.Run("idle when nothing is stored", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewPositionUseCase(mockCache, 0, logger)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)

		status, got, posErr, err := uc.SessionStatus(ctx, sessionID)

		assert.NoError(t, err)
		assert.Equal(t, domain.PositionIdle, status)
		assert.Nil(t, got)
		assert.Nil(t, posErr)
	})
}

func TestPositionUseCase_ClearPosition(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	sessionID := uuid.New()

	mockCache := &MockCacheRepository{}
	uc := usecase.NewPositionUseCase(mockCache, 0, logger)

	mockCache.On("Delete", ctx, fmt.Sprintf("session:%s:position", sessionID)).Return(nil)
	mockCache.On("Delete", ctx, fmt.Sprintf("session:%s:position:error", sessionID)).Return(nil)

	assert.NoError(t, uc.ClearPosition(ctx, sessionID))
	mockCache.AssertExpectations(t)
}
