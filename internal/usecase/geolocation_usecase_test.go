package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/usecase"
)

// MockLocationProvider is a mock of LocationProvider
type MockLocationProvider struct {
	mock.Mock
}

func (m *MockLocationProvider) CurrentPosition(ctx context.Context, opts domain.PositionOptions) (*domain.Fix, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fix), args.Error(1)
}

func ptrFloat64(v float64) *float64 {
	return &v
}

func testFix(lat, lng float64) *domain.Fix {
	return &domain.Fix{
		Position:  domain.Position{Lat: lat, Lng: lng},
		AccuracyM: 12,
		TakenAt:   time.Now(),
	}
}

func TestGeolocationService_RequestPosition(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("successful request moves idle to active", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

		assert.Equal(t, domain.PositionIdle, svc.Status())

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(testFix(0.30, 32.58), nil)

		fix, err := svc.RequestPosition(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, fix)
		assert.Equal(t, domain.PositionActive, svc.Status())
		assert.Nil(t, svc.LastError())

		current, ok := svc.CurrentFix()
		assert.True(t, ok)
		assert.InDelta(t, 0.30, current.Lat, 1e-9)

		provider.AssertExpectations(t)
	})

	t.Run("nil provider fails with UNSUPPORTED", func(t *testing.T) {
		svc := usecase.NewGeolocationService(nil, domain.PositionOptions{}, logger)

		fix, err := svc.RequestPosition(ctx)

		assert.Nil(t, fix)
		assert.Error(t, err)
		assert.Equal(t, domain.PositionFailed, svc.Status())
		assert.Equal(t, domain.Unsupported, svc.LastError().Code)
	})

	t.Run("failure keeps previous fix but reports error state", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(testFix(0.30, 32.58), nil).Once()
		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(nil, domain.NewPositionError(domain.PermissionDenied, "denied")).Once()

		_, err := svc.RequestPosition(ctx)
		assert.NoError(t, err)

		_, err = svc.RequestPosition(ctx)
		assert.Error(t, err)
		assert.Equal(t, domain.PositionFailed, svc.Status())
		assert.Equal(t, domain.PermissionDenied, svc.LastError().Code)

		// Прошлый фикс остаётся: последнее валидное ранжирование в силе
		current, ok := svc.CurrentFix()
		assert.True(t, ok)
		assert.InDelta(t, 0.30, current.Lat, 1e-9)

		provider.AssertExpectations(t)
	})

	t.Run("timeout maps to TIMEOUT code", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{
			Timeout:    time.Millisecond,
			MaximumAge: time.Minute,
		}, logger)

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded)

		_, err := svc.RequestPosition(ctx)

		assert.Error(t, err)
		assert.Equal(t, domain.PositionTimeout, svc.LastError().Code)
	})

	t.Run("unknown provider error maps to POSITION_UNAVAILABLE", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(nil, errors.New("no satellites"))

		_, err := svc.RequestPosition(ctx)

		assert.Error(t, err)
		assert.Equal(t, domain.PositionUnavailable, svc.LastError().Code)
	})

	t.Run("clear during in-flight request discards the result", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

		started := make(chan struct{})
		release := make(chan struct{})

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				close(started)
				<-release
			}).
			Return(testFix(0.30, 32.58), nil)

		done := make(chan error, 1)
		go func() {
			_, err := svc.RequestPosition(ctx)
			done <- err
		}()

		<-started
		svc.ClearPosition()
		close(release)

		err := <-done
		assert.True(t, usecase.IsStalePositionError(err))
		assert.Equal(t, domain.PositionIdle, svc.Status())

		_, ok := svc.CurrentFix()
		assert.False(t, ok)
	})
}

func TestGeolocationService_ClearPosition(t *testing.T) {
	logger := zap.NewNop()
	provider := &MockLocationProvider{}
	svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

	provider.On("CurrentPosition", mock.Anything, mock.Anything).
		Return(testFix(0.30, 32.58), nil)

	_, err := svc.RequestPosition(context.Background())
	assert.NoError(t, err)

	svc.ClearPosition()

	assert.Equal(t, domain.PositionIdle, svc.Status())
	assert.Nil(t, svc.LastError())
	_, ok := svc.CurrentFix()
	assert.False(t, ok)

	// Повторный сброс безопасен
	svc.ClearPosition()
	assert.Equal(t, domain.PositionIdle, svc.Status())
}

func TestRankByDistance(t *testing.T) {
	visitor := domain.Position{Lat: 0.30, Lng: 32.58}

	a := domain.Listing{ID: uuid.New(), Name: "A", Lat: ptrFloat64(0.31), Lng: ptrFloat64(32.59)}
	b := domain.Listing{ID: uuid.New(), Name: "B", Lat: ptrFloat64(0.40), Lng: ptrFloat64(32.70)}
	c := domain.Listing{ID: uuid.New(), Name: "C"} // без координат

	t.Run("sorts ascending and appends coordinate-less listings unannotated", func(t *testing.T) {
		ranked := usecase.RankByDistance(visitor, []domain.Listing{b, c, a})

		assert.Len(t, ranked, 3)
		assert.Equal(t, "A", ranked[0].Name)
		assert.Equal(t, "B", ranked[1].Name)
		assert.Equal(t, "C", ranked[2].Name)

		assert.NotNil(t, ranked[0].DistanceKm)
		assert.NotNil(t, ranked[1].DistanceKm)
		assert.Nil(t, ranked[2].DistanceKm)

		// ~1.6 km до A, ~17 km до B
		assert.InDelta(t, 1.6, *ranked[0].DistanceKm, 0.2)
		assert.InDelta(t, 17.0, *ranked[1].DistanceKm, 1.5)
	})

	t.Run("never changes membership", func(t *testing.T) {
		ranked := usecase.RankByDistance(visitor, []domain.Listing{a, b, c})
		assert.Len(t, ranked, 3)
	})

	t.Run("coordinate-less listings preserve input order", func(t *testing.T) {
		d := domain.Listing{ID: uuid.New(), Name: "D"}
		ranked := usecase.RankByDistance(visitor, []domain.Listing{c, a, d})

		assert.Equal(t, "A", ranked[0].Name)
		assert.Equal(t, "C", ranked[1].Name)
		assert.Equal(t, "D", ranked[2].Name)
	})
}

func TestGeolocationService_SortByDistance(t *testing.T) {
	logger := zap.NewNop()

	a := domain.Listing{ID: uuid.New(), Name: "A", Lat: ptrFloat64(0.31), Lng: ptrFloat64(32.59)}
	b := domain.Listing{ID: uuid.New(), Name: "B", Lat: ptrFloat64(0.40), Lng: ptrFloat64(32.70)}

	t.Run("identity without a fix", func(t *testing.T) {
		svc := usecase.NewGeolocationService(nil, domain.PositionOptions{}, logger)

		ranked := svc.SortByDistance([]domain.Listing{b, a})

		assert.Len(t, ranked, 2)
		assert.Equal(t, "B", ranked[0].Name)
		assert.Equal(t, "A", ranked[1].Name)
		assert.Nil(t, ranked[0].DistanceKm)
		assert.Nil(t, ranked[1].DistanceKm)
	})

	t.Run("ranks by distance with an active fix", func(t *testing.T) {
		provider := &MockLocationProvider{}
		svc := usecase.NewGeolocationService(provider, domain.PositionOptions{}, logger)

		provider.On("CurrentPosition", mock.Anything, mock.Anything).
			Return(testFix(0.30, 32.58), nil)

		_, err := svc.RequestPosition(context.Background())
		assert.NoError(t, err)

		ranked := svc.SortByDistance([]domain.Listing{b, a})

		assert.Equal(t, "A", ranked[0].Name)
		assert.Equal(t, "B", ranked[1].Name)
	})

	t.Run("idempotent for an already sorted list", func(t *testing.T) {
		ranked := usecase.RankByDistance(domain.Position{Lat: 0.30, Lng: 32.58}, []domain.Listing{a, b})
		again := usecase.RankByDistance(domain.Position{Lat: 0.30, Lng: 32.58}, []domain.Listing{ranked[0].Listing, ranked[1].Listing})

		assert.Equal(t, ranked[0].Name, again[0].Name)
		assert.Equal(t, ranked[1].Name, again[1].Name)
	})
}
