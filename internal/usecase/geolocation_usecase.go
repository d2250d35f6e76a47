package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	"github.com/restaurant-discovery/internal/pkg/utils"
)

// GeolocationService - сервис позиции посетителя.
// Состояния: idle -> requesting -> active | error.
// Фикс живёт до ClearPosition или следующего успешного запроса,
// автоматического обновления по истечении возраста нет.
type GeolocationService struct {
	provider repository.LocationProvider
	logger   *zap.Logger
	opts     domain.PositionOptions

	mu      sync.Mutex
	status  domain.PositionStatus
	fix     *domain.Fix
	lastErr *domain.PositionError
	seq     uint64
}

// NewGeolocationService - создание нового GeolocationService
func NewGeolocationService(
	provider repository.LocationProvider,
	opts domain.PositionOptions,
	logger *zap.Logger,
) *GeolocationService {
	if opts == (domain.PositionOptions{}) {
		opts = domain.DefaultPositionOptions()
	}
	return &GeolocationService{
		provider: provider,
		logger:   logger,
		opts:     opts,
		status:   domain.PositionIdle,
	}
}

// RequestPosition запрашивает фикс у источника геолокации.
// Запрос всегда инициируется пользователем явно; устаревший ответ
// обогнавшего его запроса отбрасывается, а не перезаписывает состояние.
func (s *GeolocationService) RequestPosition(ctx context.Context) (*domain.Fix, error) {
	s.mu.Lock()
	if s.provider == nil {
		posErr := domain.NewPositionError(domain.Unsupported, "environment has no location capability")
		s.status = domain.PositionFailed
		s.lastErr = posErr
		s.mu.Unlock()
		return nil, posErr
	}
	s.seq++
	mySeq := s.seq
	s.status = domain.PositionRequesting
	s.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	fix, err := s.provider.CurrentPosition(reqCtx, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != mySeq {
		// Состояние уже принадлежит более позднему запросу или было сброшено
		s.logger.Debug("Discarding stale position result", zap.Uint64("seq", mySeq))
		return nil, errStalePosition
	}

	if err != nil {
		posErr := mapPositionError(err)
		s.status = domain.PositionFailed
		s.lastErr = posErr
		s.logger.Warn("Position request failed",
			zap.String("code", string(posErr.Code)),
			zap.String("message", posErr.Message))
		// Предыдущий фикс сохраняется: последнее валидное ранжирование
		// остаётся в силе, пока пользователь не очистит позицию
		return nil, posErr
	}

	s.status = domain.PositionActive
	s.fix = fix
	s.lastErr = nil
	s.logger.Info("Position acquired",
		zap.Float64("lat", fix.Lat),
		zap.Float64("lng", fix.Lng),
		zap.Float64("accuracy_m", fix.AccuracyM))
	return fix, nil
}

// ClearPosition сбрасывает сервис в idle и забывает фикс.
// Ранее выданные аннотации дистанций после этого устаревают.
func (s *GeolocationService) ClearPosition() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++ // инвалидирует ответы запросов в полёте
	s.status = domain.PositionIdle
	s.fix = nil
	s.lastErr = nil
}

// Status возвращает текущее состояние сервиса
func (s *GeolocationService) Status() domain.PositionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentFix возвращает активный фикс, если он есть
func (s *GeolocationService) CurrentFix() (*domain.Fix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fix == nil {
		return nil, false
	}
	f := *s.fix
	return &f, true
}

// LastError возвращает последний отказ запроса позиции
func (s *GeolocationService) LastError() *domain.PositionError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SortByDistance ранжирует заведения по дистанции до активного фикса.
// Без фикса - тождественная операция без аннотаций. Никогда не меняет
// состав списка, только порядок и аннотацию.
func (s *GeolocationService) SortByDistance(listings []domain.Listing) []domain.RankedListing {
	s.mu.Lock()
	fix := s.fix
	s.mu.Unlock()

	if fix == nil {
		ranked := make([]domain.RankedListing, len(listings))
		for i, l := range listings {
			ranked[i] = domain.RankedListing{Listing: l}
		}
		return ranked
	}
	return RankByDistance(fix.Position, listings)
}

// RankByDistance вычисляет дистанции Haversine от точки до каждого
// заведения с координатами, округляет до 2 знаков и сортирует по
// возрастанию. Заведения без координат добавляются в конец без
// аннотации с сохранением исходного взаимного порядка.
func RankByDistance(from domain.Position, listings []domain.Listing) []domain.RankedListing {
	withCoords := make([]domain.RankedListing, 0, len(listings))
	withoutCoords := make([]domain.RankedListing, 0)

	for _, l := range listings {
		pos, ok := l.Coordinates()
		if !ok {
			withoutCoords = append(withoutCoords, domain.RankedListing{Listing: l})
			continue
		}
		km := utils.RoundDistanceKm(utils.HaversineDistance(from.Lat, from.Lng, pos.Lat, pos.Lng))
		withCoords = append(withCoords, domain.RankedListing{Listing: l, DistanceKm: &km})
	}

	sort.SliceStable(withCoords, func(i, j int) bool {
		return *withCoords[i].DistanceKm < *withCoords[j].DistanceKm
	})

	return append(withCoords, withoutCoords...)
}

var errStalePosition = errors.New("position result superseded")

// IsStalePositionError сообщает, что результат запроса был отброшен
// как устаревший и состояние сервиса им не затронуто
func IsStalePositionError(err error) bool {
	return errors.Is(err, errStalePosition)
}

// mapPositionError приводит ошибку источника к таксономии отказов
func mapPositionError(err error) *domain.PositionError {
	var posErr *domain.PositionError
	if errors.As(err, &posErr) {
		return posErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewPositionError(domain.PositionTimeout, "position request timed out")
	}
	return domain.NewPositionError(domain.PositionUnavailable, err.Error())
}
