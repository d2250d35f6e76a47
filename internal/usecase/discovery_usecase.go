package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	"github.com/restaurant-discovery/internal/pkg/errors"
	"github.com/restaurant-discovery/internal/pkg/utils"
	"github.com/restaurant-discovery/internal/usecase/dto"
)

// DiscoveryUseCase - use case поиска заведений: фильтрация,
// ранжирование по дистанции и аннотация «открыто сейчас»
type DiscoveryUseCase struct {
	listingRepo repository.ListingRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewDiscoveryUseCase - создание нового DiscoveryUseCase
func NewDiscoveryUseCase(listingRepo repository.ListingRepository, logger *zap.Logger) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		listingRepo: listingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Discover - поиск заведений по критериям.
// Фильтрация всегда предшествует сортировке по дистанции.
func (uc *DiscoveryUseCase) Discover(ctx context.Context, req dto.DiscoverRequest) (*dto.DiscoverResponse, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load listings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	criteria := domain.FilterCriteria{
		District: req.District,
		Category: req.Category,
		Query:    req.Query,
	}
	filtered := domain.ApplyFilter(listings, criteria)

	nowMinutes := domain.MinutesOfDay(uc.now())

	if req.OpenNow {
		open := filtered[:0]
		for i := range filtered {
			if domain.IsOpenAt(filtered[i].OpenTime, filtered[i].CloseTime, nowMinutes) {
				open = append(open, filtered[i])
			}
		}
		filtered = open
	}

	var ranked []domain.RankedListing
	if req.Position != nil {
		ranked = RankByDistance(*req.Position, filtered)
	} else {
		ranked = make([]domain.RankedListing, len(filtered))
		for i, l := range filtered {
			ranked[i] = domain.RankedListing{Listing: l}
		}
	}

	results := make([]dto.RestaurantResult, len(ranked))
	for i, r := range ranked {
		isOpen := domain.IsOpenAt(r.OpenTime, r.CloseTime, nowMinutes)
		results[i] = dto.ConvertRestaurant(r, isOpen)
	}

	return &dto.DiscoverResponse{
		Restaurants: results,
		Total:       len(results),
		Ranked:      req.Position != nil,
	}, nil
}

// GetListing возвращает одно заведение
func (uc *DiscoveryUseCase) GetListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get listing", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return listing, nil
}

// UpdateCoordinates записывает координату заведения после
// редактирования пина
func (uc *DiscoveryUseCase) UpdateCoordinates(ctx context.Context, id uuid.UUID, pos domain.Position) error {
	if !utils.ValidateCoordinates(pos.Lat, pos.Lng) {
		return errors.ErrInvalidCoordinates
	}

	if err := uc.listingRepo.UpdateCoordinates(ctx, id, pos); err != nil {
		uc.logger.Error("Failed to update coordinates",
			zap.String("id", id.String()),
			zap.Error(err))
		return err
	}

	uc.logger.Info("Listing coordinates updated",
		zap.String("id", id.String()),
		zap.Float64("lat", pos.Lat),
		zap.Float64("lng", pos.Lng))
	return nil
}

// Districts возвращает словарь районов, начиная с сентинеля «все районы»
func (uc *DiscoveryUseCase) Districts(ctx context.Context) ([]string, error) {
	districts, err := uc.listingRepo.Districts(ctx)
	if err != nil {
		uc.logger.Error("Failed to load districts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return append([]string{domain.AllDistricts}, districts...), nil
}

// Categories возвращает словарь категорий, начиная с сентинеля «все»
func (uc *DiscoveryUseCase) Categories(ctx context.Context) ([]string, error) {
	categories, err := uc.listingRepo.Categories(ctx)
	if err != nil {
		uc.logger.Error("Failed to load categories", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return append([]string{domain.AllCategories}, categories...), nil
}
