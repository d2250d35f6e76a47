package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant-discovery/internal/domain"
)

// ListingRepository определяет методы доступа к записям заведений
type ListingRepository interface {
	// List возвращает все заведения
	List(ctx context.Context) ([]domain.Listing, error)

	// GetByID возвращает заведение по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// ListWithoutCoordinates возвращает заведения без пары координат
	ListWithoutCoordinates(ctx context.Context, limit int) ([]domain.Listing, error)

	// UpdateCoordinates записывает новую координату заведения
	// (результат редактирования пина или догеокодирования)
	UpdateCoordinates(ctx context.Context, id uuid.UUID, pos domain.Position) error

	// Districts возвращает список районов (городов) для словаря фильтра
	Districts(ctx context.Context) ([]string, error)

	// Categories возвращает список категорий для словаря фильтра
	Categories(ctx context.Context) ([]string, error)
}
