package repository

import (
	"context"

	"github.com/restaurant-discovery/internal/domain"
)

// LocationProvider определяет источник позиции устройства.
// Среда выдаёт разрешение один раз на origin и кеширует решение,
// поэтому повторный запрос после PermissionDenied не переспрашивает.
type LocationProvider interface {
	// CurrentPosition запрашивает один фикс с заданными параметрами.
	// Отказ возвращается как *domain.PositionError.
	CurrentPosition(ctx context.Context, opts domain.PositionOptions) (*domain.Fix, error)
}
