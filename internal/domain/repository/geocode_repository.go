package repository

import (
	"context"

	"github.com/restaurant-discovery/internal/domain"
)

// GeocodeRepository определяет внешний сервис прямого геокодирования
type GeocodeRepository interface {
	// Forward разрешает свободный текст адреса в координату.
	// Выполняет один запрос без повторов и берёт только первый результат;
	// пустой результат - ошибка ErrGeocodeNoResult.
	Forward(ctx context.Context, address, locality string) (*domain.Position, error)
}
