package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing - запись заведения из слоя персистентности.
// Необязательные поля могут отсутствовать; заведение без координат
// участвует в списках, но не попадает на карту.
type Listing struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	City       string    `json:"city" db:"city"`
	Address    string    `json:"address" db:"address"`
	Categories []string  `json:"categories" db:"categories"`
	Lat        *float64  `json:"lat,omitempty" db:"lat"`
	Lng        *float64  `json:"lng,omitempty" db:"lng"`
	OpenTime   *string   `json:"open_time,omitempty" db:"open_time"`
	CloseTime  *string   `json:"close_time,omitempty" db:"close_time"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	Website    *string   `json:"website,omitempty" db:"website"`
	ImageURL   *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// HasCoordinates проверяет наличие валидной пары координат
func (l *Listing) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// Coordinates возвращает позицию заведения, если координаты заданы
func (l *Listing) Coordinates() (Position, bool) {
	if !l.HasCoordinates() {
		return Position{}, false
	}
	return Position{Lat: *l.Lat, Lng: *l.Lng}, true
}

// RankedListing - заведение с опциональной дистанцией до посетителя.
// DistanceKm присутствует только при активном фиксе позиции; никогда
// не сохраняется и пересчитывается при каждой смене позиции.
type RankedListing struct {
	Listing
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
