package dto

import (
	"github.com/restaurant-discovery/internal/domain"
)

// DiscoverRequest - запрос на поиск заведений
type DiscoverRequest struct {
	District string `json:"district"`
	Category string `json:"category"`
	Query    string `json:"query"`
	OpenNow  bool   `json:"open_now"`

	// Позиция посетителя; nil - ранжирование по дистанции не выполняется
	Position *domain.Position `json:"position,omitempty"`
}

// RestaurantResult - заведение в ответе поиска
type RestaurantResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	City       string   `json:"city"`
	Address    string   `json:"address"`
	Categories []string `json:"categories"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	OpenTime   *string  `json:"open_time,omitempty"`
	CloseTime  *string  `json:"close_time,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Website    *string  `json:"website,omitempty"`
	ImageURL   *string  `json:"image_url,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	IsOpen     bool     `json:"is_open"`
}

// DiscoverResponse - ответ на поиск заведений
type DiscoverResponse struct {
	Restaurants []RestaurantResult `json:"restaurants"`
	Total       int                `json:"total"`
	Ranked      bool               `json:"ranked"`
}

// UpdateCoordinatesRequest - запись координаты после редактирования пина
type UpdateCoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// ConvertRestaurant преобразует доменное заведение в результат поиска
func ConvertRestaurant(r domain.RankedListing, isOpen bool) RestaurantResult {
	return RestaurantResult{
		ID:         r.ID.String(),
		Name:       r.Name,
		City:       r.City,
		Address:    r.Address,
		Categories: r.Categories,
		Lat:        r.Lat,
		Lng:        r.Lng,
		OpenTime:   r.OpenTime,
		CloseTime:  r.CloseTime,
		Phone:      r.Phone,
		Website:    r.Website,
		ImageURL:   r.ImageURL,
		DistanceKm: r.DistanceKm,
		IsOpen:     isOpen,
	}
}
