package dto

import "github.com/restaurant-discovery/internal/domain"

// GeocodeRequest - запрос на разрешение адреса в координату
type GeocodeRequest struct {
	Address string `json:"address" validate:"required,min=3"`
	City    string `json:"city"`
}

// GeocodeResponse - разрешённая координата
type GeocodeResponse struct {
	Position domain.Position `json:"position"`
	Cached   bool            `json:"cached"`
}
