package dto

import "github.com/restaurant-discovery/internal/domain"

// SavePositionRequest - фикс устройства, присланный клиентом сессии
type SavePositionRequest struct {
	Lat       float64 `json:"lat" validate:"latitude"`
	Lng       float64 `json:"lng" validate:"longitude"`
	AccuracyM float64 `json:"accuracy_m" validate:"gte=0"`
}

// PositionFailureRequest - отказ устройства, присланный клиентом сессии
type PositionFailureRequest struct {
	Code string `json:"code" validate:"required,oneof=PERMISSION_DENIED POSITION_UNAVAILABLE TIMEOUT UNSUPPORTED"`
}

// PositionResponse - состояние позиции сессии
type PositionResponse struct {
	Status domain.PositionStatus `json:"status"`
	Fix    *domain.Fix           `json:"fix,omitempty"`
	Error  *domain.PositionError `json:"error,omitempty"`
}
