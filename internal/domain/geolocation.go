package domain

import "time"

// PositionStatus - состояние сервиса геолокации
type PositionStatus string

const (
	PositionIdle       PositionStatus = "idle"
	PositionRequesting PositionStatus = "requesting"
	PositionActive     PositionStatus = "active"
	PositionFailed     PositionStatus = "error"
)

// PositionErrorCode - таксономия отказов получения позиции
type PositionErrorCode string

const (
	// PermissionDenied - пользователь или среда запретили доступ к геолокации.
	// Решение кешируется средой на уровне origin, повторный запрос не поможет.
	PermissionDenied PositionErrorCode = "PERMISSION_DENIED"

	// PositionUnavailable - источник позиции недоступен (нет спутников/сети)
	PositionUnavailable PositionErrorCode = "POSITION_UNAVAILABLE"

	// PositionTimeout - фикс не получен за отведённое время
	PositionTimeout PositionErrorCode = "TIMEOUT"

	// Unsupported - среда вообще не предоставляет геолокацию
	Unsupported PositionErrorCode = "UNSUPPORTED"
)

// PositionError - нефатальная ошибка запроса позиции
type PositionError struct {
	Code    PositionErrorCode `json:"code"`
	Message string            `json:"message"`
}

func (e *PositionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewPositionError(code PositionErrorCode, message string) *PositionError {
	return &PositionError{Code: code, Message: message}
}

// PositionOptions - параметры запроса фикса у источника геолокации
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultPositionOptions - параметры из контракта устройства:
// высокая точность, таймаут 10 с, максимальный возраст фикса 5 мин
func DefaultPositionOptions() PositionOptions {
	return PositionOptions{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   5 * time.Minute,
	}
}

// Fix - разрешённый фикс позиции посетителя
type Fix struct {
	Position
	AccuracyM float64   `json:"accuracy_m"`
	TakenAt   time.Time `json:"taken_at"`
}
