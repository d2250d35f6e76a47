package domain

import "github.com/google/uuid"

// Имена стримов (должны совпадать с основным приложением)
const (
	StreamCoordsBackfill = "stream:listings:coords"
	StreamCoordsDone     = "stream:listings:coords:done"
)

// CoordsBackfillEvent - событие на догеокодирование заведения без координат
type CoordsBackfillEvent struct {
	ListingID uuid.UUID `json:"listing_id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
}

// HasAddress проверяет, что по событию есть что геокодировать
func (e *CoordsBackfillEvent) HasAddress() bool {
	return e.Address != "" || e.City != ""
}

// CoordsDoneEvent - результат догеокодирования
type CoordsDoneEvent struct {
	ListingID uuid.UUID `json:"listing_id"`
	Position  *Position `json:"position,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data map[string]interface{}
}
