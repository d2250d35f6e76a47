package mapview

import (
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
)

const (
	staticMarkerID = "location"
	staticZoom     = 15
)

// StaticMap - карта только для просмотра: один маркер, фиксированный
// зум, ни одного обработчика взаимодействий.
type StaticMap struct {
	widget repository.MapWidget
	logger *zap.Logger
	closed bool
}

// NewStaticMap - создание статичной карты вокруг одной точки
func NewStaticMap(widget repository.MapWidget, pos domain.Position, logger *zap.Logger) *StaticMap {
	widget.PlaceMarker(domain.Marker{
		ID:       staticMarkerID,
		Position: pos,
		Kind:     domain.MarkerListing,
	})
	widget.SetViewport(pos, staticZoom)

	return &StaticMap{widget: widget, logger: logger}
}

// Close снимает маркер
func (m *StaticMap) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.widget.RemoveMarker(staticMarkerID)
}
