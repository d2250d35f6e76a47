// Package mapview содержит контроллеры карты: browse-карта со всеми
// заведениями, карта с редактируемым пином и статичная карта.
//
// Контроллер - единственный владелец отображаемых координат; виджет
// карты только рендерит то, что ему сказали. Один контроллер на одну
// смонтированную карту, жизненный цикл завершается вызовом Close.
package mapview

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
)

const (
	boundsPaddingPx = 48
	visitorZoom     = 14
	visitorMarkerID = "visitor"
)

// BrowseMap - карта со всеми отфильтрованными заведениями.
// Коллекция маркеров заменяется целиком при каждой смене списка,
// вьюпорт подгоняется под все видимые маркеры.
type BrowseMap struct {
	widget   repository.MapWidget
	logger   *zap.Logger
	onSelect func(domain.Listing)

	byMarker map[string]domain.Listing
	visitor  *domain.Position
	closed   bool
}

// NewBrowseMap - создание browse-карты. onSelect вызывается при тапе
// по маркеру заведения.
func NewBrowseMap(widget repository.MapWidget, onSelect func(domain.Listing), logger *zap.Logger) *BrowseMap {
	m := &BrowseMap{
		widget:   widget,
		logger:   logger,
		onSelect: onSelect,
		byMarker: make(map[string]domain.Listing),
	}
	widget.OnMarkerTap(m.handleMarkerTap)
	return m
}

// SetListings заменяет набор маркеров по новой коллекции.
// Заведения без координат на карту не попадают. Простейшая корректная
// стратегия: убрать все, поставить заново.
func (m *BrowseMap) SetListings(listings []domain.RankedListing) {
	if m.closed {
		return
	}

	for id := range m.byMarker {
		m.widget.RemoveMarker(id)
		delete(m.byMarker, id)
	}

	points := make([]domain.Position, 0, len(listings))
	for _, l := range listings {
		pos, ok := l.Coordinates()
		if !ok {
			continue
		}

		markerID := listingMarkerID(l.Listing)
		m.byMarker[markerID] = l.Listing
		m.widget.PlaceMarker(domain.Marker{
			ID:       markerID,
			Position: pos,
			Label:    l.Name,
			Kind:     domain.MarkerListing,
		})
		points = append(points, pos)
	}

	if m.visitor != nil {
		points = append(points, *m.visitor)
	}

	if box, ok := domain.NewBoundingBox(points); ok {
		m.widget.FitBounds(box, boundsPaddingPx)
	}

	m.logger.Debug("Browse markers replaced",
		zap.Int("total", len(listings)),
		zap.Int("on_map", len(m.byMarker)))
}

// SetVisitorPosition ставит или убирает особый маркер посетителя.
// При каждой смене позиции вьюпорт центрируется на ней.
func (m *BrowseMap) SetVisitorPosition(pos *domain.Position) {
	if m.closed {
		return
	}

	if pos == nil {
		if m.visitor != nil {
			m.widget.RemoveMarker(visitorMarkerID)
			m.visitor = nil
		}
		return
	}

	if m.visitor != nil && m.visitor.AlmostEqual(*pos) {
		return
	}

	p := *pos
	m.visitor = &p
	m.widget.PlaceMarker(domain.Marker{
		ID:       visitorMarkerID,
		Position: p,
		Kind:     domain.MarkerVisitor,
	})
	m.widget.SetViewport(p, visitorZoom)
}

// Close снимает все маркеры и подписки; карта демонтирована
func (m *BrowseMap) Close() {
	if m.closed {
		return
	}
	m.closed = true

	for id := range m.byMarker {
		m.widget.RemoveMarker(id)
	}
	if m.visitor != nil {
		m.widget.RemoveMarker(visitorMarkerID)
	}
	m.widget.OnMarkerTap(nil)
	m.byMarker = nil
	m.visitor = nil
}

func (m *BrowseMap) handleMarkerTap(markerID string) {
	if m.closed || m.onSelect == nil {
		return
	}
	if listing, ok := m.byMarker[markerID]; ok {
		m.onSelect(listing)
	}
}

func listingMarkerID(l domain.Listing) string {
	return fmt.Sprintf("listing:%s", l.ID)
}
