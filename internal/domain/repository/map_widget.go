package repository

import "github.com/restaurant-discovery/internal/domain"

// MapWidget - абстракция slippy-map виджета. Виджет пассивен: всё его
// визуальное состояние задаётся контроллером, сам он источником
// авторитетных координат не является.
//
// Любой колбэк регистрируется не более чем одним подписчиком;
// nil снимает подписку.
type MapWidget interface {
	// PlaceMarker ставит маркер или перемещает существующий с тем же ID
	PlaceMarker(m domain.Marker)

	// RemoveMarker убирает маркер по ID
	RemoveMarker(id string)

	// SetViewport центрирует карту на точке с заданным зумом
	SetViewport(center domain.Position, zoom int)

	// FitBounds подгоняет вьюпорт под прямоугольник с отступом в пикселях
	FitBounds(b domain.BoundingBox, paddingPx int)

	// OnDragEnd вызывается после окончания перетаскивания маркера
	OnDragEnd(fn func(domain.Position))

	// OnTapMap вызывается при тапе по свободной области карты
	OnTapMap(fn func(domain.Position))

	// OnMarkerTap вызывается при тапе по маркеру
	OnMarkerTap(fn func(markerID string))
}
