package mapview_test

import (
	"github.com/restaurant-discovery/internal/domain"
)

// fakeWidget записывает вызовы контроллера и позволяет тестам
// эмулировать взаимодействия пользователя с картой
type fakeWidget struct {
	markers map[string]domain.Marker

	viewportCenter *domain.Position
	viewportZoom   int
	fittedBounds   *domain.BoundingBox

	placeCalls    int
	removeCalls   int
	viewportCalls int

	onDragEnd   func(domain.Position)
	onTapMap    func(domain.Position)
	onMarkerTap func(string)
}

func newFakeWidget() *fakeWidget {
	return &fakeWidget{markers: make(map[string]domain.Marker)}
}

func (w *fakeWidget) PlaceMarker(m domain.Marker) {
	w.markers[m.ID] = m
	w.placeCalls++
}

func (w *fakeWidget) RemoveMarker(id string) {
	delete(w.markers, id)
	w.removeCalls++
}

func (w *fakeWidget) SetViewport(center domain.Position, zoom int) {
	w.viewportCenter = &center
	w.viewportZoom = zoom
	w.viewportCalls++
}

func (w *fakeWidget) FitBounds(b domain.BoundingBox, paddingPx int) {
	w.fittedBounds = &b
}

func (w *fakeWidget) OnDragEnd(fn func(domain.Position))  { w.onDragEnd = fn }
func (w *fakeWidget) OnTapMap(fn func(domain.Position))   { w.onTapMap = fn }
func (w *fakeWidget) OnMarkerTap(fn func(markerID string)) { w.onMarkerTap = fn }

func (w *fakeWidget) dragTo(pos domain.Position) {
	if w.onDragEnd != nil {
		w.onDragEnd(pos)
	}
}

func (w *fakeWidget) tapMap(pos domain.Position) {
	if w.onTapMap != nil {
		w.onTapMap(pos)
	}
}

func (w *fakeWidget) tapMarker(id string) {
	if w.onMarkerTap != nil {
		w.onMarkerTap(id)
	}
}
