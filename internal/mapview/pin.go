package mapview

import (
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
)

const (
	pinMarkerID = "pin"
	pinZoom     = 16
)

// PinMap - карта с одним перетаскиваемым пином. Все мутации координаты
// проходят через единственный сеттер с порогом изменения CoordEpsilon:
// рендеринг нового состояния сам по себе мутацией не является, поэтому
// петля «drag -> state -> render -> drag» структурно невозможна.
type PinMap struct {
	widget   repository.MapWidget
	logger   *zap.Logger
	onChange func(domain.Position)

	pin    domain.PinState
	closed bool
}

// NewPinMap - создание карты с редактируемым пином. initial задаёт
// стартовую координату; onChange вызывается при каждой принятой мутации.
func NewPinMap(
	widget repository.MapWidget,
	initial domain.Position,
	onChange func(domain.Position),
	logger *zap.Logger,
) *PinMap {
	m := &PinMap{
		widget:   widget,
		logger:   logger,
		onChange: onChange,
		pin: domain.PinState{
			Position: initial,
			Source:   domain.PinSourceExternal,
		},
	}

	widget.PlaceMarker(m.pinMarker())
	widget.SetViewport(initial, pinZoom)
	widget.OnDragEnd(func(pos domain.Position) {
		m.apply(pos, domain.PinSourceDrag)
	})
	widget.OnTapMap(func(pos domain.Position) {
		m.apply(pos, domain.PinSourceTap)
	})

	return m
}

// SetPosition принимает внешнюю координату (геокодер, пересев пропса).
// Значение в пределах эпсилона от текущего игнорируется - это гасит
// петлю, в которой рендер нового состояния порождает новое «изменение».
func (m *PinMap) SetPosition(pos domain.Position) {
	m.apply(pos, domain.PinSourceExternal)
}

// Pin возвращает авторитетное состояние пина
func (m *PinMap) Pin() domain.PinState {
	return m.pin
}

// Close снимает пин и подписки
func (m *PinMap) Close() {
	if m.closed {
		return
	}
	m.closed = true

	m.widget.RemoveMarker(pinMarkerID)
	m.widget.OnDragEnd(nil)
	m.widget.OnTapMap(nil)
}

// apply - единственная точка мутации PinState
func (m *PinMap) apply(pos domain.Position, source domain.PinSource) {
	if m.closed {
		return
	}
	if m.pin.AlmostEqual(pos) {
		return
	}

	m.pin = domain.PinState{Position: pos, Source: source}
	m.widget.PlaceMarker(m.pinMarker())
	if source == domain.PinSourceExternal || source == domain.PinSourceGeocode {
		// Интерактивные мутации вьюпорт не дёргают: пользователь уже
		// смотрит туда, куда тапнул или перетащил
		m.widget.SetViewport(pos, pinZoom)
	}

	m.logger.Debug("Pin moved",
		zap.Float64("lat", pos.Lat),
		zap.Float64("lng", pos.Lng),
		zap.String("source", string(source)))

	if m.onChange != nil {
		m.onChange(pos)
	}
}

func (m *PinMap) pinMarker() domain.Marker {
	return domain.Marker{
		ID:        pinMarkerID,
		Position:  m.pin.Position,
		Kind:      domain.MarkerPin,
		Draggable: true,
	}
}
