package domain

// PinSource - источник последней мутации координаты пина.
// Каждая мутация обязана фиксировать источник: правило разрешения
// конфликтов различает интерактивные и внешние обновления.
type PinSource string

const (
	PinSourceDrag     PinSource = "drag"
	PinSourceTap      PinSource = "tap"
	PinSourceGeocode  PinSource = "geocode"
	PinSourceExternal PinSource = "external"
)

// PinState - единственное авторитетное значение координаты
// редактируемого пина. Живёт вместе с картой, на которой смонтирован.
type PinState struct {
	Position
	Source PinSource `json:"source"`
}
