package domain

// MarkerKind различает визуальные типы маркеров на карте
type MarkerKind string

const (
	MarkerListing MarkerKind = "listing"
	MarkerVisitor MarkerKind = "visitor"
	MarkerPin     MarkerKind = "pin"
)

// Marker - маркер, которым контроллер карты управляет через виджет.
// ID стабилен в пределах жизни контроллера.
type Marker struct {
	ID        string     `json:"id"`
	Position  Position   `json:"position"`
	Label     string     `json:"label,omitempty"`
	Kind      MarkerKind `json:"kind"`
	Draggable bool       `json:"draggable"`
}
