package domain

import "math"

// CoordEpsilon - порог в градусах, ниже которого две координаты считаются
// одинаковыми (~0.1 м). Используется для подавления петель обновлений карты.
const CoordEpsilon = 1e-6

// Position - географическая точка (фикс GPS, результат геокодирования
// или координата перетащенного пина)
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AlmostEqual сравнивает две точки с допуском CoordEpsilon
func (p Position) AlmostEqual(other Position) bool {
	return math.Abs(p.Lat-other.Lat) < CoordEpsilon &&
		math.Abs(p.Lng-other.Lng) < CoordEpsilon
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// NewBoundingBox строит минимальный прямоугольник вокруг набора точек.
// Возвращает false если точек нет.
func NewBoundingBox(points []Position) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}

	box := BoundingBox{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		box.Extend(p)
	}
	return box, true
}

// Extend расширяет прямоугольник так, чтобы он включал точку
func (b *BoundingBox) Extend(p Position) {
	b.MinLat = math.Min(b.MinLat, p.Lat)
	b.MaxLat = math.Max(b.MaxLat, p.Lat)
	b.MinLng = math.Min(b.MinLng, p.Lng)
	b.MaxLng = math.Max(b.MaxLng, p.Lng)
}

// Center возвращает центр прямоугольника
func (b BoundingBox) Center() Position {
	return Position{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}
