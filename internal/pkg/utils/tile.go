package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/restaurant-discovery/internal/domain"
)

// TileCoord addresses a single slippy-map XYZ tile
type TileCoord struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

// TileXY converts a coordinate to slippy tile indices at the given zoom
func TileXY(lat, lng float64, zoom int) (x, y int) {
	n := float64(int(1) << uint(zoom))

	x = int(math.Floor((lng + 180.0) / 360.0 * n))

	latRad := lat * math.Pi / 180.0
	y = int(math.Floor((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n))

	// Clamp to the valid tile range at this zoom
	max := int(n) - 1
	if x < 0 {
		x = 0
	} else if x > max {
		x = max
	}
	if y < 0 {
		y = 0
	} else if y > max {
		y = max
	}
	return x, y
}

// TilesForBounds returns the tile set covering a bounding box at the given zoom,
// row by row from the north-west corner
func TilesForBounds(b domain.BoundingBox, zoom int) []TileCoord {
	minX, maxY := TileXY(b.MinLat, b.MinLng, zoom)
	maxX, minY := TileXY(b.MaxLat, b.MaxLng, zoom)

	tiles := make([]TileCoord, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tiles = append(tiles, TileCoord{Z: zoom, X: x, Y: y})
		}
	}
	return tiles
}

// TileURL expands an XYZ URL template ({z}/{x}/{y}) for one tile
func TileURL(template string, t TileCoord) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	)
	return r.Replace(template)
}
