package mapview_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/mapview"
)

func f64Ptr(v float64) *float64 { return &v }

func rankedListing(name string, lat, lng *float64) domain.RankedListing {
	return domain.RankedListing{
		Listing: domain.Listing{
			ID:   uuid.New(),
			Name: name,
			Lat:  lat,
			Lng:  lng,
		},
	}
}

func TestBrowseMap_SetListings(t *testing.T) {
	logger := zap.NewNop()

	t.Run("places a marker per listing with coordinates and fits bounds", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		m.SetListings([]domain.RankedListing{
			rankedListing("A", f64Ptr(0.31), f64Ptr(32.59)),
			rankedListing("B", f64Ptr(0.40), f64Ptr(32.70)),
			rankedListing("C", nil, nil),
		})

		assert.Len(t, widget.markers, 2)
		assert.NotNil(t, widget.fittedBounds)
		assert.InDelta(t, 0.31, widget.fittedBounds.MinLat, 1e-9)
		assert.InDelta(t, 0.40, widget.fittedBounds.MaxLat, 1e-9)
	})

	t.Run("replaces the whole collection on update", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		m.SetListings([]domain.RankedListing{
			rankedListing("A", f64Ptr(0.31), f64Ptr(32.59)),
			rankedListing("B", f64Ptr(0.40), f64Ptr(32.70)),
		})
		m.SetListings([]domain.RankedListing{
			rankedListing("D", f64Ptr(0.05), f64Ptr(32.46)),
		})

		assert.Len(t, widget.markers, 1)
		for _, marker := range widget.markers {
			assert.Equal(t, "D", marker.Label)
		}
	})

	t.Run("empty collection clears the map", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		m.SetListings([]domain.RankedListing{
			rankedListing("A", f64Ptr(0.31), f64Ptr(32.59)),
		})
		m.SetListings(nil)

		assert.Empty(t, widget.markers)
	})
}

func TestBrowseMap_MarkerTap(t *testing.T) {
	logger := zap.NewNop()

	var selected *domain.Listing
	widget := newFakeWidget()
	m := mapview.NewBrowseMap(widget, func(l domain.Listing) {
		selected = &l
	}, logger)

	a := rankedListing("A", f64Ptr(0.31), f64Ptr(32.59))
	m.SetListings([]domain.RankedListing{a})

	widget.tapMarker(fmt.Sprintf("listing:%s", a.ID))

	assert.NotNil(t, selected)
	assert.Equal(t, "A", selected.Name)

	// Тап по неизвестному маркеру игнорируется
	selected = nil
	widget.tapMarker("listing:unknown")
	assert.Nil(t, selected)
}

func TestBrowseMap_SetVisitorPosition(t *testing.T) {
	logger := zap.NewNop()

	t.Run("distinct visitor marker recenters the viewport", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		pos := domain.Position{Lat: 0.30, Lng: 32.58}
		m.SetVisitorPosition(&pos)

		marker, ok := widget.markers["visitor"]
		assert.True(t, ok)
		assert.Equal(t, domain.MarkerVisitor, marker.Kind)
		assert.NotNil(t, widget.viewportCenter)
		assert.InDelta(t, 0.30, widget.viewportCenter.Lat, 1e-9)
	})

	t.Run("near-identical update is suppressed", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		pos := domain.Position{Lat: 0.30, Lng: 32.58}
		m.SetVisitorPosition(&pos)
		callsAfterFirst := widget.viewportCalls

		nudged := domain.Position{Lat: 0.30 + 1e-8, Lng: 32.58}
		m.SetVisitorPosition(&nudged)

		assert.Equal(t, callsAfterFirst, widget.viewportCalls)
	})

	t.Run("nil clears the visitor marker", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		pos := domain.Position{Lat: 0.30, Lng: 32.58}
		m.SetVisitorPosition(&pos)
		m.SetVisitorPosition(nil)

		_, ok := widget.markers["visitor"]
		assert.False(t, ok)
	})

	t.Run("visitor point participates in bounds fitting", func(t *testing.T) {
		widget := newFakeWidget()
		m := mapview.NewBrowseMap(widget, nil, logger)

		pos := domain.Position{Lat: 0.10, Lng: 32.40}
		m.SetVisitorPosition(&pos)
		m.SetListings([]domain.RankedListing{
			rankedListing("A", f64Ptr(0.31), f64Ptr(32.59)),
		})

		assert.NotNil(t, widget.fittedBounds)
		assert.InDelta(t, 0.10, widget.fittedBounds.MinLat, 1e-9)
		assert.InDelta(t, 0.31, widget.fittedBounds.MaxLat, 1e-9)
	})
}

func TestBrowseMap_Close(t *testing.T) {
	widget := newFakeWidget()

	var selected bool
	m := mapview.NewBrowseMap(widget, func(domain.Listing) { selected = true }, zap.NewNop())

	a := rankedListing("A", f64Ptr(0.31), f64Ptr(32.59))
	m.SetListings([]domain.RankedListing{a})
	m.Close()

	assert.Empty(t, widget.markers)
	assert.Nil(t, widget.onMarkerTap)

	// Дальнейшие мутации после Close игнорируются
	m.SetListings([]domain.RankedListing{a})
	assert.Empty(t, widget.markers)
	assert.False(t, selected)
}
