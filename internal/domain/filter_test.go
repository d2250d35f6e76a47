package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/restaurant-discovery/internal/domain"
)

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:         uuid.New(),
			Name:       "Cafe Javas",
			City:       "Kampala",
			Address:    "Plot 5 Kampala Road",
			Categories: []string{"cafe", "breakfast"},
		},
		{
			ID:         uuid.New(),
			Name:       "Mediterraneo",
			City:       "Kampala",
			Address:    "Acacia Avenue",
			Categories: []string{"italian"},
		},
		{
			ID:         uuid.New(),
			Name:       "The Lawns",
			City:       "Entebbe",
			Address:    "Circular Road",
			Categories: []string{"grill", "african"},
		},
	}
}

func TestFilterCriteria_Matches(t *testing.T) {
	listings := sampleListings()

	t.Run("sentinel values disable predicates", func(t *testing.T) {
		c := domain.FilterCriteria{
			District: domain.AllDistricts,
			Category: domain.AllCategories,
		}
		for i := range listings {
			assert.True(t, c.Matches(&listings[i]))
		}
	})

	t.Run("district predicate", func(t *testing.T) {
		c := domain.FilterCriteria{District: "Entebbe"}

		result := domain.ApplyFilter(listings, c)
		assert.Len(t, result, 1)
		assert.Equal(t, "The Lawns", result[0].Name)
	})

	t.Run("category predicate matches any listed category", func(t *testing.T) {
		c := domain.FilterCriteria{Category: "breakfast"}

		result := domain.ApplyFilter(listings, c)
		assert.Len(t, result, 1)
		assert.Equal(t, "Cafe Javas", result[0].Name)
	})

	t.Run("query predicate is case-insensitive over name, city, address and categories", func(t *testing.T) {
		assert.Len(t, domain.ApplyFilter(listings, domain.FilterCriteria{Query: "MEDITERR"}), 1)
		assert.Len(t, domain.ApplyFilter(listings, domain.FilterCriteria{Query: "kampala"}), 2)
		assert.Len(t, domain.ApplyFilter(listings, domain.FilterCriteria{Query: "acacia"}), 1)
		assert.Len(t, domain.ApplyFilter(listings, domain.FilterCriteria{Query: "african"}), 1)
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		c := domain.FilterCriteria{
			District: "Kampala",
			Category: "italian",
			Query:    "acacia",
		}

		result := domain.ApplyFilter(listings, c)
		assert.Len(t, result, 1)
		assert.Equal(t, "Mediterraneo", result[0].Name)

		c.District = "Entebbe"
		assert.Empty(t, domain.ApplyFilter(listings, c))
	})

	t.Run("empty criteria keeps the full list in order", func(t *testing.T) {
		result := domain.ApplyFilter(listings, domain.FilterCriteria{})
		assert.Equal(t, listings, result)
	})
}

func TestNewBoundingBox(t *testing.T) {
	t.Run("no points", func(t *testing.T) {
		_, ok := domain.NewBoundingBox(nil)
		assert.False(t, ok)
	})

	t.Run("spans all points", func(t *testing.T) {
		box, ok := domain.NewBoundingBox([]domain.Position{
			{Lat: 0.31, Lng: 32.59},
			{Lat: 0.40, Lng: 32.70},
			{Lat: 0.05, Lng: 32.45},
		})
		assert.True(t, ok)
		assert.Equal(t, 0.05, box.MinLat)
		assert.Equal(t, 0.40, box.MaxLat)
		assert.Equal(t, 32.45, box.MinLng)
		assert.Equal(t, 32.70, box.MaxLng)

		center := box.Center()
		assert.InDelta(t, 0.225, center.Lat, 1e-9)
		assert.InDelta(t, 32.575, center.Lng, 1e-9)
	})
}

func TestPosition_AlmostEqual(t *testing.T) {
	p := domain.Position{Lat: 0.3187, Lng: 32.5840}

	assert.True(t, p.AlmostEqual(domain.Position{Lat: 0.3187, Lng: 32.5840}))
	assert.True(t, p.AlmostEqual(domain.Position{Lat: 0.3187 + 1e-7, Lng: 32.5840 - 1e-7}))
	assert.False(t, p.AlmostEqual(domain.Position{Lat: 0.3188, Lng: 32.5840}))
}
