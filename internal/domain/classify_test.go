package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kmPerDegreeAtEquator converts equatorial distance to degrees of longitude.
const kmPerDegreeAtEquator = EarthRadiusKm * math.Pi / 180

// elementEastOfOrigin places an element distanceKm east of (0, 0).
func elementEastOfOrigin(distanceKm float64, tags map[string]string) OSMElement {
	return OSMElement{Lat: 0, Lon: distanceKm / kmPerDegreeAtEquator, Tags: tags}
}

func TestClassifyAll_Fixture(t *testing.T) {
	elements := []OSMElement{
		elementEastOfOrigin(2, map[string]string{"amenity": "hospital", "name": "City Hospital"}),
		elementEastOfOrigin(4, map[string]string{"amenity": "college"}),
		elementEastOfOrigin(20, map[string]string{"landuse": "farmland"}),
		elementEastOfOrigin(8, map[string]string{"building": "warehouse"}),
	}

	items := ClassifyAll(elements, 0, 0)
	require.Len(t, items, 4)

	assert.Equal(t, ZoneThermal, items[0].Zone)
	assert.Equal(t, ZoneThermal, items[1].Zone)
	assert.Equal(t, ZoneShrapnel, items[2].Zone)
	assert.Equal(t, ZonePressure, items[3].Zone)

	assert.InDelta(t, 2.0, items[0].DistanceKm, 1e-6)
	assert.InDelta(t, 20.0, items[2].DistanceKm, 1e-6)

	assert.Equal(t, "City Hospital", items[0].Name)
	assert.Equal(t, UnnamedFeature, items[1].Name)
	assert.Equal(t, "Agricultural Land", items[2].Name)
	assert.Equal(t, "Warehouse", items[3].Name)

	counts := CountCategories(items)
	assert.Equal(t, CategoryCounts{Hospitals: 1, Schools: 0, Industrial: 1, Farmland: 1}, counts)
	assert.LessOrEqual(t, counts.Total(), len(items))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
		ok       bool
	}{
		{"amenity wins over landuse", map[string]string{"landuse": "industrial", "amenity": "police"}, "police", true},
		{"landuse wins over building", map[string]string{"building": "farm", "landuse": "farmyard"}, "farmyard", true},
		{"building only", map[string]string{"building": "factory"}, "factory", true},
		{"no category keys", map[string]string{"name": "Somewhere"}, "", false},
		{"empty tags", map[string]string{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Categorize(tt.tags)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		category string
		expected string
	}{
		{"name tag", map[string]string{"name": "Acil", "name:en": "Emergency"}, "hospital", "Acil"},
		{"english fallback", map[string]string{"name:en": "Central School", "name:tr": "Merkez Okulu"}, "school", "Central School"},
		{"turkish fallback", map[string]string{"name:tr": "Merkez Okulu"}, "school", "Merkez Okulu"},
		{"industrial default", nil, "industrial", "Industrial Area"},
		{"farmland default", nil, "farmland", "Agricultural Land"},
		{"farmyard default", nil, "farmyard", "Agricultural Land"},
		{"factory default", nil, "factory", "Factory"},
		{"warehouse default", nil, "warehouse", "Warehouse"},
		{"orchard default", nil, "orchard", "Orchard"},
		{"vineyard default", nil, "vineyard", "Vineyard"},
		{"unnamed", nil, "police", UnnamedFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveName(tt.tags, tt.category))
		})
	}
}

func TestZoneForDistance(t *testing.T) {
	tests := []struct {
		distance float64
		expected Zone
	}{
		{0, ZoneThermal},
		{4.999, ZoneThermal},
		{5, ZonePressure},
		{11.999, ZonePressure},
		{12, ZoneShrapnel},
		{500, ZoneShrapnel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ZoneForDistance(tt.distance), "distance %v", tt.distance)
	}
}

func TestClassify_DropsUnusableElements(t *testing.T) {
	_, ok := Classify(OSMElement{Lat: 1, Lon: 1}, 0, 0)
	assert.False(t, ok, "tagless element")

	_, ok = Classify(OSMElement{Lat: 1, Lon: 1, Tags: map[string]string{"highway": "primary"}}, 0, 0)
	assert.False(t, ok, "element without category keys")
}

func TestCountCategories(t *testing.T) {
	types := []string{
		"hospital", "clinic", "doctors",
		"school", "university", "kindergarten", "college",
		"industrial", "factory", "warehouse",
		"farm", "farmland", "farmyard",
		"fire_station", "police", "orchard", "vineyard",
	}
	items := make([]InfrastructureItem, 0, len(types))
	for _, typ := range types {
		items = append(items, InfrastructureItem{Type: typ})
	}

	counts := CountCategories(items)
	assert.Equal(t, 3, counts.Hospitals)
	assert.Equal(t, 3, counts.Schools, "college is not counted")
	assert.Equal(t, 3, counts.Industrial)
	assert.Equal(t, 3, counts.Farmland)
	assert.Equal(t, 12, counts.Total())
	assert.LessOrEqual(t, counts.Total(), len(items))
}
