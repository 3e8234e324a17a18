package domain

// OSMElement is an Overpass node or way reduced to a single coordinate and its tags.
type OSMElement struct {
	ID   int64
	Type string // "node" or "way"
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// UnnamedFeature is the name given to features with no name tag and no
// category-specific default.
const UnnamedFeature = "Unnamed"

var (
	// categoryKeys are checked in order; the first present key supplies the category.
	categoryKeys = []string{"amenity", "landuse", "building"}

	// nameKeys are checked in order; the first present key supplies the name.
	nameKeys = []string{"name", "name:en", "name:tr"}

	defaultNames = map[string]string{
		"industrial": "Industrial Area",
		"farmland":   "Agricultural Land",
		"farmyard":   "Agricultural Land",
		"factory":    "Factory",
		"warehouse":  "Warehouse",
		"orchard":    "Orchard",
		"vineyard":   "Vineyard",
	}
)

// Categorize returns the feature category from OSM tags. ok is false when
// none of amenity, landuse or building is present.
func Categorize(tags map[string]string) (category string, ok bool) {
	for _, k := range categoryKeys {
		if v, present := tags[k]; present {
			return v, true
		}
	}
	return "", false
}

// ResolveName picks a display name from tags, falling back to a default
// derived from the category.
func ResolveName(tags map[string]string, category string) string {
	for _, k := range nameKeys {
		if v, present := tags[k]; present {
			return v
		}
	}
	if name, ok := defaultNames[category]; ok {
		return name
	}
	return UnnamedFeature
}

// ZoneForDistance assigns a damage zone from distance alone:
//   - < 5 km thermal
//   - < 12 km pressure
//   - otherwise shrapnel
func ZoneForDistance(distanceKm float64) Zone {
	switch {
	case distanceKm < ThermalZoneMaxKm:
		return ZoneThermal
	case distanceKm < PressureZoneMaxKm:
		return ZonePressure
	default:
		return ZoneShrapnel
	}
}

// Classify turns an element into an InfrastructureItem relative to the impact
// point. ok is false when the element carries no usable category.
func Classify(el OSMElement, impactLat, impactLng float64) (InfrastructureItem, bool) {
	if el.Tags == nil {
		return InfrastructureItem{}, false
	}
	category, ok := Categorize(el.Tags)
	if !ok {
		return InfrastructureItem{}, false
	}

	distance := HaversineKm(impactLat, impactLng, el.Lat, el.Lon)
	return InfrastructureItem{
		Type:       category,
		Name:       ResolveName(el.Tags, category),
		Lat:        el.Lat,
		Lng:        el.Lon,
		DistanceKm: distance,
		Zone:       ZoneForDistance(distance),
	}, true
}

// ClassifyAll classifies every element, dropping the unusable ones.
func ClassifyAll(elements []OSMElement, impactLat, impactLng float64) []InfrastructureItem {
	items := make([]InfrastructureItem, 0, len(elements))
	for _, el := range elements {
		if item, ok := Classify(el, impactLat, impactLng); ok {
			items = append(items, item)
		}
	}
	return items
}

// CategoryCounts are the per-category totals reported in an ImpactReport.
type CategoryCounts struct {
	Hospitals  int
	Schools    int
	Industrial int
	Farmland   int
}

// Total is the sum of all counters.
func (c CategoryCounts) Total() int {
	return c.Hospitals + c.Schools + c.Industrial + c.Farmland
}

// CountCategories tallies items into the four reported counters. Each item
// increments at most one counter. "college" is deliberately not a school here
// even though the Overpass query requests it.
func CountCategories(items []InfrastructureItem) CategoryCounts {
	var c CategoryCounts
	for _, item := range items {
		switch item.Type {
		case "hospital", "clinic", "doctors":
			c.Hospitals++
		case "school", "university", "kindergarten":
			c.Schools++
		case "industrial", "factory", "warehouse":
			c.Industrial++
		case "farm", "farmland", "farmyard":
			c.Farmland++
		}
	}
	return c
}
