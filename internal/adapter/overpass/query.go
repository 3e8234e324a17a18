package overpass

import (
	"strconv"
	"strings"
)

// selectors are the feature filters sent to Overpass, in query order. Each is
// scoped by an around filter when rendered.
var selectors = []string{
	`node["amenity"~"hospital|clinic|doctors"]`,
	`way["amenity"~"hospital|clinic"]`,
	`node["amenity"~"school|university|college|kindergarten"]`,
	`way["amenity"~"school|university"]`,
	`node["amenity"~"fire_station|police"]`,
	`node["landuse"="industrial"]`,
	`way["landuse"="industrial"]`,
	`node["building"~"industrial|warehouse|factory"]`,
	`way["building"~"industrial|warehouse|factory"]`,
	`way["landuse"~"farmland|farmyard|orchard|vineyard"]`,
	`node["landuse"~"farmland|farm"]`,
	`way["building"="farm"]`,
}

// BuildQuery renders the Overpass QL union for every selector within
// radiusMeters of (lat, lng). Ways are reported with their center coordinate.
func BuildQuery(lat, lng float64, radiusMeters int) string {
	around := "(around:" + strconv.Itoa(radiusMeters) + "," + formatCoord(lat) + "," + formatCoord(lng) + ");"

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, sel := range selectors {
		b.WriteString(sel)
		b.WriteString(around)
	}
	b.WriteString(");out center;")
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
