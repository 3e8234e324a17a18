package overpass

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

// ErrDecode is returned when the response envelope is not valid JSON.
var ErrDecode = errors.New("decode overpass response")

// Overpass API response types. Elements stay raw so one bad element does not
// fail the whole document.

type response struct {
	Elements []json.RawMessage `json:"elements"`
}

type element struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type center struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// ParseElements decodes an Overpass JSON document. Only a malformed envelope
// is an error; elements that fail to decode, lack a coordinate, or carry no
// tags are skipped. The returned count is the number of skipped elements.
func ParseElements(body []byte) ([]domain.OSMElement, int, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	out := make([]domain.OSMElement, 0, len(resp.Elements))
	skipped := 0
	for _, raw := range resp.Elements {
		el, ok := decodeElement(raw)
		if !ok {
			skipped++
			continue
		}
		out = append(out, el)
	}
	return out, skipped, nil
}

func decodeElement(raw json.RawMessage) (domain.OSMElement, bool) {
	var e element
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.OSMElement{}, false
	}
	if len(e.Tags) == 0 {
		return domain.OSMElement{}, false
	}

	var lat, lon float64
	switch {
	case e.Center != nil && e.Center.Lat != nil && e.Center.Lon != nil:
		lat, lon = *e.Center.Lat, *e.Center.Lon
	case e.Lat != nil && e.Lon != nil:
		lat, lon = *e.Lat, *e.Lon
	default:
		return domain.OSMElement{}, false
	}

	return domain.OSMElement{
		ID:   e.ID,
		Type: e.Type,
		Lat:  lat,
		Lon:  lon,
		Tags: e.Tags,
	}, true
}
