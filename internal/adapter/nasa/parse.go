package nasa

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

// ErrMissingField is returned when a required feed field is absent.
var ErrMissingField = errors.New("missing field")

// NeoWs feed response types. Pointers distinguish absent fields from zero values.

type feedResponse struct {
	NearEarthObjects map[string][]neoObject `json:"near_earth_objects"`
}

type neoObject struct {
	ID                *string            `json:"id"`
	Name              *string            `json:"name"`
	Hazardous         *bool              `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter *estimatedDiameter `json:"estimated_diameter"`
	CloseApproachData []closeApproach    `json:"close_approach_data"`
}

type estimatedDiameter struct {
	Meters *struct {
		Min *flexFloat `json:"estimated_diameter_min"`
		Max *flexFloat `json:"estimated_diameter_max"`
	} `json:"meters"`
}

type closeApproach struct {
	RelativeVelocity *struct {
		KmPerSec *flexFloat `json:"kilometers_per_second"`
	} `json:"relative_velocity"`
	MissDistance *struct {
		Km *flexFloat `json:"kilometers"`
	} `json:"miss_distance"`
}

// flexFloat accepts a JSON number or a string holding one. NeoWs sends
// velocities and distances as strings. NaN and infinities are rejected.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("numeric string %q: not a finite number", s)
		}
		*f = flexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// parseFeed flattens a feed document into records, dates ascending and array
// order preserved within a date. Any missing field fails the whole document.
func parseFeed(body []byte) ([]domain.NearEarthObject, error) {
	var resp feedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if resp.NearEarthObjects == nil {
		return nil, fmt.Errorf("%w: near_earth_objects", ErrMissingField)
	}

	dates := make([]string, 0, len(resp.NearEarthObjects))
	for date := range resp.NearEarthObjects {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	out := make([]domain.NearEarthObject, 0)
	for _, date := range dates {
		for i, obj := range resp.NearEarthObjects[date] {
			neo, err := obj.toDomain(date)
			if err != nil {
				return nil, fmt.Errorf("near_earth_objects[%s][%d]: %w", date, i, err)
			}
			out = append(out, neo)
		}
	}
	return out, nil
}

func (o neoObject) toDomain(date string) (domain.NearEarthObject, error) {
	switch {
	case o.ID == nil:
		return domain.NearEarthObject{}, missing("id")
	case o.Name == nil:
		return domain.NearEarthObject{}, missing("name")
	case o.Hazardous == nil:
		return domain.NearEarthObject{}, missing("is_potentially_hazardous_asteroid")
	case o.EstimatedDiameter == nil || o.EstimatedDiameter.Meters == nil:
		return domain.NearEarthObject{}, missing("estimated_diameter.meters")
	case o.EstimatedDiameter.Meters.Min == nil:
		return domain.NearEarthObject{}, missing("estimated_diameter.meters.estimated_diameter_min")
	case o.EstimatedDiameter.Meters.Max == nil:
		return domain.NearEarthObject{}, missing("estimated_diameter.meters.estimated_diameter_max")
	case len(o.CloseApproachData) == 0:
		return domain.NearEarthObject{}, missing("close_approach_data[0]")
	}

	approach := o.CloseApproachData[0]
	if approach.RelativeVelocity == nil || approach.RelativeVelocity.KmPerSec == nil {
		return domain.NearEarthObject{}, missing("close_approach_data[0].relative_velocity.kilometers_per_second")
	}
	if approach.MissDistance == nil || approach.MissDistance.Km == nil {
		return domain.NearEarthObject{}, missing("close_approach_data[0].miss_distance.kilometers")
	}

	return domain.NearEarthObject{
		ID:                     *o.ID,
		Name:                   *o.Name,
		DiameterMinMeters:      float64(*o.EstimatedDiameter.Meters.Min),
		DiameterMaxMeters:      float64(*o.EstimatedDiameter.Meters.Max),
		VelocityKmPerSec:       float64(*approach.RelativeVelocity.KmPerSec),
		MissDistanceKm:         float64(*approach.MissDistance.Km),
		IsPotentiallyHazardous: *o.Hazardous,
		CloseApproachDate:      date,
	}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
