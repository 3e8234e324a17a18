package domain

import (
	"context"
	"encoding/json"
)

// NearEarthObject is one close approach from the NeoWs feed.
type NearEarthObject struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	DiameterMinMeters      float64 `json:"diameterMinMeters"`
	DiameterMaxMeters      float64 `json:"diameterMaxMeters"`
	VelocityKmPerSec       float64 `json:"velocityKmPerSec"`
	MissDistanceKm         float64 `json:"missDistanceKm"`
	IsPotentiallyHazardous bool    `json:"isPotentiallyHazardous"`
	CloseApproachDate      string  `json:"closeApproachDate"` // YYYY-MM-DD
}

// AverageDiameterMeters is the midpoint of the estimated diameter bounds.
func (n NearEarthObject) AverageDiameterMeters() float64 {
	return (n.DiameterMinMeters + n.DiameterMaxMeters) / 2
}

// MarshalJSON adds the derived average diameter and the legacy
// "potentiallyHazardous" alias read by existing frontends.
func (n NearEarthObject) MarshalJSON() ([]byte, error) {
	type plain NearEarthObject
	return json.Marshal(struct {
		plain
		PotentiallyHazardous  bool    `json:"potentiallyHazardous"`
		AverageDiameterMeters float64 `json:"averageDiameterMeters"`
	}{
		plain:                 plain(n),
		PotentiallyHazardous:  n.IsPotentiallyHazardous,
		AverageDiameterMeters: n.AverageDiameterMeters(),
	})
}

// FeedSource fetches NEO records for an inclusive range of YYYY-MM-DD dates.
type FeedSource interface {
	FetchFeed(ctx context.Context, startDate, endDate string) ([]NearEarthObject, error)
}
