package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearEarthObject_AverageDiameter(t *testing.T) {
	neo := NearEarthObject{DiameterMinMeters: 100, DiameterMaxMeters: 250}
	assert.Equal(t, 175.0, neo.AverageDiameterMeters())
}

func TestNearEarthObject_MarshalJSON(t *testing.T) {
	neo := NearEarthObject{
		ID:                     "3542519",
		Name:                   "(2010 PK9)",
		DiameterMinMeters:      118.8,
		DiameterMaxMeters:      265.6,
		VelocityKmPerSec:       14.25,
		MissDistanceKm:         7_482_011.3,
		IsPotentiallyHazardous: true,
		CloseApproachDate:      "2026-10-15",
	}

	data, err := json.Marshal(neo)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "3542519", fields["id"])
	assert.Equal(t, "(2010 PK9)", fields["name"])
	assert.Equal(t, 118.8, fields["diameterMinMeters"])
	assert.Equal(t, 265.6, fields["diameterMaxMeters"])
	assert.Equal(t, 14.25, fields["velocityKmPerSec"])
	assert.Equal(t, 7_482_011.3, fields["missDistanceKm"])
	assert.Equal(t, true, fields["isPotentiallyHazardous"])
	assert.Equal(t, true, fields["potentiallyHazardous"])
	assert.Equal(t, "2026-10-15", fields["closeApproachDate"])
	assert.InDelta(t, 192.2, fields["averageDiameterMeters"], 1e-9)
}
