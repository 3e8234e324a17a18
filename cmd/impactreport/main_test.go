package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{"elements": [
  {"type": "node", "id": 1, "lat": 41.0100, "lon": 28.9784, "tags": {"amenity": "hospital", "name": "Cerrahpaşa"}},
  {"type": "way", "id": 2, "center": {"lat": 41.0600, "lon": 28.9784}, "tags": {"landuse": "industrial"}},
  {"type": "node", "id": 3, "lat": 41.0200, "lon": 28.9784}
]}`

func TestRun_FromElementsFile(t *testing.T) {
	dir := t.TempDir()
	elements := filepath.Join(dir, "overpass.json")
	out := filepath.Join(dir, "out", "report.json")
	require.NoError(t, os.WriteFile(elements, []byte(fixture), 0o600))

	err := run([]string{"--lat", "41.0082", "--lng", "28.9784", "--energy", "8e15", "--elements", elements, "--out", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var report domain.ImpactReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.InDelta(t, 4.0, report.ShrapnelRadiusKm, 1e-12)
	require.Len(t, report.Infrastructure, 2)
	assert.Equal(t, 1, report.HospitalsAffected)
	assert.Equal(t, 1, report.IndustrialAffected)
	assert.Equal(t, domain.ZoneThermal, report.Infrastructure[0].Zone)
	assert.Equal(t, "Industrial Area", report.Infrastructure[1].Name)
}

func TestRun_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing energy", []string{"--lat", "1", "--lng", "1"}},
		{"bad latitude", []string{"--lat", "95", "--lng", "1", "--energy", "1e15"}},
		{"zero energy", []string{"--lat", "1", "--lng", "1", "--energy", "0"}},
		{"nan energy", []string{"--lat", "1", "--lng", "1", "--energy", "NaN"}},
		{"infinite energy", []string{"--lat", "1", "--lng", "1", "--energy", "+Inf"}},
		{"missing elements file", []string{"--lat", "1", "--lng", "1", "--energy", "1e15", "--elements", "does-not-exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(tt.args))
		})
	}
}
