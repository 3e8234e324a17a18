package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const radiusTolerance = 1e-9

func TestComputeBlastRadii(t *testing.T) {
	tests := []struct {
		name     string
		energy   float64
		thermal  float64
		pressure float64
		shrapnel float64
	}{
		{"one petajoule", 1e15, 0.5, 1.2, 2.0},
		{"eight petajoules", 8e15, 1.0, 2.4, 4.0},
		{"one exajoule", 1e18, 5.0, 12.0, 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeBlastRadii(tt.energy)
			assert.InDelta(t, tt.thermal, r.ThermalKm, radiusTolerance)
			assert.InDelta(t, tt.pressure, r.PressureKm, radiusTolerance)
			assert.InDelta(t, tt.shrapnel, r.ShrapnelKm, radiusTolerance)
		})
	}
}

func TestComputeBlastRadii_StrictlyIncreasing(t *testing.T) {
	for _, e := range []float64{1, 1e3, 1e9, 4.2e14, 1e15, 3.3e17, 1e21, 1e24} {
		r := ComputeBlastRadii(e)
		assert.Greater(t, r.ThermalKm, 0.0, "energy %g", e)
		assert.Less(t, r.ThermalKm, r.PressureKm, "energy %g", e)
		assert.Less(t, r.PressureKm, r.ShrapnelKm, "energy %g", e)
	}
}

func TestComputeBlastRadii_CubeRootScaling(t *testing.T) {
	// Multiplying energy by 27 must triple every radius.
	for _, e := range []float64{1e9, 5e13, 1e15, 7.5e16} {
		base := ComputeBlastRadii(e)
		scaled := ComputeBlastRadii(e * 27)
		assert.InDelta(t, 3.0, scaled.ThermalKm/base.ThermalKm, 1e-9)
		assert.InDelta(t, 3.0, scaled.PressureKm/base.PressureKm, 1e-9)
		assert.InDelta(t, 3.0, scaled.ShrapnelKm/base.ShrapnelKm, 1e-9)
	}
}

func TestEffectiveSearchRadius(t *testing.T) {
	tests := []struct {
		name     string
		energy   float64
		expected float64
	}{
		{"tiny impact clamps to minimum", 1e9, 2000},
		{"huge impact clamps to maximum", 1e21, 15000},
		{"mid-range passes through", 8e15, 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeBlastRadii(tt.energy)
			assert.InDelta(t, tt.expected, EffectiveSearchRadius(r.ShrapnelKm), 1e-6)
		})
	}
}

func TestEffectiveSearchRadius_AlwaysInBounds(t *testing.T) {
	for exp := -3.0; exp <= 30; exp += 0.5 {
		e := math.Pow(10, exp)
		got := EffectiveSearchRadius(ComputeBlastRadii(e).ShrapnelKm)
		assert.GreaterOrEqual(t, got, MinSearchRadiusMeters, "energy %g", e)
		assert.LessOrEqual(t, got, MaxSearchRadiusMeters, "energy %g", e)
	}
}
