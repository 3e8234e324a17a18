package domain

import "math"

// Blast model parameters. These are tuning values for the visualization,
// not physical constants.
const (
	// ReferenceEnergyJoules is the energy at which the scale factor is 1 (1 PJ).
	ReferenceEnergyJoules = 1e15

	ThermalCoefficientKm  = 0.5
	PressureCoefficientKm = 1.2
	ShrapnelCoefficientKm = 2.0

	// MinSearchRadiusMeters and MaxSearchRadiusMeters bound the Overpass query scope.
	MinSearchRadiusMeters = 2000.0
	MaxSearchRadiusMeters = 15000.0
)

// BlastRadii holds the three damage radii in kilometres.
type BlastRadii struct {
	ThermalKm  float64
	PressureKm float64
	ShrapnelKm float64
}

// ComputeBlastRadii derives damage radii from kinetic energy in joules.
// Each radius scales with the cube root of energy. Energy must be positive.
func ComputeBlastRadii(energyJoules float64) BlastRadii {
	s := math.Cbrt(energyJoules / ReferenceEnergyJoules)
	return BlastRadii{
		ThermalKm:  ThermalCoefficientKm * s,
		PressureKm: PressureCoefficientKm * s,
		ShrapnelKm: ShrapnelCoefficientKm * s,
	}
}

// EffectiveSearchRadius converts the shrapnel radius to metres and clamps it
// to [MinSearchRadiusMeters, MaxSearchRadiusMeters].
func EffectiveSearchRadius(shrapnelKm float64) float64 {
	r := shrapnelKm * 1000
	return math.Max(MinSearchRadiusMeters, math.Min(r, MaxSearchRadiusMeters))
}
