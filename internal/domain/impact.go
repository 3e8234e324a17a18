package domain

// Zone is a qualitative damage band assigned by distance from the impact point.
type Zone string

const (
	ZoneThermal  Zone = "thermal"
	ZonePressure Zone = "pressure"
	ZoneShrapnel Zone = "shrapnel"
)

// Zone distance thresholds in kilometres.
const (
	ThermalZoneMaxKm  = 5.0
	PressureZoneMaxKm = 12.0
)

// InfrastructureItem is one classified OSM feature near the impact.
type InfrastructureItem struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distanceKm"`
	Zone       Zone    `json:"zone"`
}

// ImpactReport summarizes infrastructure exposed to a hypothetical impact.
type ImpactReport struct {
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	KineticEnergyJoules float64 `json:"kineticEnergyJoules"`
	ThermalRadiusKm     float64 `json:"thermalRadiusKm"`
	PressureRadiusKm    float64 `json:"pressureRadiusKm"`
	ShrapnelRadiusKm    float64 `json:"shrapnelRadiusKm"`
	HospitalsAffected   int     `json:"hospitalsAffected"`
	SchoolsAffected     int     `json:"schoolsAffected"`
	RoadsAffected       int     `json:"roadsAffected"` // reserved, never populated
	IndustrialAffected  int     `json:"industrialAffected"`
	FarmlandAffected    int     `json:"farmlandAffected"`
	EstimatedPopulation int64   `json:"estimatedPopulation"`

	Infrastructure []InfrastructureItem `json:"infrastructure"`
}

// NewImpactReport creates a report for the given impact with its blast radii
// filled in and an empty infrastructure list.
func NewImpactReport(lat, lng, energyJoules float64) ImpactReport {
	radii := ComputeBlastRadii(energyJoules)
	return ImpactReport{
		Latitude:            lat,
		Longitude:           lng,
		KineticEnergyJoules: energyJoules,
		ThermalRadiusKm:     radii.ThermalKm,
		PressureRadiusKm:    radii.PressureKm,
		ShrapnelRadiusKm:    radii.ShrapnelKm,
		Infrastructure:      []InfrastructureItem{},
	}
}

// WithInfrastructure returns a copy of the report holding items and the
// category counts derived from them.
func (r ImpactReport) WithInfrastructure(items []InfrastructureItem) ImpactReport {
	if items == nil {
		items = []InfrastructureItem{}
	}
	counts := CountCategories(items)
	r.HospitalsAffected = counts.Hospitals
	r.SchoolsAffected = counts.Schools
	r.IndustrialAffected = counts.Industrial
	r.FarmlandAffected = counts.Farmland
	r.Infrastructure = items
	return r
}
