// Package domain models near-Earth objects and the infrastructure impact reports
// built around a hypothetical asteroid strike.
//
// # Data Sources
//
// NEO records come from NASA's Near Earth Object Web Service (NeoWs) feed
// endpoint, which groups objects by close-approach date. Infrastructure comes
// from OpenStreetMap via the Overpass API; each returned node or way is reduced
// to an [OSMElement] before classification.
//
// # Blast Model
//
// Damage radii scale with the cube root of kinetic energy, using one petajoule
// as the unit scale:
//
//	s        = (E / 1e15)^(1/3)
//	thermal  = 0.5 * s km
//	pressure = 1.2 * s km
//	shrapnel = 2.0 * s km
//
// The coefficients are design parameters for visualization, not physical
// constants. See [ComputeBlastRadii].
//
// The Overpass search radius is the shrapnel radius clamped to 2–15 km. See
// [EffectiveSearchRadius].
//
// # Classification
//
// OSM tags map to a category by the first present key of amenity, landuse,
// building. Zones use absolute distance bands that do not depend on energy:
//
//	< 5 km   thermal
//	< 12 km  pressure
//	else     shrapnel
//
// Four categories are counted in the report. "college" is returned by the
// Overpass query but is not counted as a school, and emergency services,
// orchards and vineyards are listed without being counted.
package domain
