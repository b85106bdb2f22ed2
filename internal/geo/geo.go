// Package geo provides the angle and coordinate math used by the runway
// classifier: heading normalization, great-circle bearing/distance, and a
// flat-earth East/North projection valid within tens of NM of a threshold.
package geo

import "math"

const (
	// EarthRadiusM is the mean Earth radius in meters
	EarthRadiusM = 6371000.0
	// EarthRadiusNM is the mean Earth radius in nautical miles
	EarthRadiusNM = 3440.065
	// MetersPerNM converts nautical miles to meters
	MetersPerNM = 1852.0
)

// MetersToNM converts meters to nautical miles
func MetersToNM(m float64) float64 {
	return m / MetersPerNM
}

// NMToMeters converts nautical miles to meters
func NMToMeters(nm float64) float64 {
	return nm * MetersPerNM
}

// Wrap180 maps any angle in degrees to the half-open interval (-180, +180].
// Exactly +180 stays +180, -180 maps to +180.
func Wrap180(deg float64) float64 {
	x := math.Mod(deg+180.0, 360.0)
	if x <= 0 {
		x += 360.0
	}
	return x - 180.0
}

// AngDiffDeg returns the smallest absolute angular difference in degrees
// between headings a and b. Result is in [0, 180] and symmetric in a, b.
func AngDiffDeg(a, b float64) float64 {
	return math.Abs(Wrap180(a - b))
}

// BearingDeg returns the initial great-circle bearing from point 1 to
// point 2 in degrees true, normalized to [0, 360). Coincident points give
// a degenerate bearing of 0.
func BearingDeg(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dlam := (lon2 - lon1) * math.Pi / 180.0

	y := math.Sin(dlam) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dlam)
	th := math.Atan2(y, x) * 180.0 / math.Pi

	return math.Mod(th+360.0, 360.0)
}

// HaversineNM returns the great-circle distance between two points in
// nautical miles.
func HaversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dphi := phi2 - phi1
	dlam := (lon2 - lon1) * math.Pi / 180.0

	a := math.Pow(math.Sin(dphi/2.0), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dlam/2.0), 2)
	return 2.0 * EarthRadiusNM * math.Asin(math.Sqrt(a))
}

// ENFromThreshold converts a geodetic point to local East/North meters
// relative to a runway threshold using an equirectangular approximation.
// Accuracy degrades with distance from the threshold and near the poles;
// it is intended for terminal-area ranges only.
func ENFromThreshold(lat, lon, latThr, lonThr float64) (eastM, northM float64) {
	phi0 := latThr * math.Pi / 180.0
	dphi := (lat - latThr) * math.Pi / 180.0
	dlam := (lon - lonThr) * math.Pi / 180.0

	northM = dphi * EarthRadiusM
	eastM = dlam * math.Cos(phi0) * EarthRadiusM
	return eastM, northM
}

// RunwayUnitVectors returns the along-centerline and right-lateral unit
// vectors for a runway course in the local East/North frame. Heading
// convention: 0° = +North, 90° = +East. The lateral vector is the along
// vector rotated -90°, so it points to the right of the landing direction.
func RunwayUnitVectors(courseDeg float64) (alongE, alongN, rightE, rightN float64) {
	th := courseDeg * math.Pi / 180.0
	alongE = math.Sin(th)
	alongN = math.Cos(th)
	rightE = math.Cos(th)
	rightN = -math.Sin(th)
	return alongE, alongN, rightE, rightN
}
