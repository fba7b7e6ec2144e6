package geocode

import "math"

const (
	earthRadiusMiles = 3958.8
	degToRad         = math.Pi / 180
)

// DistanceMiles is the great-circle distance between two places.
func DistanceMiles(a, b Place) float64 {
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*degToRad)*math.Cos(b.Lat*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(s)))
}
