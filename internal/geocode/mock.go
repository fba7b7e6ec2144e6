package geocode

import (
	"context"
	"hash/fnv"
	"strings"
)

// MockGeocoder places every query at a stable pseudo-random point near
// Center, within roughly SpreadDeg degrees. Used when no geocoder URL is set.
type MockGeocoder struct {
	CenterLat float64
	CenterLon float64
	SpreadDeg float64
}

func (m MockGeocoder) Geocode(_ context.Context, query string) (Place, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Place{}, ErrNotFound
	}
	f := fnv.New64a()
	_, _ = f.Write([]byte(q))
	h := f.Sum64()
	spread := m.SpreadDeg
	if spread <= 0 {
		spread = 0.5
	}
	dLat := (float64(h&0xffff)/0xffff*2 - 1) * spread
	dLon := (float64((h>>16)&0xffff)/0xffff*2 - 1) * spread
	return Place{
		Lat:         m.CenterLat + dLat,
		Lon:         m.CenterLon + dLon,
		DisplayName: query,
		Confidence:  0.5,
	}, nil
}
