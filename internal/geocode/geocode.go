package geocode

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("geocode not found")

type Place struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	Confidence  float64 `json:"confidence"`
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}

// BuildQuery joins the non-empty parts with ", ".
func BuildQuery(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
