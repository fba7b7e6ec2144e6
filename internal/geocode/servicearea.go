package geocode

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

// ErrOriginNotFound means the business's own primary city could not be
// located, as opposed to the lead's address.
var ErrOriginNotFound = errors.New("business primary city not found")

type AreaCheck struct {
	Address       string  `json:"address"`
	Origin        string  `json:"origin"`
	DistanceMiles float64 `json:"distanceMiles"`
	RadiusMiles   float64 `json:"radiusMiles"`
	ListedArea    string  `json:"listedArea,omitempty"`
	Within        bool    `json:"within"`
}

// CheckServiceArea measures the distance from the business's primary city to
// address. A lead is within the area when it is inside the radius or its
// address names one of the additional areas.
func CheckServiceArea(ctx context.Context, g Geocoder, biz models.BusinessConfig, address string) (AreaCheck, error) {
	res := AreaCheck{
		Address:     address,
		Origin:      BuildQuery(biz.PrimaryCity),
		RadiusMiles: parseMiles(biz.ServiceRadius),
		ListedArea:  listedArea(biz.AdditionalAreas, address),
	}
	if res.Origin == "" {
		return res, eris.Wrap(ErrOriginNotFound, "geocode: primary city not configured")
	}

	origin, err := g.Geocode(ctx, res.Origin)
	if errors.Is(err, ErrNotFound) {
		return res, eris.Wrapf(ErrOriginNotFound, "geocode: origin %q", res.Origin)
	}
	if err != nil {
		return res, eris.Wrapf(err, "geocode: origin %q", res.Origin)
	}
	dest, err := g.Geocode(ctx, BuildQuery(address))
	if err != nil {
		return res, eris.Wrapf(err, "geocode: address %q", address)
	}

	res.DistanceMiles = math.Round(DistanceMiles(origin, dest)*10) / 10
	res.Within = res.DistanceMiles <= res.RadiusMiles || res.ListedArea != ""
	return res, nil
}

func parseMiles(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func listedArea(areas, address string) string {
	addr := strings.ToLower(address)
	for _, a := range strings.Split(areas, ",") {
		a = strings.TrimSpace(a)
		if a != "" && strings.Contains(addr, strings.ToLower(a)) {
			return a
		}
	}
	return ""
}
