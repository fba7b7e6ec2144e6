package pricing

import (
	"errors"
	"math"
	"math/rand"
	"strings"

	"github.com/gosimple/slug"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

const (
	DefaultSquareFootage = 1000
	DefaultVariance      = 0.10
)

var ErrUnknownService = errors.New("unknown service type")

// Quote is a computed estimate together with the band it was drawn from.
type Quote struct {
	ServiceType   string  `json:"serviceType"`
	SquareFootage float64 `json:"squareFootage"`
	Estimate      int64   `json:"estimate"`
	Low           int64   `json:"low"`
	High          int64   `json:"high"`
}

// Estimator prices a project from the pricing configuration in effect.
// Rand must return values in [0, 1); nil uses math/rand. A zero Variance
// gives a deterministic estimate.
type Estimator struct {
	Variance             float64
	DefaultSquareFootage float64
	Rand                 func() float64
}

func NewEstimator(variance, defaultSqft float64) Estimator {
	return Estimator{Variance: variance, DefaultSquareFootage: defaultSqft}
}

func (e Estimator) Estimate(cfg models.PricingConfig, serviceType string, sqft float64) (Quote, error) {
	svc, ok := FindService(cfg, serviceType)
	if !ok {
		return Quote{}, ErrUnknownService
	}
	sqft = e.footage(sqft)
	variance := e.variance()

	raw := svc.BasePrice + sqft*svc.PricePerSqft
	factor := 1 - variance + e.draw()*2*variance

	return Quote{
		ServiceType:   ServiceKey(svc.Name),
		SquareFootage: sqft,
		Estimate:      roundNonNegative(raw * factor),
		Low:           roundNonNegative(raw * (1 - variance)),
		High:          roundNonNegative(raw * (1 + variance)),
	}, nil
}

// FindService matches a service-type key against the slug of each configured
// service name. The key itself is slugged too, so "Lawn Mowing" and
// "lawn-mowing" both match.
func FindService(cfg models.PricingConfig, serviceType string) (models.Service, bool) {
	key := ServiceKey(serviceType)
	if key == "" {
		return models.Service{}, false
	}
	for _, s := range cfg.Services {
		if ServiceKey(s.Name) == key {
			return s, true
		}
	}
	return models.Service{}, false
}

func ServiceKey(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// ServiceLabel turns a slug back into a title-cased label.
func ServiceLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (e Estimator) footage(sqft float64) float64 {
	if sqft <= 0 || math.IsNaN(sqft) || math.IsInf(sqft, 0) {
		if e.DefaultSquareFootage > 0 {
			return e.DefaultSquareFootage
		}
		return DefaultSquareFootage
	}
	return sqft
}

func (e Estimator) variance() float64 {
	if e.Variance < 0 || e.Variance >= 1 {
		return DefaultVariance
	}
	return e.Variance
}

func (e Estimator) draw() float64 {
	if e.Rand != nil {
		return e.Rand()
	}
	return rand.Float64()
}

func roundNonNegative(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v))
}
