package service

import (
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
)

var palette = []string{
	"bg-emerald-100 text-emerald-800",
	"bg-sky-100 text-sky-800",
	"bg-rose-100 text-rose-800",
	"bg-amber-100 text-amber-800",
	"bg-lime-100 text-lime-800",
	"bg-cyan-100 text-cyan-800",
	"bg-violet-100 text-violet-800",
}

type CatalogueEntry struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Name         string  `json:"name"`
	BasePrice    float64 `json:"basePrice"`
	PricePerSqft float64 `json:"pricePerSqft"`
	Chip         string  `json:"chip"`
}

// Catalogue lists the configured services with their slug and a palette
// colour assigned by position.
func Catalogue(cfg models.PricingConfig) []CatalogueEntry {
	out := make([]CatalogueEntry, 0, len(cfg.Services))
	for i, s := range cfg.Services {
		key := pricing.ServiceKey(s.Name)
		if key == "" {
			continue
		}
		out = append(out, CatalogueEntry{
			Key:          key,
			Label:        pricing.ServiceLabel(key),
			Name:         s.Name,
			BasePrice:    s.BasePrice,
			PricePerSqft: s.PricePerSqft,
			Chip:         palette[i%len(palette)],
		})
	}
	return out
}
