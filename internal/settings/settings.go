package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/db"
	"github.com/Djberg2/GrndWrkv0/internal/models"
)

type Store interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	UpsertSetting(ctx context.Context, key string, data []byte) error
}

// Service reads settings documents merged over the built-in defaults. A
// missing or unreadable document yields the defaults.
type Service struct {
	Store  Store
	Logger zerolog.Logger
}

func (s *Service) Pricing(ctx context.Context) models.PricingConfig {
	return load(ctx, s, KeyPricing, DefaultPricing)
}

func (s *Service) Business(ctx context.Context) models.BusinessConfig {
	return load(ctx, s, KeyBusiness, DefaultBusiness)
}

func (s *Service) Availability(ctx context.Context) models.AvailabilityConfig {
	return load(ctx, s, KeyAvailability, DefaultAvailability)
}

func (s *Service) SavePricing(ctx context.Context, cfg models.PricingConfig) error {
	return s.save(ctx, KeyPricing, cfg)
}

func (s *Service) SaveBusiness(ctx context.Context, cfg models.BusinessConfig) error {
	return s.save(ctx, KeyBusiness, cfg)
}

func (s *Service) SaveAvailability(ctx context.Context, cfg models.AvailabilityConfig) error {
	return s.save(ctx, KeyAvailability, cfg)
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "settings: encode %s", key)
	}
	return s.Store.UpsertSetting(ctx, key, data)
}

// load overlays the stored document on the defaults key by key. A key present
// in the document replaces the default value outright, lists included, so a
// stored service never inherits fields from the default at the same index.
func load[T any](ctx context.Context, s *Service, key string, def func() T) T {
	data, err := s.Store.GetSetting(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return def()
	}
	if err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("settings unavailable, using defaults")
		return def()
	}
	merged, err := mergeOverDefaults(def(), data)
	if err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("settings malformed, using defaults")
		return def()
	}
	return merged
}

func mergeOverDefaults[T any](def T, data []byte) (T, error) {
	var zero T
	base, err := json.Marshal(def)
	if err != nil {
		return zero, eris.Wrap(err, "settings: encode defaults")
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, eris.Wrap(err, "settings: decode defaults")
	}
	stored := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &stored); err != nil {
		return zero, eris.Wrap(err, "settings: decode document")
	}
	for k, v := range stored {
		fields[k] = v
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return zero, eris.Wrap(err, "settings: encode merged document")
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, eris.Wrap(err, "settings: decode merged document")
	}
	return out, nil
}
