package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/db"
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
)

type fakeStore struct {
	docs map[string][]byte
	err  error
}

func (f *fakeStore) GetSetting(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[key]
	if !ok {
		return nil, db.ErrNotFound
	}
	return d, nil
}

func (f *fakeStore) UpsertSetting(_ context.Context, key string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.docs == nil {
		f.docs = map[string][]byte{}
	}
	f.docs[key] = data
	return nil
}

func TestPricing_DefaultsWhenMissing(t *testing.T) {
	svc := &Service{Store: &fakeStore{}, Logger: zerolog.Nop()}
	cfg := svc.Pricing(context.Background())
	assert.Len(t, cfg.Services, 4)
	assert.Equal(t, float64(45), cfg.LaborRate)
}

func TestPricing_StoredFieldsOverrideDefaults(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{
		KeyPricing: []byte(`{"laborRate":60,"services":[{"name":"Snow Removal","basePrice":80,"pricePerSqft":0.02}]}`),
	}}
	svc := &Service{Store: store, Logger: zerolog.Nop()}

	cfg := svc.Pricing(context.Background())
	assert.Equal(t, float64(60), cfg.LaborRate)
	assert.Equal(t, float64(2.5), cfg.TravelFee, "absent field keeps default")
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "Snow Removal", cfg.Services[0].Name)
	assert.Zero(t, cfg.Services[0].Markup, "stored service does not inherit the default markup")
}

func TestPricing_StoredServicesReplaceDefaults(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{
		KeyPricing: []byte(`{"services":[{"id":9,"name":"Mulching","basePrice":80}]}`),
	}}
	svc := &Service{Store: store, Logger: zerolog.Nop()}

	cfg := svc.Pricing(context.Background())
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, models.Service{ID: 9, Name: "Mulching", BasePrice: 80}, cfg.Services[0])
	assert.Equal(t, float64(45), cfg.LaborRate, "absent top-level key keeps default")

	q, err := pricing.Estimator{Variance: 0}.Estimate(cfg, "mulching", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(80), q.Estimate)
}

func TestAvailability_StoredDaysReplaceDefaults(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{
		KeyAvailability: []byte(`{"days":[{"name":"Wednesday","enabled":true,"start":"9","end":"15"}]}`),
	}}
	svc := &Service{Store: store, Logger: zerolog.Nop()}

	cfg := svc.Availability(context.Background())
	require.Len(t, cfg.Days, 1)
	assert.Equal(t, "Wednesday", cfg.Days[0].Name)
	assert.Empty(t, cfg.Days[0].Lunch)
	assert.Equal(t, "24", cfg.MinNotice)
}

func TestBusiness_StoreErrorFallsBack(t *testing.T) {
	svc := &Service{Store: &fakeStore{err: errors.New("down")}, Logger: zerolog.Nop()}
	cfg := svc.Business(context.Background())
	assert.Equal(t, "GreenScapes Landscaping", cfg.BusinessName)
}

func TestAvailability_MalformedFallsBack(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{KeyAvailability: []byte(`{"days":"nope"}`)}}
	svc := &Service{Store: store, Logger: zerolog.Nop()}

	cfg := svc.Availability(context.Background())
	assert.Len(t, cfg.Days, 7)
	assert.Equal(t, "24", cfg.MinNotice)
}

func TestSaveThenLoad(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store, Logger: zerolog.Nop()}
	ctx := context.Background()

	cfg := DefaultAvailability()
	cfg.MinNotice = "48"
	require.NoError(t, svc.SaveAvailability(ctx, cfg))

	assert.Equal(t, "48", svc.Availability(ctx).MinNotice)
}
