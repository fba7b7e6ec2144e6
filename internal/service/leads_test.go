package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/overlay"
)

var refNow = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

func sp(s string) *string { return &s }

func sampleLeads() []models.Lead {
	return []models.Lead{
		{ID: 1, Fullname: "Ann Lee", Email: "ann@example.com", ServiceType: "lawn-mowing", Status: "New",
			CreatedAt: refNow.Add(-2 * time.Hour), AppointmentDate: sp("2025-07-15")},
		{ID: 2, Fullname: "Bob Stone", Phone: "+12175550100", ServiceType: "tree-removal", Status: "Scheduled",
			CreatedAt: refNow.AddDate(0, 0, -3), AppointmentDate: sp("2025-07-10"), AssignedTo: sp("est-1")},
		{ID: 3, Fullname: "Cy Park", Address: "9 Elm Rd", ServiceType: "Hardscaping", Status: "Quote Sent",
			CreatedAt: refNow.AddDate(0, 0, -20), AssignedTo: sp("est-2")},
		{ID: 4, Fullname: "Di Moss", ServiceType: "lawn-mowing", Status: "Contacted",
			CreatedAt: refNow.AddDate(0, -3, 0)},
	}
}

func ids(leads []models.Lead) []int64 {
	out := []int64{}
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterLeads(t *testing.T) {
	leads := sampleLeads()
	cases := []struct {
		name string
		f    Filter
		want []int64
	}{
		{"all", Filter{}, []int64{1, 2, 3, 4}},
		{"status slug", Filter{Status: "quote-sent"}, []int64{3}},
		{"status all", Filter{Status: "all"}, []int64{1, 2, 3, 4}},
		{"service", Filter{Service: "lawn-mowing"}, []int64{1, 4}},
		{"service by name", Filter{Service: "hardscaping"}, []int64{3}},
		{"created today", Filter{CreatedRange: RangeToday}, []int64{1}},
		{"created week", Filter{CreatedRange: RangeWeek}, []int64{1, 2}},
		{"created month", Filter{CreatedRange: RangeMonth}, []int64{1, 2, 3}},
		{"scheduled today", Filter{ScheduledRange: RangeToday}, []int64{1}},
		{"scheduled week", Filter{ScheduledRange: RangeWeek}, []int64{1, 2}},
		{"search phone", Filter{Search: "555"}, []int64{2}},
		{"search address", Filter{Search: "ELM"}, []int64{3}},
		{"combined", Filter{Service: "lawn-mowing", CreatedRange: RangeWeek}, []int64{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterLeads(leads, tc.f, refNow)))
		})
	}
}

func TestCategorize(t *testing.T) {
	in := Categorize(sampleLeads(), "")
	assert.Equal(t, []int64{1, 4}, ids(in.Pending))
	assert.Equal(t, []int64{2}, ids(in.Scheduled))
	assert.Equal(t, []int64{3}, ids(in.QuoteSent))

	in = Categorize(sampleLeads(), "est-2")
	assert.Equal(t, []int64{1, 4}, ids(in.Pending), "pending is not filtered by estimator")
	assert.Empty(t, in.Scheduled)
	assert.Equal(t, []int64{3}, ids(in.QuoteSent))
}

type fakeReader struct {
	leads      []models.Lead
	estimators []models.Estimator
	err        error
}

func (f *fakeReader) GetLead(_ context.Context, id int64) (models.Lead, error) {
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Lead{}, errors.New("not found")
}

func (f *fakeReader) ListLeads(context.Context) ([]models.Lead, error) { return f.leads, f.err }

func (f *fakeReader) ListAppointments(_ context.Context, from, to string) ([]models.Lead, error) {
	out := []models.Lead{}
	for _, l := range f.leads {
		if l.AppointmentDate != nil && *l.AppointmentDate >= from && *l.AppointmentDate <= to {
			out = append(out, l)
		}
	}
	return out, f.err
}

func (f *fakeReader) ListEstimators(context.Context) ([]models.Estimator, error) {
	return f.estimators, f.err
}

func newLeadService(r *fakeReader) (*LeadService, overlay.Overlay) {
	o := overlay.NewMemory()
	return &LeadService{
		Store:     r,
		Lifecycle: &LifecycleService{Overlay: o, Logger: zerolog.Nop()},
		Logger:    zerolog.Nop(),
	}, o
}

func TestLeadService_ListAppliesOverlayBeforeFilter(t *testing.T) {
	svc, o := newLeadService(&fakeReader{leads: sampleLeads()})
	ctx := context.Background()
	require.NoError(t, o.Set(ctx, overlay.FieldStatus, 4, sp("Quote Sent")))

	out, err := svc.List(ctx, Filter{Status: "quote-sent"}, refNow)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, ids(out))
}

func TestLeadService_Calendar(t *testing.T) {
	svc, _ := newLeadService(&fakeReader{leads: sampleLeads()})
	out, err := svc.Calendar(context.Background(), "2025-07-01", "2025-07-12")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(out))
}

func TestLeadService_EstimatorsFallback(t *testing.T) {
	svc, _ := newLeadService(&fakeReader{})
	assert.Equal(t, FallbackEstimators, svc.Estimators(context.Background()))

	svc, _ = newLeadService(&fakeReader{err: errors.New("relation users does not exist")})
	assert.Equal(t, FallbackEstimators, svc.Estimators(context.Background()))

	own := []models.Estimator{{ID: "u1", Fullname: "Sam"}}
	svc, _ = newLeadService(&fakeReader{estimators: own})
	assert.Equal(t, own, svc.Estimators(context.Background()))
}
