package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
)

type LeadReader interface {
	GetLead(ctx context.Context, id int64) (models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
	ListAppointments(ctx context.Context, from, to string) ([]models.Lead, error)
	ListEstimators(ctx context.Context) ([]models.Estimator, error)
}

// FallbackEstimators is served when the users table is empty or unreadable.
var FallbackEstimators = []models.Estimator{
	{ID: "est-1", Fullname: "Alex Estimator"},
	{ID: "est-2", Fullname: "Jamie Johnson"},
	{ID: "est-3", Fullname: "Taylor Rivera"},
}

const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

type Filter struct {
	Search         string `form:"search"`
	Status         string `form:"status"`
	Service        string `form:"service"`
	CreatedRange   string `form:"created" binding:"omitempty,oneof=all today week month"`
	ScheduledRange string `form:"scheduled" binding:"omitempty,oneof=all today week month"`
}

type Inbox struct {
	Pending   []models.Lead `json:"pending"`
	Scheduled []models.Lead `json:"scheduled"`
	QuoteSent []models.Lead `json:"quoteSent"`
}

type LeadService struct {
	Store     LeadReader
	Lifecycle *LifecycleService
	Logger    zerolog.Logger
}

// List returns overlay-reconciled leads, newest first, matching f.
func (s *LeadService) List(ctx context.Context, f Filter, now time.Time) ([]models.Lead, error) {
	leads, err := s.Store.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLeads(s.Lifecycle.Reconcile(ctx, leads), f, now), nil
}

func (s *LeadService) Get(ctx context.Context, id int64) (models.Lead, error) {
	lead, err := s.Store.GetLead(ctx, id)
	if err != nil {
		return models.Lead{}, err
	}
	return s.Lifecycle.Reconcile(ctx, []models.Lead{lead})[0], nil
}

// Calendar returns leads with an appointment between from and to inclusive.
func (s *LeadService) Calendar(ctx context.Context, from, to string) ([]models.Lead, error) {
	leads, err := s.Store.ListAppointments(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.Lifecycle.Reconcile(ctx, leads), nil
}

func (s *LeadService) Estimators(ctx context.Context) []models.Estimator {
	out, err := s.Store.ListEstimators(ctx)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("estimators unavailable, using fallback list")
		return FallbackEstimators
	}
	if len(out) == 0 {
		return FallbackEstimators
	}
	return out
}

func FilterLeads(leads []models.Lead, f Filter, now time.Time) []models.Lead {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Lead{}
	for _, l := range leads {
		if !statusMatches(l.Status, f.Status) || !serviceMatches(l.ServiceType, f.Service) {
			continue
		}
		if !inRange(&l.CreatedAt, f.CreatedRange, now) {
			continue
		}
		if f.ScheduledRange != "" && f.ScheduledRange != RangeAll {
			d := appointmentDay(l, now.Location())
			if d == nil || !inRange(d, f.ScheduledRange, now) {
				continue
			}
		}
		if q != "" && !strings.Contains(searchText(l), q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Categorize splits leads into inbox tabs. The estimator filter narrows the
// scheduled and quote-sent tabs only.
func Categorize(leads []models.Lead, estimatorID string) Inbox {
	in := Inbox{Pending: []models.Lead{}, Scheduled: []models.Lead{}, QuoteSent: []models.Lead{}}
	for _, l := range leads {
		switch l.Status {
		case models.StatusScheduled:
			if assignedTo(l, estimatorID) {
				in.Scheduled = append(in.Scheduled, l)
			}
		case models.StatusQuoteSent:
			if assignedTo(l, estimatorID) {
				in.QuoteSent = append(in.QuoteSent, l)
			}
		default:
			in.Pending = append(in.Pending, l)
		}
	}
	return in
}

func assignedTo(l models.Lead, estimatorID string) bool {
	if estimatorID == "" || estimatorID == RangeAll {
		return true
	}
	return l.AssignedTo != nil && *l.AssignedTo == estimatorID
}

// statusMatches compares against the dashboard's slug form: "quote-sent"
// selects "Quote Sent".
func statusMatches(status, want string) bool {
	if want == "" || want == RangeAll {
		return true
	}
	return strings.EqualFold(status, strings.ReplaceAll(want, "-", " "))
}

func serviceMatches(serviceType, want string) bool {
	if want == "" || want == RangeAll {
		return true
	}
	return pricing.ServiceKey(serviceType) == pricing.ServiceKey(want)
}

// inRange: today is since local midnight, week and month are the trailing
// 7 and 30 days.
func inRange(t *time.Time, rng string, now time.Time) bool {
	var from time.Time
	switch rng {
	case RangeToday:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeWeek:
		from = now.AddDate(0, 0, -7)
	case RangeMonth:
		from = now.AddDate(0, 0, -30)
	default:
		return true
	}
	return !t.Before(from)
}

func appointmentDay(l models.Lead, loc *time.Location) *time.Time {
	if l.AppointmentDate == nil {
		return nil
	}
	d, err := time.ParseInLocation("2006-01-02", *l.AppointmentDate, loc)
	if err != nil {
		return nil
	}
	return &d
}

func searchText(l models.Lead) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{l.Fullname, l.Email, l.Phone, l.Address, l.ServiceType} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
