package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/phone"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidDateTime = errors.New("invalid scheduled date time")
)

type LeadCreator interface {
	CreateLead(ctx context.Context, l models.Lead) (int64, error)
}

type ScheduleRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	ServiceType       string   `json:"serviceType"`
	SquareFootage     *float64 `json:"squareFootage"`
	AdditionalInfo    string   `json:"additionalInfo"`
	Photos            []string `json:"photos"`
	Estimate          *float64 `json:"estimate"`
	ScheduledDateTime string   `json:"scheduledDateTime"`
}

type ScheduleService struct {
	Store       LeadCreator
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	Location    *time.Location
	PhoneRegion string
}

// Schedule records an appointment request as a New lead. The submitted
// estimate is stored as given.
func (s *ScheduleService) Schedule(ctx context.Context, req ScheduleRequest) (int64, error) {
	if missingRequired(req) {
		return 0, ErrMissingFields
	}
	date, clock, err := SplitDateTime(req.ScheduledDateTime, s.location())
	if err != nil {
		return 0, err
	}

	lead := models.Lead{
		Fullname:        strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           phone.Normalize(req.Phone, s.PhoneRegion),
		Address:         strings.TrimSpace(req.Address),
		ServiceType:     strings.TrimSpace(req.ServiceType),
		AdditionalInfo:  req.AdditionalInfo,
		PhotoURLs:       req.Photos,
		Estimate:        *req.Estimate,
		AppointmentDate: &date,
		AppointmentTime: &clock,
		Status:          models.StatusNew,
	}
	if req.SquareFootage != nil {
		lead.SquareFootage = *req.SquareFootage
	}

	id, err := s.Store.CreateLead(ctx, lead)
	if err != nil {
		return 0, err
	}
	s.Metrics.LeadSubmitted()
	s.Logger.Info().Int64("lead_id", id).Str("service_type", lead.ServiceType).Str("date", date).Msg("appointment scheduled")
	return id, nil
}

func (s *ScheduleService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func missingRequired(req ScheduleRequest) bool {
	for _, v := range []string{req.Name, req.Phone, req.Address, req.ServiceType, req.ScheduledDateTime} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return req.Estimate == nil
}

// SplitDateTime turns an ISO date-time into a YYYY-MM-DD date and HH:MM time
// in loc. Values without an offset are read as local to loc.
func SplitDateTime(v string, loc *time.Location) (string, string, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.In(loc)
		return t.Format("2006-01-02"), t.Format("15:04"), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.Format("2006-01-02"), t.Format("15:04"), nil
		}
	}
	return "", "", ErrInvalidDateTime
}
