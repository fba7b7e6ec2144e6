package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/overlay"
)

var ErrInvalidStatus = errors.New("invalid lead status")

const (
	SourceRemote  = "remote"
	SourceOverlay = "overlay"
)

type LeadWriter interface {
	UpdateLeadStatus(ctx context.Context, id int64, status string) error
	UpdateLeadAssignment(ctx context.Context, id int64, estimatorID *string) error
	UpdateLeadNotes(ctx context.Context, id int64, notes string) error
}

// WriteResult reports where a lifecycle write landed. Both sources count as
// success for the caller.
type WriteResult struct {
	LeadID int64   `json:"id"`
	Field  string  `json:"field"`
	Value  *string `json:"value"`
	Source string  `json:"source"`
}

// LifecycleService updates status, assignment and notes. A failed remote
// write is kept in the overlay and still reported as success; a successful
// one clears any earlier overlay entry for the same lead and field.
type LifecycleService struct {
	Store   LeadWriter
	Overlay overlay.Overlay
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

func (s *LifecycleService) SetStatus(ctx context.Context, id int64, status string) (WriteResult, error) {
	status = strings.TrimSpace(status)
	if !models.ValidStatus(status) {
		return WriteResult{}, ErrInvalidStatus
	}
	return s.write(ctx, overlay.FieldStatus, id, &status, func() error {
		return s.Store.UpdateLeadStatus(ctx, id, status)
	}), nil
}

// SetAssignment assigns an estimator; nil or blank unassigns.
func (s *LifecycleService) SetAssignment(ctx context.Context, id int64, estimatorID *string) WriteResult {
	if estimatorID != nil && strings.TrimSpace(*estimatorID) == "" {
		estimatorID = nil
	}
	return s.write(ctx, overlay.FieldAssignment, id, estimatorID, func() error {
		return s.Store.UpdateLeadAssignment(ctx, id, estimatorID)
	})
}

func (s *LifecycleService) SetNotes(ctx context.Context, id int64, notes string) WriteResult {
	return s.write(ctx, overlay.FieldNotes, id, &notes, func() error {
		return s.Store.UpdateLeadNotes(ctx, id, notes)
	})
}

func (s *LifecycleService) write(ctx context.Context, field overlay.Field, id int64, value *string, remote func() error) WriteResult {
	res := WriteResult{LeadID: id, Field: string(field), Value: value, Source: SourceRemote}

	if err := remote(); err != nil {
		s.Logger.Warn().Err(err).Int64("lead_id", id).Str("field", string(field)).Msg("remote write failed, keeping overlay entry")
		s.Metrics.OverlayFallback(string(field))
		if oerr := s.Overlay.Set(ctx, field, id, value); oerr != nil {
			s.Logger.Error().Err(oerr).Int64("lead_id", id).Str("field", string(field)).Msg("overlay write failed")
		}
		res.Source = SourceOverlay
		return res
	}

	if err := s.Overlay.Clear(ctx, field, id); err != nil {
		s.Logger.Warn().Err(err).Int64("lead_id", id).Str("field", string(field)).Msg("overlay clear failed")
	}
	return res
}

// Reconcile applies overlay entries on top of stored leads. Overlay values
// win over stored values field by field.
func (s *LifecycleService) Reconcile(ctx context.Context, leads []models.Lead) []models.Lead {
	if len(leads) == 0 {
		return leads
	}
	snaps := make(map[overlay.Field]map[int64]*string, len(overlay.Fields))
	for _, f := range overlay.Fields {
		snap, err := s.Overlay.Snapshot(ctx, f)
		if err != nil {
			s.Logger.Warn().Err(err).Str("field", string(f)).Msg("overlay snapshot failed")
			continue
		}
		snaps[f] = snap
	}

	out := make([]models.Lead, len(leads))
	for i, l := range leads {
		if v, ok := snaps[overlay.FieldStatus][l.ID]; ok && v != nil {
			l.Status = *v
		}
		if v, ok := snaps[overlay.FieldAssignment][l.ID]; ok {
			l.AssignedTo = v
		}
		if v, ok := snaps[overlay.FieldNotes][l.ID]; ok && v != nil {
			l.Notes = *v
		}
		out[i] = l
	}
	return out
}
