package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/metrics"
	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/overlay"
)

type fakeWriter struct {
	fail  bool
	leads map[int64]*models.Lead
}

func newFakeWriter(ids ...int64) *fakeWriter {
	w := &fakeWriter{leads: map[int64]*models.Lead{}}
	for _, id := range ids {
		w.leads[id] = &models.Lead{ID: id, Status: models.StatusNew}
	}
	return w
}

func (w *fakeWriter) UpdateLeadStatus(_ context.Context, id int64, status string) error {
	if w.fail {
		return errors.New("store unavailable")
	}
	w.leads[id].Status = status
	return nil
}

func (w *fakeWriter) UpdateLeadAssignment(_ context.Context, id int64, estimatorID *string) error {
	if w.fail {
		return errors.New("store unavailable")
	}
	w.leads[id].AssignedTo = estimatorID
	return nil
}

func (w *fakeWriter) UpdateLeadNotes(_ context.Context, id int64, notes string) error {
	if w.fail {
		return errors.New("store unavailable")
	}
	w.leads[id].Notes = notes
	return nil
}

func (w *fakeWriter) snapshot() []models.Lead {
	out := []models.Lead{}
	for _, l := range w.leads {
		out = append(out, *l)
	}
	return out
}

func newLifecycle(w *fakeWriter) (*LifecycleService, *overlay.Memory) {
	o := overlay.NewMemory()
	return &LifecycleService{Store: w, Overlay: o, Metrics: metrics.New(), Logger: zerolog.Nop()}, o
}

func TestSetStatus_RemoteSuccess(t *testing.T) {
	w := newFakeWriter(1)
	svc, _ := newLifecycle(w)

	res, err := svc.SetStatus(context.Background(), 1, "Contacted")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, "Contacted", w.leads[1].Status)
}

func TestSetStatus_Invalid(t *testing.T) {
	svc, _ := newLifecycle(newFakeWriter(1))
	_, err := svc.SetStatus(context.Background(), 1, "Won")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatus_FailureFallsBackToOverlay(t *testing.T) {
	w := newFakeWriter(1)
	w.fail = true
	svc, o := newLifecycle(w)
	ctx := context.Background()

	res, err := svc.SetStatus(ctx, 1, "Scheduled")
	require.NoError(t, err)
	assert.Equal(t, SourceOverlay, res.Source)
	assert.Equal(t, models.StatusNew, w.leads[1].Status, "store unchanged")

	leads := svc.Reconcile(ctx, w.snapshot())
	assert.Equal(t, "Scheduled", leads[0].Status)

	snap, _ := o.Snapshot(ctx, overlay.FieldStatus)
	assert.Len(t, snap, 1)
}

func TestSetStatus_SuccessClearsOverlay(t *testing.T) {
	w := newFakeWriter(1)
	svc, o := newLifecycle(w)
	ctx := context.Background()

	w.fail = true
	_, err := svc.SetStatus(ctx, 1, "Scheduled")
	require.NoError(t, err)

	w.fail = false
	_, err = svc.SetStatus(ctx, 1, "Quote Sent")
	require.NoError(t, err)

	snap, _ := o.Snapshot(ctx, overlay.FieldStatus)
	assert.Empty(t, snap)
	assert.Equal(t, "Quote Sent", svc.Reconcile(ctx, w.snapshot())[0].Status)
}

func TestSetStatus_Idempotent(t *testing.T) {
	for _, fail := range []bool{false, true} {
		w := newFakeWriter(1)
		w.fail = fail
		svc, _ := newLifecycle(w)
		ctx := context.Background()

		_, err := svc.SetStatus(ctx, 1, "Contacted")
		require.NoError(t, err)
		first := svc.Reconcile(ctx, w.snapshot())

		_, err = svc.SetStatus(ctx, 1, "Contacted")
		require.NoError(t, err)
		second := svc.Reconcile(ctx, w.snapshot())

		assert.Equal(t, first, second)
	}
}

func TestSetAssignment_UnassignIsNull(t *testing.T) {
	w := newFakeWriter(1)
	est := "est-2"
	w.leads[1].AssignedTo = &est
	svc, _ := newLifecycle(w)
	ctx := context.Background()

	blank := "  "
	res := svc.SetAssignment(ctx, 1, &blank)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Nil(t, w.leads[1].AssignedTo)
}

func TestSetAssignment_UnassignFailureOverlaysNull(t *testing.T) {
	w := newFakeWriter(1)
	est := "est-2"
	w.leads[1].AssignedTo = &est
	w.fail = true
	svc, _ := newLifecycle(w)
	ctx := context.Background()

	res := svc.SetAssignment(ctx, 1, nil)
	assert.Equal(t, SourceOverlay, res.Source)

	lead := svc.Reconcile(ctx, w.snapshot())[0]
	assert.Nil(t, lead.AssignedTo, "overlay null wins over stored estimator")
}

func TestSetNotes_FailureOverlay(t *testing.T) {
	w := newFakeWriter(1)
	w.fail = true
	svc, _ := newLifecycle(w)
	ctx := context.Background()

	svc.SetNotes(ctx, 1, "back gate")
	assert.Equal(t, "back gate", svc.Reconcile(ctx, w.snapshot())[0].Notes)
}

func TestReconcile_EmptyInput(t *testing.T) {
	svc, _ := newLifecycle(newFakeWriter())
	assert.Empty(t, svc.Reconcile(context.Background(), nil))
}
