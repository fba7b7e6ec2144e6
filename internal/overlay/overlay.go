package overlay

import (
	"context"
	"sync"
)

// Field names a lead attribute that can be overlaid.
type Field string

const (
	FieldStatus     Field = "status"
	FieldAssignment Field = "assignment"
	FieldNotes      Field = "notes"
)

var Fields = []Field{FieldStatus, FieldAssignment, FieldNotes}

// Overlay holds lead field values whose remote write failed. An entry takes
// precedence over the stored value until it is cleared. A nil value is a
// real entry meaning "no value", used for unassignment.
type Overlay interface {
	Set(ctx context.Context, field Field, leadID int64, value *string) error
	Clear(ctx context.Context, field Field, leadID int64) error
	Snapshot(ctx context.Context, field Field) (map[int64]*string, error)
	Pending(ctx context.Context) (map[Field]int, error)
}

type Memory struct {
	mu      sync.RWMutex
	entries map[Field]map[int64]*string
}

func NewMemory() *Memory {
	return &Memory{entries: map[Field]map[int64]*string{}}
}

func (m *Memory) Set(_ context.Context, field Field, leadID int64, value *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byLead, ok := m.entries[field]
	if !ok {
		byLead = map[int64]*string{}
		m.entries[field] = byLead
	}
	byLead[leadID] = copyValue(value)
	return nil
}

func (m *Memory) Clear(_ context.Context, field Field, leadID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries[field], leadID)
	return nil
}

func (m *Memory) Snapshot(_ context.Context, field Field) (map[int64]*string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int64]*string, len(m.entries[field]))
	for id, v := range m.entries[field] {
		out[id] = copyValue(v)
	}
	return out, nil
}

func (m *Memory) Pending(_ context.Context) (map[Field]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Field]int, len(Fields))
	for _, f := range Fields {
		out[f] = len(m.entries[f])
	}
	return out, nil
}

func copyValue(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
