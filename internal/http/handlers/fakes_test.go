package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Djberg2/GrndWrkv0/internal/db"
	"github.com/Djberg2/GrndWrkv0/internal/models"
)

var errStoreDown = errors.New("store unavailable")

// memStore backs every store-shaped interface the handlers and services
// depend on.
type memStore struct {
	mu         sync.Mutex
	leads      map[int64]models.Lead
	nextID     int64
	settings   map[string][]byte
	failWrites bool
}

func newMemStore(leads ...models.Lead) *memStore {
	s := &memStore{leads: map[int64]models.Lead{}, settings: map[string][]byte{}}
	for _, l := range leads {
		s.leads[l.ID] = l
		if l.ID > s.nextID {
			s.nextID = l.ID
		}
	}
	return s
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) TakenSlots(_ context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, l := range s.leads {
		if l.AppointmentDate != nil && *l.AppointmentDate == date && l.AppointmentTime != nil {
			out = append(out, *l.AppointmentTime)
		}
	}
	return out, nil
}

func (s *memStore) update(id int64, fn func(*models.Lead)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	if l, ok := s.leads[id]; ok {
		fn(&l)
		s.leads[id] = l
	}
	return nil
}

func (s *memStore) UpdateLeadStatus(_ context.Context, id int64, status string) error {
	return s.update(id, func(l *models.Lead) { l.Status = status })
}

func (s *memStore) UpdateLeadAssignment(_ context.Context, id int64, estimatorID *string) error {
	return s.update(id, func(l *models.Lead) { l.AssignedTo = estimatorID })
}

func (s *memStore) UpdateLeadNotes(_ context.Context, id int64, notes string) error {
	return s.update(id, func(l *models.Lead) { l.Notes = notes })
}

func (s *memStore) CreateLead(_ context.Context, l models.Lead) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return 0, errStoreDown
	}
	s.nextID++
	l.ID = s.nextID
	s.leads[l.ID] = l
	return l.ID, nil
}

func (s *memStore) GetLead(_ context.Context, id int64) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return models.Lead{}, db.ErrNotFound
	}
	return l, nil
}

func (s *memStore) ListLeads(context.Context) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) ListAppointments(_ context.Context, from, to string) ([]models.Lead, error) {
	all, _ := s.ListLeads(context.Background())
	var out []models.Lead
	for _, l := range all {
		if l.AppointmentDate != nil && *l.AppointmentDate >= from && *l.AppointmentDate <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memStore) ListEstimators(context.Context) ([]models.Estimator, error) {
	return nil, nil
}

func (s *memStore) GetSetting(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.settings[key]
	if !ok {
		return nil, db.ErrNotFound
	}
	return b, nil
}

func (s *memStore) UpsertSetting(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	s.settings[key] = data
	return nil
}
