package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	Pool Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "db: parse database url")
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "db: open pool")
	}
	return &Store{Pool: pool}, nil
}

func NewWithPool(pool Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

const leadColumns = `id, fullname, COALESCE(email, ''), phone, address, service_type,
	COALESCE(square_footage, 0)::float8, COALESCE(additional_info, ''), COALESCE(photo_urls, '{}'),
	estimate::float8, to_char(appointment_date, 'YYYY-MM-DD'), to_char(appointment_time, 'HH24:MI'),
	status, assigned_to, notes, created_at`

func scanLead(row pgx.Row) (models.Lead, error) {
	var l models.Lead
	err := row.Scan(
		&l.ID, &l.Fullname, &l.Email, &l.Phone, &l.Address, &l.ServiceType,
		&l.SquareFootage, &l.AdditionalInfo, &l.PhotoURLs,
		&l.Estimate, &l.AppointmentDate, &l.AppointmentTime,
		&l.Status, &l.AssignedTo, &l.Notes, &l.CreatedAt,
	)
	return l, err
}

func collectLeads(rows pgx.Rows) ([]models.Lead, error) {
	defer rows.Close()
	out := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "db: scan lead")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateLead inserts a lead and returns its id. Date and time are given as
// YYYY-MM-DD and HH:MM strings.
func (s *Store) CreateLead(ctx context.Context, l models.Lead) (int64, error) {
	status := l.Status
	if status == "" {
		status = models.StatusNew
	}
	photos := l.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO quotes (fullname, email, phone, address, service_type, square_footage, additional_info,
			photo_urls, estimate, appointment_date, appointment_time, status)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10::date, $11::time, $12)
		RETURNING id
	`, l.Fullname, l.Email, l.Phone, l.Address, l.ServiceType, l.SquareFootage, l.AdditionalInfo,
		photos, l.Estimate, l.AppointmentDate, l.AppointmentTime, status).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "db: insert lead")
	}
	return id, nil
}

func (s *Store) GetLead(ctx context.Context, id int64) (models.Lead, error) {
	l, err := scanLead(s.Pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Lead{}, ErrNotFound
	}
	if err != nil {
		return models.Lead{}, eris.Wrapf(err, "db: get lead %d", id)
	}
	return l, nil
}

// ListLeads returns every lead, newest first.
func (s *Store) ListLeads(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+leadColumns+` FROM quotes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "db: list leads")
	}
	return collectLeads(rows)
}

// ListAppointments returns leads with an appointment date in [from, to].
func (s *Store) ListAppointments(ctx context.Context, from, to string) ([]models.Lead, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+leadColumns+` FROM quotes
		WHERE appointment_date BETWEEN $1::date AND $2::date
		ORDER BY appointment_date ASC, appointment_time ASC NULLS LAST`, from, to)
	if err != nil {
		return nil, eris.Wrap(err, "db: list appointments")
	}
	return collectLeads(rows)
}

// TakenSlots returns the HH:MM appointment times booked on date.
func (s *Store) TakenSlots(ctx context.Context, date string) ([]string, error) {
	rows, err := s.Pool.Query(ctx, `SELECT to_char(appointment_time, 'HH24:MI') FROM quotes
		WHERE appointment_date = $1::date AND appointment_time IS NOT NULL`, date)
	if err != nil {
		return nil, eris.Wrapf(err, "db: taken slots for %s", date)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, eris.Wrap(err, "db: scan slot")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateLeadStatus(ctx context.Context, id int64, status string) error {
	if _, err := s.Pool.Exec(ctx, `UPDATE quotes SET status = $1 WHERE id = $2`, status, id); err != nil {
		return eris.Wrapf(err, "db: update status of lead %d", id)
	}
	return nil
}

// UpdateLeadAssignment stores NULL for a nil estimator.
func (s *Store) UpdateLeadAssignment(ctx context.Context, id int64, estimatorID *string) error {
	if _, err := s.Pool.Exec(ctx, `UPDATE quotes SET assigned_to = $1 WHERE id = $2`, estimatorID, id); err != nil {
		return eris.Wrapf(err, "db: update assignment of lead %d", id)
	}
	return nil
}

func (s *Store) UpdateLeadNotes(ctx context.Context, id int64, notes string) error {
	if _, err := s.Pool.Exec(ctx, `UPDATE quotes SET notes = $1 WHERE id = $2`, notes, id); err != nil {
		return eris.Wrapf(err, "db: update notes of lead %d", id)
	}
	return nil
}

// GetSetting returns the raw JSON document stored under key.
func (s *Store) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.Pool.QueryRow(ctx, `SELECT data FROM settings WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "db: get setting %s", key)
	}
	return data, nil
}

func (s *Store) UpsertSetting(ctx context.Context, key string, data []byte) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO settings (key, data, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, key, string(data))
	if err != nil {
		return eris.Wrapf(err, "db: upsert setting %s", key)
	}
	return nil
}

func (s *Store) ListEstimators(ctx context.Context) ([]models.Estimator, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, fullname FROM users ORDER BY fullname ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "db: list estimators")
	}
	defer rows.Close()

	out := []models.Estimator{}
	for rows.Next() {
		var e models.Estimator
		if err := rows.Scan(&e.ID, &e.Fullname); err != nil {
			return nil, eris.Wrap(err, "db: scan estimator")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
