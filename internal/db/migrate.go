package db

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationLockID = 4815162342

// Conn is a single database session. The advisory lock taken by Migrate is
// session scoped, so lock and unlock must run on the same Conn.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// Migrate runs the pending migrations on one connection held for the whole
// run. A pool that is not a pgxpool is treated as a single session.
func (s *Store) Migrate(ctx context.Context, logger zerolog.Logger) error {
	p, ok := s.Pool.(*pgxpool.Pool)
	if !ok {
		return Migrate(ctx, s.Pool, logger)
	}
	conn, err := p.Acquire(ctx)
	if err != nil {
		return eris.Wrap(err, "db: acquire migration connection")
	}
	defer conn.Release()
	return Migrate(ctx, conn, logger)
}

// Migrate applies pending migrations in filename order under an advisory
// lock, recording each in schema_migrations.
func Migrate(ctx context.Context, conn Conn, logger zerolog.Logger) error {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return eris.Wrap(err, "db: acquire migration lock")
	}
	defer func() {
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			logger.Warn().Err(err).Msg("failed to release migration lock")
		}
	}()

	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return eris.Wrap(err, "db: ensure schema_migrations")
	}

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return eris.Wrap(err, "db: read migrations")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if applied[name] {
			continue
		}
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return eris.Wrapf(err, "db: read migration %s", name)
		}
		if err := applyMigration(ctx, conn, name, string(data)); err != nil {
			return err
		}
		logger.Info().Str("file", name).Msg("migration applied")
	}
	return nil
}

// applyMigration runs one file and records it in the same transaction.
func applyMigration(ctx context.Context, conn Conn, name, sql string) error {
	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return eris.Wrapf(err, "db: begin migration %s", name)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, sql); err != nil {
		return eris.Wrapf(err, "db: apply migration %s", name)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (filename) VALUES ($1)", name); err != nil {
		return eris.Wrapf(err, "db: record migration %s", name)
	}
	return eris.Wrapf(tx.Commit(ctx), "db: commit migration %s", name)
}

func appliedMigrations(ctx context.Context, conn Conn) (map[string]bool, error) {
	rows, err := conn.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, eris.Wrap(err, "db: query applied migrations")
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "db: scan migration row")
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
