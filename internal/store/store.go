// Package store implements the durable posting store on PostgreSQL.
//
// The postings table is the monitor's permanent memory: one row per distinct
// posting identity, inserted on first sighting and never updated or deleted.
// A posting present here has already been handled — whether or not any sink
// delivery succeeded afterwards.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// ErrDuplicateIdentity is returned by Insert when the identity already has a
// row. Under the single-writer discipline it signals an ordering bug in the
// caller (an Exists check was skipped), never a user-facing failure.
var ErrDuplicateIdentity = errors.New("posting identity already stored")

const pgUniqueViolation = "23505"

// PostingStore is the pgx-backed posting store plus the append-only
// activity log.
type PostingStore struct {
	pool *pgxpool.Pool
}

// New returns a PostingStore using pool.
func New(pool *pgxpool.Pool) *PostingStore {
	return &PostingStore{pool: pool}
}

// Bootstrap creates the schema if it does not exist yet.
func (s *PostingStore) Bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS postings (
			identity      TEXT PRIMARY KEY,
			portal        TEXT NOT NULL,
			title         TEXT NOT NULL,
			company       TEXT NOT NULL,
			url           TEXT NOT NULL DEFAULT '',
			salary        TEXT NOT NULL DEFAULT '',
			discovered_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_postings_discovered_at
			ON postings (discovered_at)`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id     BIGSERIAL PRIMARY KEY,
			at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			portal TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// Exists reports whether a posting with this identity has ever been inserted.
func (s *PostingStore) Exists(ctx context.Context, identity string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM postings WHERE identity = $1)`, identity,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

// Insert persists a newly discovered posting keyed by identity, stamping
// discovered_at server-side. Returns ErrDuplicateIdentity when a row with the
// same identity already exists.
func (s *PostingStore) Insert(ctx context.Context, raw model.RawPosting, identity string) (model.StoredPosting, error) {
	p := model.StoredPosting{
		Identity: identity,
		Portal:   raw.Portal,
		Title:    raw.Title,
		Company:  raw.Company,
		URL:      raw.URL,
		Salary:   raw.Salary,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO postings (identity, portal, title, company, url, salary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING discovered_at`,
		identity, raw.Portal, raw.Title, raw.Company, raw.URL, raw.Salary,
	).Scan(&p.DiscoveredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.StoredPosting{}, ErrDuplicateIdentity
		}
		return model.StoredPosting{}, fmt.Errorf("insert posting: %w", err)
	}
	return p, nil
}

// DiscoveredBetween returns every posting whose discovered_at falls in the
// half-open interval [start, end), ordered by discovery time.
func (s *PostingStore) DiscoveredBetween(ctx context.Context, start, end time.Time) ([]model.StoredPosting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT identity, portal, title, company, url, salary, discovered_at
		 FROM postings
		 WHERE discovered_at >= $1 AND discovered_at < $2
		 ORDER BY discovered_at`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	defer rows.Close()

	var postings []model.StoredPosting
	for rows.Next() {
		var p model.StoredPosting
		if err := rows.Scan(&p.Identity, &p.Portal, &p.Title, &p.Company, &p.URL, &p.Salary, &p.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// LogActivity appends a row to the activity log. Best-effort: a failure is
// logged and swallowed, observability must never break a cycle.
func (s *PostingStore) LogActivity(ctx context.Context, portal, action, detail string) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO activity_log (portal, action, detail) VALUES ($1, $2, $3)`,
		portal, action, detail,
	)
	if err != nil {
		log.Printf("[store] activity log write failed: %v", err)
	}
}

// LastRollupAt returns the timestamp of the most recent rollup activity row,
// or nil when no rollup has ever been recorded. The scheduler uses it to
// detect a rollup missed while the process was down.
func (s *PostingStore) LastRollupAt(ctx context.Context) (*time.Time, error) {
	var at *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT max(at) FROM activity_log WHERE action = 'rollup'`,
	).Scan(&at)
	if err != nil {
		return nil, fmt.Errorf("last rollup query: %w", err)
	}
	return at, nil
}
