package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/policy-extract/internal/model"
)

// Querier is the subset of pgxpool.Pool the store uses; tests substitute a
// mock implementation.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Querier
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	filename       TEXT NOT NULL,
	extraction     JSONB NOT NULL,
	found_fields   INTEGER NOT NULL,
	total_fields   INTEGER NOT NULL,
	success_rate   DOUBLE PRECISION NOT NULL,
	avg_confidence DOUBLE PRECISION NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_extractions_filename ON extractions(filename);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveExtraction(ctx context.Context, doc *model.DocumentExtraction) (*Record, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal extraction")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO extractions (id, filename, extraction, found_fields, total_fields, success_rate, avg_confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, doc.Filename, docJSON,
		doc.Quality.FoundFields, doc.Quality.TotalFields,
		doc.Quality.SuccessRate, doc.Quality.AverageConfidence, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert extraction")
	}

	return &Record{ID: id, Filename: doc.Filename, Extraction: doc, CreatedAt: now}, nil
}

func (s *PostgresStore) GetExtraction(ctx context.Context, id string) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, filename, extraction, created_at FROM extractions WHERE id = $1`,
		id,
	)

	var r Record
	var docJSON []byte
	err := row.Scan(&r.ID, &r.Filename, &docJSON, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("extraction not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan extraction")
	}

	r.Extraction = &model.DocumentExtraction{}
	if err := json.Unmarshal(docJSON, r.Extraction); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal extraction")
	}
	return &r, nil
}

func (s *PostgresStore) ListExtractions(ctx context.Context, filter Filter) ([]Record, error) {
	query := `SELECT id, filename, extraction, created_at FROM extractions`
	var args []any

	if filter.Filename != "" {
		query += ` WHERE filename = $1`
		args = append(args, filter.Filename)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list extractions")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var docJSON []byte
		if err := rows.Scan(&r.ID, &r.Filename, &docJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan extraction")
		}
		r.Extraction = &model.DocumentExtraction{}
		if err := json.Unmarshal(docJSON, r.Extraction); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal extraction")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list extractions iterate")
}
