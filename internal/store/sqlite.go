package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/policy-extract/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id             TEXT PRIMARY KEY,
	filename       TEXT NOT NULL,
	extraction     TEXT NOT NULL,
	found_fields   INTEGER NOT NULL,
	total_fields   INTEGER NOT NULL,
	success_rate   REAL NOT NULL,
	avg_confidence REAL NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_extractions_filename ON extractions(filename);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveExtraction(ctx context.Context, doc *model.DocumentExtraction) (*Record, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal extraction")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions (id, filename, extraction, found_fields, total_fields, success_rate, avg_confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, doc.Filename, string(docJSON),
		doc.Quality.FoundFields, doc.Quality.TotalFields,
		doc.Quality.SuccessRate, doc.Quality.AverageConfidence, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert extraction")
	}

	return &Record{ID: id, Filename: doc.Filename, Extraction: doc, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetExtraction(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, extraction, created_at FROM extractions WHERE id = ?`,
		id,
	)
	return scanRecord(row)
}

func (s *SQLiteStore) ListExtractions(ctx context.Context, filter Filter) ([]Record, error) {
	query := `SELECT id, filename, extraction, created_at FROM extractions WHERE 1=1`
	var args []any

	if filter.Filename != "" {
		query += ` AND filename = ?`
		args = append(args, filter.Filename)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list extractions")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list extractions iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*Record, error) {
	var r Record
	var docJSON string

	err := row.Scan(&r.ID, &r.Filename, &docJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("extraction not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan extraction")
	}

	r.Extraction = &model.DocumentExtraction{}
	if err := json.Unmarshal([]byte(docJSON), r.Extraction); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal extraction")
	}
	return &r, nil
}
