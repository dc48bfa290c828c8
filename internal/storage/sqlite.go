package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/meteosandra/market-weather/internal/meteo"
)

const defaultListLimit = 50

// tsLayout is fixed-width so created_at sorts lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps a history of served analyses (pure Go driver modernc.org/sqlite).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL helps the scheduler and request handlers write side by side.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS analyses (
        id TEXT PRIMARY KEY,
        city TEXT NOT NULL,
        day TEXT NOT NULL,
        date TEXT NOT NULL,
        result TEXT NOT NULL,
        created_at TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS analyses_created_at ON analyses(created_at);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RecordAnalysis inserts rec, assigning an id when it has none.
func (s *SQLiteStore) RecordAnalysis(ctx context.Context, rec meteo.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	result, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses(id, city, day, date, result, created_at) VALUES(?,?,?,?,?,?)`,
		rec.ID, rec.City, rec.Day, rec.Date, string(result), rec.CreatedAt.UTC().Format(tsLayout))
	return err
}

// ListAnalyses returns up to limit records, newest first.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, limit int) ([]meteo.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, day, date, result, created_at FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meteo.AnalysisRecord, 0)
	for rows.Next() {
		var (
			rec    meteo.AnalysisRecord
			result string
			ts     string
		)
		if err := rows.Scan(&rec.ID, &rec.City, &rec.Day, &rec.Date, &result, &ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(result), &rec.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis %s: %w", rec.ID, err)
		}
		if t, err := time.Parse(tsLayout, ts); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ meteo.History = (*SQLiteStore)(nil)
