package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithmirza/datanyx/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

const calculationsSchema = `
CREATE TABLE IF NOT EXISTS calculations (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	profile     TEXT NOT NULL,
	assessment  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`

// CalculationRepositorySQLite persists calculation records in a SQLite file.
type CalculationRepositorySQLite struct {
	db *sql.DB
}

// OpenCalculationRepositorySQLite opens or creates the database at dbPath.
func OpenCalculationRepositorySQLite(dbPath string) (*CalculationRepositorySQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening calculations db: %w", err)
	}

	if _, err := db.Exec(calculationsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &CalculationRepositorySQLite{db: db}, nil
}

func (r *CalculationRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *CalculationRepositorySQLite) Save(record domain.CalculationRecord) error {
	profile, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	assessment, err := json.Marshal(record.Assessment)
	if err != nil {
		return fmt.Errorf("encoding assessment: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO calculations (id, created_at, profile, assessment) VALUES (?, ?, ?, ?)`,
		record.ID, record.CreatedAt.UnixNano(), string(profile), string(assessment),
	)
	if err != nil {
		return fmt.Errorf("inserting calculation %s: %w", record.ID, err)
	}
	return nil
}

func (r *CalculationRepositorySQLite) Recent(limit int) ([]domain.CalculationRecord, error) {
	query := `SELECT id, created_at, profile, assessment FROM calculations ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying calculations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.CalculationRecord, 0)
	for rows.Next() {
		var (
			rec        domain.CalculationRecord
			createdAt  int64
			profile    string
			assessment string
		)
		if err := rows.Scan(&rec.ID, &createdAt, &profile, &assessment); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(profile), &rec.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(assessment), &rec.Assessment); err != nil {
			return nil, fmt.Errorf("decoding assessment of %s: %w", rec.ID, err)
		}
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *CalculationRepositorySQLite) DeleteBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM calculations WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("deleting calculations: %w", err)
	}
	return res.RowsAffected()
}
