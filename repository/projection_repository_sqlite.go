package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pandaledger/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ProjectionRepositorySQLite keeps projection history in a SQLite file.
type ProjectionRepositorySQLite struct {
	db *sql.DB
}

// OpenProjectionRepositorySQLite opens or creates the database at dbPath.
// ":memory:" opens a private in-memory database.
func OpenProjectionRepositorySQLite(dbPath string) (*ProjectionRepositorySQLite, error) {
	dsn := ":memory:"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	// a second connection to ":memory:" would see a different database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ProjectionRepositorySQLite{db: db}, nil
}

func (r *ProjectionRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *ProjectionRepositorySQLite) Save(ctx context.Context, p domain.Projection) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projections (kind, input, result, created_at) VALUES (?, ?, ?, ?)",
		string(p.Kind), p.Input, p.Result, createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving projection: %w", err)
	}
	return nil
}

func (r *ProjectionRepositorySQLite) List(
	ctx context.Context,
	kind domain.ProjectionKind,
	limit int,
) ([]domain.Projection, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, input, result, created_at FROM projections
		 WHERE ? = '' OR kind = ?
		 ORDER BY id DESC LIMIT ?`,
		string(kind), string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing projections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Projection{}
	for rows.Next() {
		var p domain.Projection
		var kindStr, createdAt string
		if err := rows.Scan(&p.ID, &kindStr, &p.Input, &p.Result, &createdAt); err != nil {
			return nil, err
		}
		p.Kind = domain.ProjectionKind(kindStr)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			p.CreatedAt = t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
