package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed sqlite/*.sql
var sqliteMigrations embed.FS

// SqliteContactRepository stores contact messages in a single SQLite file.
type SqliteContactRepository struct {
	db *sql.DB
}

var _ ContactRepository = (*SqliteContactRepository)(nil)

// OpenSqliteContactRepository opens (or creates) the database at path and
// applies the embedded schema.
func OpenSqliteContactRepository(ctx context.Context, path string) (*SqliteContactRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: mkdir: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := applySqliteMigrations(ctx, db, sqliteMigrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &SqliteContactRepository{db: db}, nil
}

// CreateMessage inserts msg under a fresh UUID.
func (r *SqliteContactRepository) CreateMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, msg.Name, msg.Email, msg.Subject, msg.Message,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, unavailable("sqlite: insert contact message", err)
	}
	return msg.Stored(id), nil
}

// Count returns the number of stored messages.
func (r *SqliteContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n); err != nil {
		return 0, unavailable("sqlite: count contact messages", err)
	}
	return n, nil
}

// Ping checks the database handle.
func (r *SqliteContactRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("sqlite: ping", err)
	}
	return nil
}

// Close closes the database handle.
func (r *SqliteContactRepository) Close() error {
	return r.db.Close()
}

// applySqliteMigrations runs each embedded .sql file at most once, recording
// applied names in schema_migrations.
func applySqliteMigrations(ctx context.Context, db *sql.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sqlite/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".sql")

		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = ?)`, name,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}

		body, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
	}
	return nil
}
