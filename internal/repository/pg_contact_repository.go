package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
// The schema lives in migrations/ and is applied by cmd/migrate.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// CreateMessage inserts a new contact_messages row. The id comes from the
// column default; created_at is read back so the result matches the row at
// the column's microsecond precision.
func (r *PgContactRepository) CreateMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error) {
	var id string
	var createdAt time.Time
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id::text, created_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, pgError("pg: insert contact message", err)
	}
	msg.CreatedAt = createdAt.UTC()
	return msg.Stored(id), nil
}

// pgError wraps err as ErrUnavailable unless the server answered with an
// error about the statement itself, such as a violated CHECK constraint.
func pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && !pgUnavailableClass(pgErr.Code) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return unavailable(op, err)
}

// pgUnavailableClass reports whether a SQLSTATE means the server could not
// serve the request: connection exceptions, insufficient resources, operator
// intervention and system errors.
func pgUnavailableClass(code string) bool {
	if len(code) < 2 {
		return true
	}
	switch code[:2] {
	case "08", "53", "57", "58":
		return true
	}
	return false
}

// Ping checks that the pool can reach the database.
func (r *PgContactRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return unavailable("pg: ping", err)
	}
	return nil
}
