package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/creativemarketingpro/backend/internal/model"
)

func openTestSqlite(t *testing.T) *SqliteContactRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "contact.db")
	repo, err := OpenSqliteContactRepository(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSqliteContactRepository_CreateMessage(t *testing.T) {
	repo := openTestSqlite(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 1, 9, 30, 0, 123000000, time.UTC)
	stored, err := repo.CreateMessage(ctx, model.NewContactMessage{
		Name:      "Jo Lee",
		Email:     "jo@x.com",
		Subject:   "Hi",
		Message:   "This is a long enough message.",
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected ID to be set")
	}
	if !stored.CreatedAt.Equal(createdAt) {
		t.Errorf("expected createdAt %v, got %v", createdAt, stored.CreatedAt)
	}

	var subject, rawCreatedAt string
	err = repo.db.QueryRowContext(ctx,
		`SELECT subject, created_at FROM contact_messages WHERE id = ?`, stored.ID,
	).Scan(&subject, &rawCreatedAt)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if subject != "Hi" {
		t.Errorf("expected subject=Hi, got %q", subject)
	}
	if rawCreatedAt != "2026-03-01T09:30:00.123Z" {
		t.Errorf("unexpected created_at %q", rawCreatedAt)
	}
}

func TestSqliteContactRepository_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.db")
	ctx := context.Background()

	first, err := OpenSqliteContactRepository(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := first.CreateMessage(ctx, model.NewContactMessage{Name: "Al", Email: "a@b.com", Message: "0123456789", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	_ = first.Close()

	second, err := OpenSqliteContactRepository(ctx, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	n, err := second.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 message after reopen, got %d", n)
	}
}

func TestSqliteContactRepository_ConcurrentCreates(t *testing.T) {
	repo := openTestSqlite(t)
	ctx := context.Background()

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := repo.CreateMessage(ctx, model.NewContactMessage{
				Name: "Jo", Email: "jo@x.com", Message: "concurrent message", CreatedAt: time.Now(),
			})
			if err != nil {
				t.Errorf("CreateMessage: %v", err)
				return
			}
			ids <- stored.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != n || len(seen) != n {
		t.Errorf("expected %d messages, got count=%d ids=%d", n, count, len(seen))
	}
}

func TestSqliteContactRepository_ClosedIsUnavailable(t *testing.T) {
	repo := openTestSqlite(t)
	_ = repo.Close()

	_, err := repo.CreateMessage(context.Background(), model.NewContactMessage{Name: "Jo", Email: "jo@x.com", Message: "0123456789"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if err := repo.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable from Ping, got %v", err)
	}
}

func TestOpenSqliteContactRepository_EmptyPath(t *testing.T) {
	if _, err := OpenSqliteContactRepository(context.Background(), "  "); err == nil {
		t.Error("expected error for empty path")
	}
}
