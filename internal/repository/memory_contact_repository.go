package repository

import (
	"context"
	"sync"

	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/google/uuid"
)

// MemoryContactRepository keeps contact messages in process memory.
// Contents are lost on restart.
type MemoryContactRepository struct {
	mu       sync.Mutex
	messages []*model.ContactMessage
	closed   bool
}

// NewMemoryContactRepository creates an empty in-memory store.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

// CreateMessage appends msg under a fresh UUID and returns a copy of the stored record.
func (r *MemoryContactRepository) CreateMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrUnavailable
	}

	stored := msg.Stored(uuid.NewString())
	r.messages = append(r.messages, stored)

	out := *stored
	return &out, nil
}

// Ping reports ErrUnavailable once the store is closed.
func (r *MemoryContactRepository) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrUnavailable
	}
	return nil
}

// Len returns the number of stored messages.
func (r *MemoryContactRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// Messages returns a snapshot of the stored messages in insertion order.
func (r *MemoryContactRepository) Messages() []model.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ContactMessage, len(r.messages))
	for i, m := range r.messages {
		out[i] = *m
	}
	return out
}

// Close makes every later call fail with ErrUnavailable.
func (r *MemoryContactRepository) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}
