package repository

import (
	"context"

	"github.com/creativemarketingpro/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the append-only message store.
// Implementations must be safe for concurrent use and assign a distinct ID on
// every successful CreateMessage.
type ContactRepository interface {
	DB
	CreateMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error)
}
