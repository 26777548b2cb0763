package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the key has not been seen for userID.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete removes the key stored for userID, if any.
	Delete(ctx context.Context, key string, userID uuid.UUID) error
	// DeleteExpired removes keys that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
