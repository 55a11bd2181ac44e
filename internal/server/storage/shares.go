package storage

import (
	"context"

	"github.com/iudanet/roomkeeper/internal/models"
)

// ShareStore defines interface for the share configuration registry.
// Это единственный источник истины о том, жива ли выданная capability:
// каждый verify токена сверяется именно с этим хранилищем.
type ShareStore interface {
	// CreateShare inserts a new share config
	CreateShare(ctx context.Context, share *models.ShareConfig) error

	// GetShare retrieves a share config by id
	// Returns ErrShareNotFound if config doesn't exist
	GetShare(ctx context.Context, shareID string) (*models.ShareConfig, error)

	// UpdateShare persists permission/isActive/description changes
	UpdateShare(ctx context.Context, share *models.ShareConfig) error

	// DeleteShare permanently removes a share config.
	// Все токены, ссылающиеся на нее, навсегда перестают проходить verify.
	DeleteShare(ctx context.Context, shareID string) error

	// ListSharesByRoom returns all share configs of the room
	ListSharesByRoom(ctx context.Context, roomID string) ([]*models.ShareConfig, error)
}
