package storage

import (
	"context"
	"time"
)

//go:generate go tool moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTime saves the time of the last successful reconciliation
	SaveLastSyncTime(ctx context.Context, t time.Time) error

	// GetLastSyncTime retrieves the time of the last successful reconciliation
	// Returns zero time if no reconciliation has been performed yet
	GetLastSyncTime(ctx context.Context) (time.Time, error)
}
