package storage

import (
	"context"

	"github.com/iudanet/roomkeeper/internal/models"
)

// RoomStore defines interface for the authoritative room registry
type RoomStore interface {
	// CreateRoom inserts a new room record
	// Returns ErrRoomAlreadyExists if the id is taken
	CreateRoom(ctx context.Context, room *models.Room) error

	// SaveRoom updates an existing room record using last-write-wins:
	// the write is applied only if room.LastModified is not older than
	// the stored record. Returns true if the write was applied.
	SaveRoom(ctx context.Context, room *models.Room) (bool, error)

	// GetRoom retrieves a room record by ID
	// Returns ErrRoomNotFound if record doesn't exist
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// ListRoomsByOwner returns all rooms owned by the given user
	ListRoomsByOwner(ctx context.Context, ownerID string) ([]*models.Room, error)

	// DeleteRoom removes a room record. Это единственное авторитетное
	// удаление комнаты во всей системе.
	DeleteRoom(ctx context.Context, id string) error
}
