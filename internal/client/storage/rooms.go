package storage

import (
	"context"

	"github.com/iudanet/roomkeeper/internal/models"
)

//go:generate go tool moq -out roomstorage_mock.go . RoomStorage

// RoomStorage defines interface for the local durable room cache.
// Кеш всегда write-first и никогда не является источником истины:
// авторитетное состояние живет в удаленном Room Registry.
type RoomStorage interface {
	// SaveRoom stores or updates a room record
	SaveRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room record by ID
	// Returns ErrRoomNotFound if record doesn't exist
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// ListRooms returns all cached room records
	ListRooms(ctx context.Context) ([]*models.Room, error)

	// DeleteRoom removes a room record from the cache.
	// Используется только реконсилятором: авторитетное удаление
	// происходит в удаленном Registry.
	DeleteRoom(ctx context.Context, id string) error
}
