package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/roomkeeper/internal/client/storage"
	"github.com/iudanet/roomkeeper/internal/models"
)

// SaveRoom stores or updates a room record
func (s *Storage) SaveRoom(ctx context.Context, room *models.Room) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		// Сериализуем запись, всегда в текущей версии схемы
		data, err := models.EncodeRoom(room)
		if err != nil {
			return fmt.Errorf("failed to encode room: %w", err)
		}

		if err := bucket.Put([]byte(room.ID), data); err != nil {
			return fmt.Errorf("failed to save room: %w", err)
		}

		return nil
	})
}

// GetRoom retrieves a room record by ID
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room *models.Room

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRoomNotFound
		}

		// Десериализация выполняет миграцию устаревшей схемы
		var err error
		room, err = models.DecodeRoom(data)
		if err != nil {
			return fmt.Errorf("failed to decode room: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return room, nil
}

// ListRooms returns all cached room records
func (s *Storage) ListRooms(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			room, err := models.DecodeRoom(v)
			if err != nil {
				return fmt.Errorf("failed to decode room %s: %w", k, err)
			}

			rooms = append(rooms, room)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// DeleteRoom removes a room record from the cache
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrRoomNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
}
