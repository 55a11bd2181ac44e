package boltdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
)

var keyLastSyncTime = []byte("last_sync_time")

// SaveLastSyncTime saves the time of the last successful reconciliation
func (s *Storage) SaveLastSyncTime(ctx context.Context, t time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		// Храним unix nanoseconds строкой
		value := strconv.FormatInt(t.UnixNano(), 10)
		if err := bucket.Put(keyLastSyncTime, []byte(value)); err != nil {
			return fmt.Errorf("failed to save last sync time: %w", err)
		}

		return nil
	})
}

// GetLastSyncTime retrieves the time of the last successful reconciliation.
// Returns zero time if no reconciliation has been performed yet.
func (s *Storage) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	var result time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data := bucket.Get(keyLastSyncTime)
		if data == nil {
			return nil // синхронизаций еще не было
		}

		nanos, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse last sync time: %w", err)
		}

		result = time.Unix(0, nanos).UTC()
		return nil
	})

	if err != nil {
		return time.Time{}, err
	}

	return result, nil
}
