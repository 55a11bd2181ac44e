package storage

import "errors"

// Common client storage errors
var (
	// ErrRoomNotFound indicates that room record was not found in the cache
	ErrRoomNotFound = errors.New("room not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
