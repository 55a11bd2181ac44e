package storage

import "errors"

// Common storage errors
var (
	// ErrRoomNotFound indicates that room was not found in storage
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomAlreadyExists indicates that room with this id already exists
	ErrRoomAlreadyExists = errors.New("room already exists")

	// ErrShareNotFound indicates that share config was not found
	// (never issued or permanently deleted by the owner)
	ErrShareNotFound = errors.New("share config not found")
)
