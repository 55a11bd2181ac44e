package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
)

// CreateRoom inserts a new room record
func (s *Storage) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (
			id, name, owner_id, owner_name, permission,
			shared, publish,
			history_locked, history_lock_time, history_locked_by, history_locked_by_name,
			created_at, last_modified
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.OwnerID,
		room.OwnerName,
		string(room.Permission),
		boolToInt(room.Shared),
		boolToInt(room.Publish),
		boolToInt(room.HistoryLocked),
		lockTimeToNullable(room.HistoryLockTime),
		room.HistoryLockedBy,
		room.HistoryLockedByName,
		room.CreatedAt.Unix(),
		room.LastModified.Unix(),
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrRoomAlreadyExists
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// SaveRoom updates an existing room record using last-write-wins.
// Запись старее хранимой не применяется: Registry авторитетен,
// он не откатывается назад по lastModified.
func (s *Storage) SaveRoom(ctx context.Context, room *models.Room) (bool, error) {
	existing, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		return false, err
	}

	if existing.LastModified.After(room.LastModified) {
		return false, nil
	}

	query := `
		UPDATE rooms
		SET name = ?, owner_name = ?, permission = ?,
		    shared = ?, publish = ?,
		    history_locked = ?, history_lock_time = ?,
		    history_locked_by = ?, history_locked_by_name = ?,
		    last_modified = ?
		WHERE id = ?
	`

	_, err = s.db.ExecContext(ctx, query,
		room.Name,
		room.OwnerName,
		string(room.Permission),
		boolToInt(room.Shared),
		boolToInt(room.Publish),
		boolToInt(room.HistoryLocked),
		lockTimeToNullable(room.HistoryLockTime),
		room.HistoryLockedBy,
		room.HistoryLockedByName,
		room.LastModified.Unix(),
		room.ID,
	)

	if err != nil {
		return false, fmt.Errorf("failed to update room: %w", err)
	}

	return true, nil
}

// GetRoom retrieves a room record by ID
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	query := `
		SELECT id, name, owner_id, owner_name, permission,
		       shared, publish,
		       history_locked, history_lock_time, history_locked_by, history_locked_by_name,
		       created_at, last_modified
		FROM rooms
		WHERE id = ?
	`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// ListRoomsByOwner returns all rooms owned by the given user
func (s *Storage) ListRoomsByOwner(ctx context.Context, ownerID string) ([]*models.Room, error) {
	query := `
		SELECT id, name, owner_id, owner_name, permission,
		       shared, publish,
		       history_locked, history_lock_time, history_locked_by, history_locked_by_name,
		       created_at, last_modified
		FROM rooms
		WHERE owner_id = ?
		ORDER BY last_modified DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var result []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		result = append(result, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return result, nil
}

// DeleteRoom removes a room record
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrRoomNotFound
	}

	return nil
}

// scanner покрывает *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanRoom читает одну строку rooms в модель
func scanRoom(row scanner) (*models.Room, error) {
	room := &models.Room{}
	var (
		permission              string
		shared, publish, locked int
		lockTime                sql.NullInt64
		createdAt, lastModified int64
	)

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.OwnerID,
		&room.OwnerName,
		&permission,
		&shared,
		&publish,
		&locked,
		&lockTime,
		&room.HistoryLockedBy,
		&room.HistoryLockedByName,
		&createdAt,
		&lastModified,
	)
	if err != nil {
		return nil, err
	}

	room.Permission = models.Permission(permission)
	room.Shared = shared != 0
	room.Publish = publish != 0
	room.HistoryLocked = locked != 0
	if lockTime.Valid {
		t := time.Unix(lockTime.Int64, 0).UTC()
		room.HistoryLockTime = &t
	}
	room.CreatedAt = time.Unix(createdAt, 0).UTC()
	room.LastModified = time.Unix(lastModified, 0).UTC()
	room.SchemaVersion = models.RoomSchemaVersion

	return room, nil
}

// boolToInt конвертирует bool в SQLite integer
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lockTimeToNullable конвертирует опциональный timestamp в nullable integer
func lockTimeToNullable(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
