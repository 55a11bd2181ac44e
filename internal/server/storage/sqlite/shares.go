package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
)

// CreateShare inserts a new share config
func (s *Storage) CreateShare(ctx context.Context, share *models.ShareConfig) error {
	query := `
		INSERT INTO share_configs (
			share_id, room_id, page_id, permission,
			is_active, created_by, description, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		share.ShareID,
		share.RoomID,
		share.PageID,
		string(share.Permission),
		boolToInt(share.IsActive),
		share.CreatedBy,
		share.Description,
		share.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert share config: %w", err)
	}

	return nil
}

// GetShare retrieves a share config by id
func (s *Storage) GetShare(ctx context.Context, shareID string) (*models.ShareConfig, error) {
	query := `
		SELECT share_id, room_id, page_id, permission,
		       is_active, created_by, description, created_at
		FROM share_configs
		WHERE share_id = ?
	`

	share := &models.ShareConfig{}
	var (
		permission string
		isActive   int
		createdAt  int64
	)

	err := s.db.QueryRowContext(ctx, query, shareID).Scan(
		&share.ShareID,
		&share.RoomID,
		&share.PageID,
		&permission,
		&isActive,
		&share.CreatedBy,
		&share.Description,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get share config: %w", err)
	}

	share.Permission = models.Permission(permission)
	share.IsActive = isActive != 0
	share.CreatedAt = time.Unix(createdAt, 0).UTC()

	return share, nil
}

// UpdateShare persists permission/isActive/description changes
func (s *Storage) UpdateShare(ctx context.Context, share *models.ShareConfig) error {
	query := `
		UPDATE share_configs
		SET permission = ?, is_active = ?, description = ?
		WHERE share_id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		string(share.Permission),
		boolToInt(share.IsActive),
		share.Description,
		share.ShareID,
	)
	if err != nil {
		return fmt.Errorf("failed to update share config: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrShareNotFound
	}

	return nil
}

// DeleteShare permanently removes a share config
func (s *Storage) DeleteShare(ctx context.Context, shareID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM share_configs WHERE share_id = ?`, shareID)
	if err != nil {
		return fmt.Errorf("failed to delete share config: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrShareNotFound
	}

	return nil
}

// ListSharesByRoom returns all share configs of the room
func (s *Storage) ListSharesByRoom(ctx context.Context, roomID string) ([]*models.ShareConfig, error) {
	query := `
		SELECT share_id, room_id, page_id, permission,
		       is_active, created_by, description, created_at
		FROM share_configs
		WHERE room_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query share configs: %w", err)
	}
	defer rows.Close()

	var result []*models.ShareConfig
	for rows.Next() {
		share := &models.ShareConfig{}
		var (
			permission string
			isActive   int
			createdAt  int64
		)

		if err := rows.Scan(
			&share.ShareID,
			&share.RoomID,
			&share.PageID,
			&permission,
			&isActive,
			&share.CreatedBy,
			&share.Description,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share config: %w", err)
		}

		share.Permission = models.Permission(permission)
		share.IsActive = isActive != 0
		share.CreatedAt = time.Unix(createdAt, 0).UTC()

		result = append(result, share)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share configs: %w", err)
	}

	return result, nil
}
