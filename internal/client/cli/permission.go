package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/rooms"
	"github.com/iudanet/roomkeeper/pkg/api"
)

// ContentStub реализует rooms.ContentStore для CLI. Контент комнат живет
// в canvas-приложении; CLI оперирует только room-level состоянием, поэтому
// перечисление контента всегда пусто, а штампы на элементах не проставляются.
type ContentStub struct{}

func (ContentStub) ListContent(_ context.Context, _ string) ([]rooms.ContentItem, error) {
	return nil, nil
}

func (ContentStub) LockContent(_ context.Context, _ string, _ []string, _ time.Time, _, _ string) error {
	return nil
}

func (ContentStub) UnlockContent(_ context.Context, _ string, _ []string) error {
	return nil
}

func (c *Cli) runPermission(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "set" {
		return fmt.Errorf("usage: roomkeeper permission set <room-id> <viewer|assist|editor>")
	}
	return c.runPermissionSet(ctx, args[1:])
}

func (c *Cli) runPermissionSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: roomkeeper permission set <room-id> <viewer|assist|editor>")
	}

	roomID := args[0]
	permission := models.Permission(args[1])
	if !permission.Valid() {
		return fmt.Errorf("invalid permission %q. Use: viewer, assist, or editor", args[1])
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	// Переход выполняется локально машиной состояний (history lock
	// включается/снимается атомарно с permission), затем уходит в Registry
	room, err := c.roomsService.SetPermission(ctx, roomID, permission, rooms.Actor{ID: user.UserID, Name: user.Username})
	if err != nil {
		return fmt.Errorf("failed to set permission: %w", err)
	}

	perm := string(room.Permission)
	req := api.UpdateRoomRequest{
		Permission:    &perm,
		HistoryLocked: &room.HistoryLocked,
		LastModified:  room.LastModified,
	}
	if room.HistoryLocked {
		req.HistoryLockTime = room.HistoryLockTime
		req.HistoryLockedBy = &room.HistoryLockedBy
		req.HistoryLockedByName = &room.HistoryLockedByName
	}

	if _, err := c.apiClient.UpdateRoom(ctx, user.Token, roomID, req); err != nil {
		fmt.Printf("Warning: registry unreachable, change applied locally only: %v\n", err)
		fmt.Println("The registry copy will converge on a later update.")
	}

	fmt.Println("✓ Permission updated!")
	fmt.Println()
	fmt.Printf("Room:       %s\n", room.ID)
	fmt.Printf("Permission: %s\n", room.Permission)
	if room.HistoryLocked {
		fmt.Printf("History:    locked since %s\n", formatTime(derefTime(room.HistoryLockTime)))
	} else {
		fmt.Printf("History:    open\n")
	}

	return nil
}
