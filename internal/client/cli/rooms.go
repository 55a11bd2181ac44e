package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/roomkeeper/internal/rooms"
	"github.com/iudanet/roomkeeper/pkg/api"
)

func (c *Cli) runRooms(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: roomkeeper rooms <list|create>")
	}

	switch args[0] {
	case "list":
		return c.runRoomsList(ctx)
	case "create":
		return c.runRoomsCreate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown rooms subcommand: %s. Use: list or create", args[0])
	}
}

func (c *Cli) runRoomsList(ctx context.Context) error {
	fmt.Println("=== Rooms (local cache) ===")
	fmt.Println()

	roomList, err := c.boltStorage.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	if len(roomList) == 0 {
		fmt.Println("No rooms found.")
		fmt.Println()
		fmt.Println("Use 'roomkeeper rooms create <name>' to create one, or 'roomkeeper sync' to pull from the registry.")
		return nil
	}

	fmt.Printf("Found %d room(s):\n", len(roomList))
	fmt.Println()

	for i, room := range roomList {
		// DisplayName проставляется реконсиляцией при коллизиях имен
		name := room.Name
		if room.DisplayName != "" {
			name = room.DisplayName
		}

		fmt.Printf("%d. %s\n", i+1, name)
		fmt.Printf("   ID:         %s\n", room.ID)
		fmt.Printf("   Owner:      %s\n", room.OwnerName)
		fmt.Printf("   Permission: %s\n", room.Permission)
		if room.HistoryLocked {
			fmt.Printf("   History:    locked since %s\n", formatTime(derefTime(room.HistoryLockTime)))
		}
		fmt.Printf("   Modified:   %s\n", formatTime(room.LastModified))
		fmt.Println()
	}

	return nil
}

func (c *Cli) runRoomsCreate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing room name. Usage: roomkeeper rooms create <name>")
	}

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("room name cannot be empty")
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	fmt.Println("=== Create Room ===")
	fmt.Println()

	// Сначала локально: комната доступна сразу, даже без сети
	room, err := c.roomsService.EnsureRoom(ctx, "", name, rooms.Actor{ID: user.UserID, Name: user.Username})
	if err != nil {
		return fmt.Errorf("failed to create room locally: %w", err)
	}

	// Затем в Registry. Если он недоступен, grace window реконсиляции
	// сохранит локальную запись до следующего успешного sync.
	if _, err := c.apiClient.CreateRoom(ctx, user.Token, api.CreateRoomRequest{ID: room.ID, Name: room.Name}); err != nil {
		fmt.Printf("Warning: registry unreachable, room saved locally only: %v\n", err)
	}

	fmt.Println("✓ Room created!")
	fmt.Println()
	fmt.Printf("ID:   %s\n", room.ID)
	fmt.Printf("Name: %s\n", room.Name)

	return nil
}
