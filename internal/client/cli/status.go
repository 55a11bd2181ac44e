package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Status ===")
	fmt.Println()

	if os.Getenv("ROOMKEEPER_TOKEN") != "" {
		fmt.Println("Identity:  token present (ROOMKEEPER_TOKEN)")
	} else {
		fmt.Println("Identity:  not authenticated")
	}

	roomList, err := c.boltStorage.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local cache: %w", err)
	}
	fmt.Printf("Rooms:     %d in local cache\n", len(roomList))

	lastSync, err := c.boltStorage.GetLastSyncTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last sync time: %w", err)
	}
	fmt.Printf("Last sync: %s\n", formatTime(lastSync))

	if !lastSync.IsZero() && time.Since(lastSync) > time.Hour {
		fmt.Println()
		fmt.Println("Cache may be stale. Run 'roomkeeper sync' to reconcile with the registry.")
	}

	return nil
}

// derefTime возвращает значение *time.Time или нулевое время
func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
