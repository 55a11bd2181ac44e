package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	fmt.Println("=== Synchronization ===")
	fmt.Println()

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	fmt.Println("Reconciling local cache with the registry...")
	fmt.Println()

	result, err := c.reconciler.Reconcile(ctx, user.Token)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if result.Degraded {
		fmt.Println("⚠ Registry unreachable, working from local cache.")
		fmt.Printf("  Cause: %v\n", result.DegradedCause)
		fmt.Println()
		fmt.Printf("Rooms in cache: %d\n", len(result.Rooms))
		fmt.Println()
		fmt.Println("Run 'roomkeeper sync' again once the registry is reachable.")
		return nil
	}

	fmt.Println("✓ Synchronization completed successfully!")
	fmt.Println()
	fmt.Printf("Rooms reconciled: %d\n", len(result.Rooms))
	if result.Removed > 0 {
		fmt.Printf("Removed locally:  %d (deleted on the registry)\n", result.Removed)
	}
	if result.Skipped > 0 {
		fmt.Printf("Skipped:          %d (busy, will be picked up next sync)\n", result.Skipped)
	}

	return nil
}
