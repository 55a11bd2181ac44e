package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/pkg/api"
)

func (c *Cli) runShare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: roomkeeper share <create|list|revoke|delete>")
	}

	switch args[0] {
	case "create":
		return c.runShareCreate(ctx, args[1:])
	case "list":
		return c.runShareList(ctx, args[1:])
	case "revoke":
		return c.runShareRevoke(ctx, args[1:])
	case "delete":
		return c.runShareDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown share subcommand: %s. Use: create, list, revoke, or delete", args[0])
	}
}

func (c *Cli) runShareCreate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: roomkeeper share create <room-id> <viewer|assist|editor> [description]")
	}

	roomID := args[0]
	permission := models.Permission(args[1])
	if !permission.Valid() {
		return fmt.Errorf("invalid permission %q. Use: viewer, assist, or editor", args[1])
	}

	var description string
	if len(args) > 2 {
		description = args[2]
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	resp, err := c.apiClient.CreateShare(ctx, user.Token, api.CreateShareRequest{
		RoomID:      roomID,
		Permission:  string(permission),
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	fmt.Println("✓ Share created!")
	fmt.Println()
	fmt.Printf("Share ID:   %s\n", resp.Share.ShareID)
	fmt.Printf("Room ID:    %s\n", resp.Share.RoomID)
	fmt.Printf("Permission: %s\n", resp.Share.Permission)
	fmt.Println()
	fmt.Println("Share token (embed in the share link):")
	fmt.Println(resp.Token)
	fmt.Println()
	fmt.Println("Note: the token carries no expiry. Revoke the share to invalidate it.")

	return nil
}

func (c *Cli) runShareList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: roomkeeper share list <room-id>")
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	shares, err := c.apiClient.ListShares(ctx, user.Token, args[0])
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	fmt.Println("=== Share Configurations ===")
	fmt.Println()

	if len(shares) == 0 {
		fmt.Println("No shares found for this room.")
		return nil
	}

	for i, share := range shares {
		state := "active"
		if !share.IsActive {
			state = "revoked"
		}

		fmt.Printf("%d. %s [%s]\n", i+1, share.ShareID, state)
		fmt.Printf("   Permission: %s\n", share.Permission)
		if share.PageID != "" {
			fmt.Printf("   Page:       %s\n", share.PageID)
		}
		if share.Description != "" {
			fmt.Printf("   Note:       %s\n", share.Description)
		}
		fmt.Printf("   Created:    %s\n", formatTime(share.CreatedAt))
		fmt.Println()
	}

	return nil
}

func (c *Cli) runShareRevoke(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: roomkeeper share revoke <share-id>")
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	inactive := false
	if _, err := c.apiClient.UpdateShare(ctx, user.Token, args[0], api.UpdateShareRequest{IsActive: &inactive}); err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}

	fmt.Println("✓ Share revoked. Existing tokens no longer grant access.")

	return nil
}

func (c *Cli) runShareDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: roomkeeper share delete <share-id>")
	}

	user, err := requireIdentity()
	if err != nil {
		return err
	}

	if err := c.apiClient.DeleteShare(ctx, user.Token, args[0]); err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}

	fmt.Println("✓ Share deleted permanently.")

	return nil
}
