package rooms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/roomkeeper/internal/models"
)

func TestCanEdit(t *testing.T) {
	lockTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	lockedRoom := &models.Room{
		ID:              "room-1",
		OwnerID:         "owner-1",
		Permission:      models.PermissionAssist,
		HistoryLocked:   true,
		HistoryLockTime: &lockTime,
	}
	openRoom := &models.Room{
		ID:         "room-1",
		OwnerID:    "owner-1",
		Permission: models.PermissionEditor,
	}
	// Инвариант нарушен: lock без timestamp
	brokenRoom := &models.Room{
		ID:            "room-1",
		OwnerID:       "owner-1",
		HistoryLocked: true,
	}

	preLock := ContentItem{ID: "item-old", CreatedAt: lockTime.Add(-time.Hour)}
	atLock := ContentItem{ID: "item-at", CreatedAt: lockTime}
	postLock := ContentItem{ID: "item-new", CreatedAt: lockTime.Add(time.Minute)}
	noStamp := ContentItem{ID: "item-unknown"}

	tests := []struct {
		name   string
		room   *models.Room
		item   ContentItem
		userID string
		want   bool
	}{
		{"owner edits pre-lock content", lockedRoom, preLock, "owner-1", true},
		{"owner edits unstamped content", lockedRoom, noStamp, "owner-1", true},
		{"guest blocked on pre-lock content", lockedRoom, preLock, "guest-1", false},
		{"guest edits content created at lock time", lockedRoom, atLock, "guest-1", true},
		{"guest edits post-lock content", lockedRoom, postLock, "guest-1", true},
		{"unstamped content is conservatively pre-lock", lockedRoom, noStamp, "guest-1", false},
		{"anonymous guest blocked on pre-lock content", lockedRoom, preLock, "", false},
		{"no lock, guest edits anything", openRoom, preLock, "guest-1", true},
		{"no lock, unstamped content editable", openRoom, noStamp, "guest-1", true},
		{"lock without timestamp blocks guests", brokenRoom, postLock, "guest-1", false},
		{"lock without timestamp does not block owner", brokenRoom, postLock, "owner-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(tt.item, tt.room, tt.userID))
		})
	}
}
