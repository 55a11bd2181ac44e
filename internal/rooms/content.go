package rooms

import (
	"context"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
)

//go:generate go tool moq -out contentstore_mock.go . ContentStore

// ContentItem описывает один элемент контента canvas в том минимальном
// виде, который нужен history lock: идентификатор и время создания.
// Нулевой CreatedAt означает, что время создания неизвестно.
type ContentItem struct {
	CreatedAt time.Time
	ID        string
}

// ContentStore определяет контракт canvas-коллаборатора: перечисление
// контента комнаты и проставление/снятие lock-штампов.
// Само содержимое элементов этой подсистеме недоступно и не нужно.
type ContentStore interface {
	// ListContent returns all content items of the room
	ListContent(ctx context.Context, roomID string) ([]ContentItem, error)

	// LockContent stamps the given items as locked at the given time
	LockContent(ctx context.Context, roomID string, ids []string, at time.Time, byID, byName string) error

	// UnlockContent clears the lock stamp from the given items
	UnlockContent(ctx context.Context, roomID string, ids []string) error
}

// CanEdit решает, можно ли редактировать элемент контента в комнате.
//
// Правила:
//   - владелец комнаты всегда может редактировать, независимо от lock
//   - без history lock редактирование всегда разрешено
//   - элемент без времени создания консервативно считается pre-lock
//   - иначе редактируем тогда и только тогда, когда элемент создан
//     не раньше момента включения lock
func CanEdit(item ContentItem, room *models.Room, userID string) bool {
	if userID != "" && userID == room.OwnerID {
		return true
	}
	if !room.HistoryLocked {
		return true
	}
	if room.HistoryLockTime == nil {
		// Инвариант нарушен (lock без timestamp) — запрещаем
		return false
	}
	if item.CreatedAt.IsZero() {
		return false
	}
	return !item.CreatedAt.Before(*room.HistoryLockTime)
}
