package rooms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/roomkeeper/internal/client/storage"
	"github.com/iudanet/roomkeeper/internal/models"
)

// Actor идентичность, от имени которой выполняется действие.
// Приходит от внешнего auth-провайдера; эта подсистема ей доверяет
// и никого не аутентифицирует.
type Actor struct {
	ID   string
	Name string
}

// Service реализует машину состояний доступа комнаты:
// переходы viewer/assist/editor и связанный с ними history lock.
//
// Все мутации одной комнаты сериализуются через LockTable.
// Переходы идемпотентны: повторное включение уже активного lock
// не трогает timestamp, повторное снятие — no-op.
type Service struct {
	store   storage.RoomStorage
	content ContentStore
	locks   *LockTable
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new permission state machine service
func NewService(store storage.RoomStorage, content ContentStore, locks *LockTable, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		content: content,
		locks:   locks,
		logger:  logger,
		now:     time.Now,
	}
}

// EnsureRoom возвращает существующую комнату или создает новую при первом
// визите владельца. Новая комната получает permission editor по умолчанию
// и не видна ни коллабораторам, ни публично.
func (s *Service) EnsureRoom(ctx context.Context, id, name string, owner Actor) (*models.Room, error) {
	release, err := s.locks.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	if id != "" {
		room, err := s.store.GetRoom(ctx, id)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, storage.ErrRoomNotFound) {
			return nil, fmt.Errorf("failed to get room: %w", err)
		}
	}

	now := s.now()
	room := &models.Room{
		ID:           id,
		Name:         name,
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		CreatedAt:    now,
		LastModified: now,
		Permission:   models.PermissionEditor,
	}
	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	if err := s.store.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	s.logger.Info("Room provisioned", "room_id", room.ID, "owner_id", owner.ID)

	return room, nil
}

// SetPermission выполняет переход машины состояний для комнаты.
//
//   - * -> assist: включает history lock, штампуя весь существующий контент
//   - assist -> editor и assist -> viewer: снимают lock (side effect одинаков,
//     различие только в итоговом уровне доступа)
//   - editor <-> viewer: контент не затрагивается
//
// Ошибка персистентности после изменения штампов контента возвращается
// наружу: локальное и авторитетное состояние в этот момент расходятся,
// молча глотать это нельзя.
func (s *Service) SetPermission(ctx context.Context, roomID string, permission models.Permission, actor Actor) (*models.Room, error) {
	if !permission.Valid() {
		return nil, fmt.Errorf("unknown permission %q", permission)
	}

	release, err := s.locks.Acquire(ctx, roomID)
	if err != nil {
		return nil, err
	}
	defer release()

	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	switch {
	case permission == models.PermissionAssist:
		if err := s.engageLock(ctx, room, actor); err != nil {
			return nil, err
		}
	case room.HistoryLocked:
		if err := s.clearLock(ctx, room); err != nil {
			return nil, err
		}
	}

	room.Permission = permission
	room.Touch(s.now())

	if err := s.store.SaveRoom(ctx, room); err != nil {
		// Штампы контента уже изменены, запись комнаты — нет
		return nil, fmt.Errorf("failed to persist room after transition, state may be inconsistent: %w", err)
	}

	s.logger.Info("Permission transition applied",
		"room_id", roomID,
		"permission", permission,
		"history_locked", room.HistoryLocked,
		"actor_id", actor.ID)

	return room, nil
}

// engageLock штампует весь существующий контент комнаты как locked.
// Если lock уже активен — no-op, timestamp не переустанавливается.
func (s *Service) engageLock(ctx context.Context, room *models.Room, actor Actor) error {
	if room.HistoryLocked {
		return nil
	}

	items, err := s.content.ListContent(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("failed to list room content: %w", err)
	}

	at := s.now()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	if len(ids) > 0 {
		if err := s.content.LockContent(ctx, room.ID, ids, at, actor.ID, actor.Name); err != nil {
			return fmt.Errorf("failed to lock room content: %w", err)
		}
	}

	room.HistoryLocked = true
	room.HistoryLockTime = &at
	room.HistoryLockedBy = actor.ID
	room.HistoryLockedByName = actor.Name

	return nil
}

// clearLock снимает штампы со всего залоченного контента комнаты.
// Если lock уже снят — no-op.
func (s *Service) clearLock(ctx context.Context, room *models.Room) error {
	if !room.HistoryLocked {
		return nil
	}

	items, err := s.content.ListContent(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("failed to list room content: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	if len(ids) > 0 {
		if err := s.content.UnlockContent(ctx, room.ID, ids); err != nil {
			return fmt.Errorf("failed to unlock room content: %w", err)
		}
	}

	room.HistoryLocked = false
	room.HistoryLockTime = nil
	room.HistoryLockedBy = ""
	room.HistoryLockedByName = ""

	return nil
}
