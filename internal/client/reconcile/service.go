package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/roomkeeper/internal/client/storage"
	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/rooms"
	"github.com/iudanet/roomkeeper/pkg/api"
)

//go:generate go tool moq -out registry_mock.go . Registry

// Registry определяет подмножество Registry API, нужное реконсиляции
type Registry interface {
	// ListRooms возвращает авторитетный набор комнат владельца токена
	ListRooms(ctx context.Context, accessToken string) ([]api.RoomRecord, error)
}

// ErrSyncDegraded сигнализирует, что Registry был недоступен и реконсиляция
// отработала в cache-only режиме. Это восстановимое состояние, НЕ
// "комната не существует": вызывающий код продолжает работу с кешем
// и повторяет реконсиляцию позже.
var ErrSyncDegraded = errors.New("sync degraded: registry unreachable")

// Result contains reconciliation results
type Result struct {
	Rooms []*models.Room // итоговый согласованный набор

	Removed int // записей удалено из кеша (удалены удаленно)
	Skipped int // записей пропущено при write-back (конфликт per-room lock)

	// Degraded true, если Registry был недоступен и вернулся локальный
	// набор без изменений. DegradedCause оборачивает ErrSyncDegraded.
	Degraded      bool
	DegradedCause error
}

// Service сводит локальный кеш и удаленный Registry в один согласованный
// набор комнат. Чтения не блокируются; write-back каждой записи проходит
// через per-room LockTable, общий с машиной состояний permission.
type Service struct {
	registry        Registry
	roomStorage     storage.RoomStorage
	metadataStorage storage.MetadataStorage
	locks           *rooms.LockTable
	logger          *slog.Logger

	grace time.Duration
	now   func() time.Time

	// onChange вызывается с итоговым набором после write-back.
	// Хук для слоев-потребителей (например, агрегации аналитики).
	onChange func([]*models.Room)
}

// Option настраивает Service.
type Option func(*Service)

// WithGraceWindow переопределяет grace window удаления.
func WithGraceWindow(d time.Duration) Option {
	return func(s *Service) { s.grace = d }
}

// WithNow переопределяет источник времени. Используется в тестах.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithChangeNotifier устанавливает хук уведомления об изменениях.
func WithChangeNotifier(fn func([]*models.Room)) Option {
	return func(s *Service) { s.onChange = fn }
}

// NewService creates a new reconciliation service
func NewService(registry Registry, roomStorage storage.RoomStorage, metadataStorage storage.MetadataStorage, locks *rooms.LockTable, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		registry:        registry,
		roomStorage:     roomStorage,
		metadataStorage: metadataStorage,
		locks:           locks,
		logger:          logger,
		grace:           DefaultGraceWindow,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile выполняет полную реконсиляцию:
//  1. читает локальный кеш
//  2. забирает авторитетный набор из Registry (одна повторная попытка)
//  3. сводит наборы (Merge) и разрешает коллизии имен
//  4. write-through в кеш под per-room locks
//  5. уведомляет подписчиков
//
// Недоступный Registry не является ошибкой вызова: возвращается локальный
// набор с Degraded=true. Повторный вызов без промежуточных записей дает
// тот же результат.
func (s *Service) Reconcile(ctx context.Context, accessToken string) (*Result, error) {
	local, err := s.roomStorage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local rooms: %w", err)
	}

	remote, err := s.fetchRemote(ctx, accessToken)
	if err != nil {
		// Деградация в cache-only режим: локальный набор без изменений
		s.logger.Warn("Registry unreachable, continuing with cache only", "error", err)
		return &Result{
			Rooms:         local,
			Degraded:      true,
			DegradedCause: fmt.Errorf("%w: %w", ErrSyncDegraded, err),
		}, nil
	}

	now := s.now()
	merged := Merge(local, remote, now, s.grace)
	DisambiguateNames(merged)

	result := &Result{Rooms: merged}

	mergedIDs := make(map[string]bool, len(merged))
	for _, room := range merged {
		mergedIDs[room.ID] = true
	}

	// Write-through: сохраняем итоговый набор
	for _, room := range merged {
		if err := s.writeBack(ctx, room); err != nil {
			if errors.Is(err, rooms.ErrTransitionConflict) {
				s.logger.Warn("Skipping room write-back, mutation in flight", "room_id", room.ID)
				result.Skipped++
				continue
			}
			return nil, err
		}
	}

	// Удаляем из кеша записи, не пережившие merge
	for _, room := range local {
		if mergedIDs[room.ID] {
			continue
		}
		if err := s.removeLocal(ctx, room.ID); err != nil {
			if errors.Is(err, rooms.ErrTransitionConflict) {
				s.logger.Warn("Skipping room removal, mutation in flight", "room_id", room.ID)
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Removed++
	}

	if err := s.metadataStorage.SaveLastSyncTime(ctx, now); err != nil {
		// Не прерываем реконсиляцию из-за ошибки сохранения метки
		s.logger.Warn("Failed to save last sync time", "error", err)
	}

	s.logger.Info("Reconciliation completed",
		"local", len(local),
		"remote", len(remote),
		"merged", len(merged),
		"removed", result.Removed,
		"skipped", result.Skipped)

	if s.onChange != nil {
		s.onChange(merged)
	}

	return result, nil
}

// fetchRemote забирает авторитетный набор комнат с одной повторной попыткой
func (s *Service) fetchRemote(ctx context.Context, accessToken string) ([]*models.Room, error) {
	var records []api.RoomRecord

	backoff := retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		records, err = s.registry.ListRooms(ctx, accessToken)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	remote := make([]*models.Room, 0, len(records))
	for i := range records {
		remote = append(remote, roomFromAPI(&records[i]))
	}
	return remote, nil
}

// writeBack сохраняет одну запись под per-room lock
func (s *Service) writeBack(ctx context.Context, room *models.Room) error {
	release, err := s.locks.Acquire(ctx, room.ID)
	if err != nil {
		return err
	}
	defer release()

	if err := s.roomStorage.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("failed to write back room %s: %w", room.ID, err)
	}
	return nil
}

// removeLocal удаляет одну запись из кеша под per-room lock
func (s *Service) removeLocal(ctx context.Context, roomID string) error {
	release, err := s.locks.Acquire(ctx, roomID)
	if err != nil {
		return err
	}
	defer release()

	if err := s.roomStorage.DeleteRoom(ctx, roomID); err != nil && !errors.Is(err, storage.ErrRoomNotFound) {
		return fmt.Errorf("failed to remove room %s: %w", roomID, err)
	}
	return nil
}

// roomFromAPI конвертирует wire-запись в модель
func roomFromAPI(r *api.RoomRecord) *models.Room {
	return &models.Room{
		ID:                  r.ID,
		Name:                r.Name,
		OwnerID:             r.OwnerID,
		OwnerName:           r.OwnerName,
		CreatedAt:           r.CreatedAt,
		LastModified:        r.LastModified,
		Permission:          models.Permission(r.Permission),
		Shared:              r.Shared,
		Publish:             r.Publish,
		HistoryLocked:       r.HistoryLocked,
		HistoryLockTime:     r.HistoryLockTime,
		HistoryLockedBy:     r.HistoryLockedBy,
		HistoryLockedByName: r.HistoryLockedByName,
		SchemaVersion:       models.RoomSchemaVersion,
	}
}
