package rooms

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomkeeper/internal/client/storage"
	"github.com/iudanet/roomkeeper/internal/models"
)

// memStore хранит комнаты в map, эмулируя RoomStorage в тестах машины состояний
func memStore(rooms map[string]*models.Room) *storage.RoomStorageMock {
	return &storage.RoomStorageMock{
		GetRoomFunc: func(ctx context.Context, id string) (*models.Room, error) {
			if room, ok := rooms[id]; ok {
				return room.Clone(), nil
			}
			return nil, storage.ErrRoomNotFound
		},
		SaveRoomFunc: func(ctx context.Context, room *models.Room) error {
			rooms[room.ID] = room.Clone()
			return nil
		},
	}
}

func emptyContent() *ContentStoreMock {
	return &ContentStoreMock{
		ListContentFunc: func(ctx context.Context, roomID string) ([]ContentItem, error) {
			return nil, nil
		},
		LockContentFunc: func(ctx context.Context, roomID string, ids []string, at time.Time, byID, byName string) error {
			return nil
		},
		UnlockContentFunc: func(ctx context.Context, roomID string, ids []string) error {
			return nil
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestEnsureRoom_CreatesNewRoom(t *testing.T) {
	rooms := make(map[string]*models.Room)
	service := NewService(memStore(rooms), emptyContent(), NewLockTable(), testLogger())

	room, err := service.EnsureRoom(context.Background(), "", "Design Review", Actor{ID: "user-1", Name: "alice"})
	require.NoError(t, err)

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, "Design Review", room.Name)
	assert.Equal(t, "user-1", room.OwnerID)
	assert.Equal(t, models.PermissionEditor, room.Permission)
	assert.False(t, room.Shared)
	assert.False(t, room.Publish)
	assert.False(t, room.HistoryLocked)
	assert.False(t, room.CreatedAt.IsZero())

	// Комната реально сохранена
	require.Contains(t, rooms, room.ID)
}

func TestEnsureRoom_ReturnsExisting(t *testing.T) {
	rooms := make(map[string]*models.Room)
	service := NewService(memStore(rooms), emptyContent(), NewLockTable(), testLogger())

	first, err := service.EnsureRoom(context.Background(), "room-1", "Board", Actor{ID: "user-1"})
	require.NoError(t, err)

	// Повторный визит не создает новую запись и не меняет существующую
	second, err := service.EnsureRoom(context.Background(), "room-1", "Renamed", Actor{ID: "user-2"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Board", second.Name)
	assert.Equal(t, "user-1", second.OwnerID)
	assert.Len(t, rooms, 1)
}

func TestSetPermission_AssistEngagesLock(t *testing.T) {
	rooms := map[string]*models.Room{
		"room-1": {ID: "room-1", Name: "Board", OwnerID: "user-1", Permission: models.PermissionEditor},
	}

	content := emptyContent()
	content.ListContentFunc = func(ctx context.Context, roomID string) ([]ContentItem, error) {
		return []ContentItem{
			{ID: "item-1", CreatedAt: time.Now().Add(-time.Hour)},
			{ID: "item-2", CreatedAt: time.Now().Add(-time.Minute)},
		}, nil
	}

	service := NewService(memStore(rooms), content, NewLockTable(), testLogger())

	room, err := service.SetPermission(context.Background(), "room-1", models.PermissionAssist, Actor{ID: "user-1", Name: "alice"})
	require.NoError(t, err)

	assert.Equal(t, models.PermissionAssist, room.Permission)
	assert.True(t, room.HistoryLocked)
	require.NotNil(t, room.HistoryLockTime)
	assert.Equal(t, "user-1", room.HistoryLockedBy)
	assert.Equal(t, "alice", room.HistoryLockedByName)

	// Весь существующий контент получил штамп одним вызовом
	calls := content.LockContentCalls()
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []string{"item-1", "item-2"}, calls[0].Ids)
	assert.Equal(t, *room.HistoryLockTime, calls[0].At)
}

func TestSetPermission_AssistIdempotent(t *testing.T) {
	rooms := map[string]*models.Room{
		"room-1": {ID: "room-1", OwnerID: "user-1", Permission: models.PermissionEditor},
	}

	content := emptyContent()
	service := NewService(memStore(rooms), content, NewLockTable(), testLogger())

	first, err := service.SetPermission(context.Background(), "room-1", models.PermissionAssist, Actor{ID: "user-1"})
	require.NoError(t, err)
	require.NotNil(t, first.HistoryLockTime)
	firstStamp := *first.HistoryLockTime

	// Повторный переход в assist не переустанавливает timestamp
	second, err := service.SetPermission(context.Background(), "room-1", models.PermissionAssist, Actor{ID: "user-1"})
	require.NoError(t, err)

	require.NotNil(t, second.HistoryLockTime)
	assert.Equal(t, firstStamp, *second.HistoryLockTime)
	assert.Len(t, content.ListContentCalls(), 1)
}

func TestSetPermission_LeavingAssistClearsLock(t *testing.T) {
	for _, target := range []models.Permission{models.PermissionEditor, models.PermissionViewer} {
		t.Run(string(target), func(t *testing.T) {
			lockTime := time.Now().Add(-time.Hour)
			rooms := map[string]*models.Room{
				"room-1": {
					ID:              "room-1",
					OwnerID:         "user-1",
					Permission:      models.PermissionAssist,
					HistoryLocked:   true,
					HistoryLockTime: &lockTime,
					HistoryLockedBy: "user-1",
				},
			}

			content := emptyContent()
			content.ListContentFunc = func(ctx context.Context, roomID string) ([]ContentItem, error) {
				return []ContentItem{{ID: "item-1", CreatedAt: lockTime.Add(-time.Hour)}}, nil
			}

			service := NewService(memStore(rooms), content, NewLockTable(), testLogger())

			room, err := service.SetPermission(context.Background(), "room-1", target, Actor{ID: "user-1"})
			require.NoError(t, err)

			assert.Equal(t, target, room.Permission)
			assert.False(t, room.HistoryLocked)
			assert.Nil(t, room.HistoryLockTime)
			assert.Empty(t, room.HistoryLockedBy)

			calls := content.UnlockContentCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, []string{"item-1"}, calls[0].Ids)
		})
	}
}

func TestSetPermission_EditorViewerDoesNotTouchContent(t *testing.T) {
	rooms := map[string]*models.Room{
		"room-1": {ID: "room-1", OwnerID: "user-1", Permission: models.PermissionEditor},
	}

	content := emptyContent()
	service := NewService(memStore(rooms), content, NewLockTable(), testLogger())

	room, err := service.SetPermission(context.Background(), "room-1", models.PermissionViewer, Actor{ID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, models.PermissionViewer, room.Permission)
	assert.False(t, room.HistoryLocked)
	assert.Empty(t, content.ListContentCalls())
	assert.Empty(t, content.LockContentCalls())
	assert.Empty(t, content.UnlockContentCalls())
}

func TestSetPermission_UnknownPermission(t *testing.T) {
	service := NewService(memStore(nil), emptyContent(), NewLockTable(), testLogger())

	_, err := service.SetPermission(context.Background(), "room-1", models.Permission("admin"), Actor{ID: "user-1"})
	assert.Error(t, err)
}

func TestSetPermission_SaveFailureSurfaced(t *testing.T) {
	lockTime := time.Now()
	store := &storage.RoomStorageMock{
		GetRoomFunc: func(ctx context.Context, id string) (*models.Room, error) {
			return &models.Room{ID: id, OwnerID: "user-1", Permission: models.PermissionEditor}, nil
		},
		SaveRoomFunc: func(ctx context.Context, room *models.Room) error {
			return errors.New("disk full")
		},
	}

	content := emptyContent()
	content.ListContentFunc = func(ctx context.Context, roomID string) ([]ContentItem, error) {
		return []ContentItem{{ID: "item-1", CreatedAt: lockTime.Add(-time.Hour)}}, nil
	}

	service := NewService(store, content, NewLockTable(), testLogger())

	// Штампы контента изменены, запись комнаты не сохранилась:
	// расхождение обязано всплыть наружу
	_, err := service.SetPermission(context.Background(), "room-1", models.PermissionAssist, Actor{ID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state may be inconsistent")
	assert.Len(t, content.LockContentCalls(), 1)
}

func TestSetPermission_RoomNotFound(t *testing.T) {
	service := NewService(memStore(map[string]*models.Room{}), emptyContent(), NewLockTable(), testLogger())

	_, err := service.SetPermission(context.Background(), "missing", models.PermissionViewer, Actor{ID: "user-1"})
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}
