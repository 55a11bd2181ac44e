package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// mockRoomStore is a map-backed mock implementation of storage.RoomStore
type mockRoomStore struct {
	rooms    map[string]*models.Room
	getError error
}

func newMockRoomStore() *mockRoomStore {
	return &mockRoomStore{rooms: make(map[string]*models.Room)}
}

func (m *mockRoomStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if _, exists := m.rooms[room.ID]; exists {
		return storage.ErrRoomAlreadyExists
	}
	m.rooms[room.ID] = room.Clone()
	return nil
}

func (m *mockRoomStore) SaveRoom(ctx context.Context, room *models.Room) (bool, error) {
	existing, ok := m.rooms[room.ID]
	if !ok {
		return false, storage.ErrRoomNotFound
	}
	if existing.LastModified.After(room.LastModified) {
		return false, nil
	}
	m.rooms[room.ID] = room.Clone()
	return true, nil
}

func (m *mockRoomStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	room, ok := m.rooms[id]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (m *mockRoomStore) ListRoomsByOwner(ctx context.Context, ownerID string) ([]*models.Room, error) {
	var result []*models.Room
	for _, room := range m.rooms {
		if room.OwnerID == ownerID {
			result = append(result, room.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastModified.After(result[j].LastModified)
	})
	return result, nil
}

func (m *mockRoomStore) DeleteRoom(ctx context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return storage.ErrRoomNotFound
	}
	delete(m.rooms, id)
	return nil
}

// mockShareStore is a map-backed mock implementation of storage.ShareStore
type mockShareStore struct {
	shares map[string]*models.ShareConfig
}

func newMockShareStore() *mockShareStore {
	return &mockShareStore{shares: make(map[string]*models.ShareConfig)}
}

func (m *mockShareStore) CreateShare(ctx context.Context, share *models.ShareConfig) error {
	m.shares[share.ShareID] = share.Clone()
	return nil
}

func (m *mockShareStore) GetShare(ctx context.Context, shareID string) (*models.ShareConfig, error) {
	share, ok := m.shares[shareID]
	if !ok {
		return nil, storage.ErrShareNotFound
	}
	return share.Clone(), nil
}

func (m *mockShareStore) UpdateShare(ctx context.Context, share *models.ShareConfig) error {
	if _, ok := m.shares[share.ShareID]; !ok {
		return storage.ErrShareNotFound
	}
	m.shares[share.ShareID] = share.Clone()
	return nil
}

func (m *mockShareStore) DeleteShare(ctx context.Context, shareID string) error {
	if _, ok := m.shares[shareID]; !ok {
		return storage.ErrShareNotFound
	}
	delete(m.shares, shareID)
	return nil
}

func (m *mockShareStore) ListSharesByRoom(ctx context.Context, roomID string) ([]*models.ShareConfig, error) {
	var result []*models.ShareConfig
	for _, share := range m.shares {
		if share.RoomID == roomID {
			result = append(result, share.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// authedRequest оборачивает запрос контекстом аутентифицированного пользователя
func authedRequest(req *http.Request, userID, username string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, UsernameKey, username)
	return req.WithContext(ctx)
}

func seedRoom(store *mockRoomStore, id, ownerID string) *models.Room {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := &models.Room{
		ID:           id,
		Name:         "Board",
		OwnerID:      ownerID,
		OwnerName:    "alice",
		Permission:   models.PermissionEditor,
		CreatedAt:    now,
		LastModified: now,
	}
	store.rooms[id] = room
	return room
}

// doRequest прогоняет handler и возвращает recorder
func doRequest(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
