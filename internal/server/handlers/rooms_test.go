package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/pkg/api"
)

func TestRoomsList(t *testing.T) {
	store := newMockRoomStore()
	seedRoom(store, "room-1", "user-1")
	seedRoom(store, "room-2", "user-2")

	h := NewRoomsHandler(testLogger(), store)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil), "user-1", "alice")
	rec := doRequest(h.List, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ListRoomsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	// Только комнаты вызывающего
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "room-1", resp.Rooms[0].ID)
}

func TestRoomsList_Unauthorized(t *testing.T) {
	h := NewRoomsHandler(testLogger(), newMockRoomStore())

	rec := doRequest(h.List, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoomsCreate(t *testing.T) {
	store := newMockRoomStore()
	h := NewRoomsHandler(testLogger(), store)

	body, _ := json.Marshal(api.CreateRoomRequest{Name: "Design Review"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewReader(body)), "user-1", "alice")
	rec := doRequest(h.Create, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created api.RoomRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Design Review", created.Name)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.Equal(t, "alice", created.OwnerName)
	assert.Equal(t, string(models.PermissionEditor), created.Permission)
	assert.False(t, created.Shared)
	assert.False(t, created.Publish)

	assert.Contains(t, store.rooms, created.ID)
}

func TestRoomsCreate_ClientProvidedID(t *testing.T) {
	store := newMockRoomStore()
	h := NewRoomsHandler(testLogger(), store)

	body, _ := json.Marshal(api.CreateRoomRequest{ID: "room-client", Name: "Board"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewReader(body)), "user-1", "alice")
	rec := doRequest(h.Create, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, store.rooms, "room-client")
}

func TestRoomsCreate_Conflict(t *testing.T) {
	store := newMockRoomStore()
	seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	body, _ := json.Marshal(api.CreateRoomRequest{ID: "room-1", Name: "Board"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewReader(body)), "user-1", "alice")
	rec := doRequest(h.Create, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRoomsCreate_MissingName(t *testing.T) {
	h := NewRoomsHandler(testLogger(), newMockRoomStore())

	body, _ := json.Marshal(api.CreateRoomRequest{})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewReader(body)), "user-1", "alice")
	rec := doRequest(h.Create, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func updateRequest(t *testing.T, roomID, userID string, req api.UpdateRoomRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPut, "/api/v1/rooms/"+roomID, bytes.NewReader(body))
	r.SetPathValue("id", roomID)
	return authedRequest(r, userID, "alice")
}

func TestRoomsUpdate(t *testing.T) {
	store := newMockRoomStore()
	room := seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	name := "Renamed"
	shared := true
	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		Name:         &name,
		Shared:       &shared,
		LastModified: room.LastModified.Add(time.Minute),
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var updated api.RoomRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.Shared)

	assert.Equal(t, "Renamed", store.rooms["room-1"].Name)
}

func TestRoomsUpdate_NotOwner(t *testing.T) {
	store := newMockRoomStore()
	seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	name := "Hijacked"
	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-2", api.UpdateRoomRequest{Name: &name}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Board", store.rooms["room-1"].Name)
}

func TestRoomsUpdate_NotFound(t *testing.T) {
	h := NewRoomsHandler(testLogger(), newMockRoomStore())

	name := "Ghost"
	rec := doRequest(h.Update, updateRequest(t, "missing", "user-1", api.UpdateRoomRequest{Name: &name}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoomsUpdate_StaleWriteReturnsCurrent(t *testing.T) {
	store := newMockRoomStore()
	room := seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	// Запись старее хранимой проигрывает, в ответе актуальное состояние
	name := "Stale"
	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		Name:         &name,
		LastModified: room.LastModified.Add(-time.Hour),
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var current api.RoomRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&current))
	assert.Equal(t, "Board", current.Name)
	assert.Equal(t, "Board", store.rooms["room-1"].Name)
}

func TestRoomsUpdate_LockRequiresTimestamp(t *testing.T) {
	store := newMockRoomStore()
	room := seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	locked := true
	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		HistoryLocked: &locked,
		LastModified:  room.LastModified.Add(time.Minute),
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, store.rooms["room-1"].HistoryLocked)
}

func TestRoomsUpdate_EngageAndClearLock(t *testing.T) {
	store := newMockRoomStore()
	room := seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	locked := true
	lockTime := room.LastModified.Add(time.Minute)
	lockedBy := "user-1"
	permission := string(models.PermissionAssist)

	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		Permission:      &permission,
		HistoryLocked:   &locked,
		HistoryLockTime: &lockTime,
		HistoryLockedBy: &lockedBy,
		LastModified:    lockTime,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	saved := store.rooms["room-1"]
	assert.True(t, saved.HistoryLocked)
	require.NotNil(t, saved.HistoryLockTime)

	// Снятие lock очищает все связанные поля
	unlocked := false
	permission = string(models.PermissionEditor)
	rec = doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		Permission:    &permission,
		HistoryLocked: &unlocked,
		LastModified:  lockTime.Add(time.Minute),
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	saved = store.rooms["room-1"]
	assert.False(t, saved.HistoryLocked)
	assert.Nil(t, saved.HistoryLockTime)
	assert.Empty(t, saved.HistoryLockedBy)
}

func TestRoomsUpdate_UnknownPermission(t *testing.T) {
	store := newMockRoomStore()
	room := seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	permission := "admin"
	rec := doRequest(h.Update, updateRequest(t, "room-1", "user-1", api.UpdateRoomRequest{
		Permission:   &permission,
		LastModified: room.LastModified.Add(time.Minute),
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoomsDelete(t *testing.T) {
	store := newMockRoomStore()
	seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rooms/room-1", nil)
	req.SetPathValue("id", "room-1")
	rec := doRequest(h.Delete, authedRequest(req, "user-1", "alice"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, store.rooms, "room-1")
}

func TestRoomsDelete_NotOwner(t *testing.T) {
	store := newMockRoomStore()
	seedRoom(store, "room-1", "user-1")
	h := NewRoomsHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rooms/room-1", nil)
	req.SetPathValue("id", "room-1")
	rec := doRequest(h.Delete, authedRequest(req, "user-2", "bob"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, store.rooms, "room-1")
}

func TestRoomsDelete_NotFound(t *testing.T) {
	h := NewRoomsHandler(testLogger(), newMockRoomStore())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rooms/missing", nil)
	req.SetPathValue("id", "missing")
	rec := doRequest(h.Delete, authedRequest(req, "user-1", "alice"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
