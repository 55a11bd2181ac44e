package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
	"github.com/iudanet/roomkeeper/pkg/api"
)

// RoomsHandler handles room registry requests
type RoomsHandler struct {
	logger *slog.Logger
	store  storage.RoomStore
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(logger *slog.Logger, store storage.RoomStore) *RoomsHandler {
	return &RoomsHandler{
		logger: logger,
		store:  store,
	}
}

// List обрабатывает GET /api/v1/rooms
// Возвращает комнаты, принадлежащие вызывающему
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}

	rooms, err := h.store.ListRoomsByOwner(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list rooms", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := api.ListRoomsResponse{Rooms: make([]api.RoomRecord, 0, len(rooms))}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, roomToAPI(room))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Create обрабатывает POST /api/v1/rooms
func (h *RoomsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}
	username, _ := GetUsername(ctx)

	var req api.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "room name is required")
		return
	}

	now := time.Now().UTC()
	room := &models.Room{
		ID:           req.ID,
		Name:         req.Name,
		OwnerID:      userID,
		OwnerName:    username,
		CreatedAt:    now,
		LastModified: now,
		Permission:   models.PermissionEditor,
	}
	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	if err := h.store.CreateRoom(ctx, room); err != nil {
		if errors.Is(err, storage.ErrRoomAlreadyExists) {
			writeError(w, h.logger, http.StatusConflict, "room already exists")
			return
		}
		h.logger.Error("Failed to create room", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Room created", "room_id", room.ID, "owner_id", userID)

	writeJSON(w, h.logger, http.StatusCreated, roomToAPI(room))
}

// Update обрабатывает PUT /api/v1/rooms/{id}
// Применяет last-write-wins: запись старее хранимой не перезаписывает ее,
// в ответе всегда актуальное состояние Registry.
func (h *RoomsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}

	roomID := r.PathValue("id")

	var req api.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "room not found")
			return
		}
		h.logger.Error("Failed to get room", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if room.OwnerID != userID {
		h.logger.Warn("Room update denied", "room_id", roomID, "user_id", userID, "error", ErrNotOwner)
		writeError(w, h.logger, http.StatusForbidden, "forbidden")
		return
	}

	applyRoomUpdate(room, &req)
	if req.LastModified.IsZero() {
		room.LastModified = time.Now().UTC()
	} else {
		room.LastModified = req.LastModified
	}

	if room.Permission != "" && !room.Permission.Valid() {
		writeError(w, h.logger, http.StatusBadRequest, "unknown permission")
		return
	}
	// Инвариант: активный history lock несет timestamp
	if room.HistoryLocked && room.HistoryLockTime == nil {
		writeError(w, h.logger, http.StatusBadRequest, "history lock requires a timestamp")
		return
	}

	saved, err := h.store.SaveRoom(ctx, room)
	if err != nil {
		h.logger.Error("Failed to save room", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if !saved {
		// Проигравшая запись: возвращаем актуальное состояние
		room, err = h.store.GetRoom(ctx, roomID)
		if err != nil {
			h.logger.Error("Failed to reload room", "error", err, "room_id", roomID)
			writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, roomToAPI(room))
}

// Delete обрабатывает DELETE /api/v1/rooms/{id}
// Единственное авторитетное удаление комнаты: локальные кеши узнают о нем
// при следующей реконсиляции.
func (h *RoomsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return
	}

	roomID := r.PathValue("id")

	room, err := h.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "room not found")
			return
		}
		h.logger.Error("Failed to get room", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if room.OwnerID != userID {
		h.logger.Warn("Room delete denied", "room_id", roomID, "user_id", userID, "error", ErrNotOwner)
		writeError(w, h.logger, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.store.DeleteRoom(ctx, roomID); err != nil {
		h.logger.Error("Failed to delete room", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Room deleted", "room_id", roomID, "owner_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// applyRoomUpdate накладывает непустые поля запроса на запись
func applyRoomUpdate(room *models.Room, req *api.UpdateRoomRequest) {
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Permission != nil {
		room.Permission = models.Permission(*req.Permission)
	}
	if req.Shared != nil {
		room.Shared = *req.Shared
	}
	if req.Publish != nil {
		room.Publish = *req.Publish
	}
	if req.HistoryLocked != nil {
		room.HistoryLocked = *req.HistoryLocked
		if !room.HistoryLocked {
			room.HistoryLockTime = nil
			room.HistoryLockedBy = ""
			room.HistoryLockedByName = ""
		}
	}
	if req.HistoryLockTime != nil {
		room.HistoryLockTime = req.HistoryLockTime
	}
	if req.HistoryLockedBy != nil {
		room.HistoryLockedBy = *req.HistoryLockedBy
	}
	if req.HistoryLockedByName != nil {
		room.HistoryLockedByName = *req.HistoryLockedByName
	}
}

// roomToAPI конвертирует модель в wire-запись
func roomToAPI(room *models.Room) api.RoomRecord {
	return api.RoomRecord{
		ID:                  room.ID,
		Name:                room.Name,
		OwnerID:             room.OwnerID,
		OwnerName:           room.OwnerName,
		CreatedAt:           room.CreatedAt,
		LastModified:        room.LastModified,
		Permission:          string(room.Permission),
		Shared:              room.Shared,
		Publish:             room.Publish,
		HistoryLocked:       room.HistoryLocked,
		HistoryLockTime:     room.HistoryLockTime,
		HistoryLockedBy:     room.HistoryLockedBy,
		HistoryLockedByName: room.HistoryLockedByName,
	}
}
