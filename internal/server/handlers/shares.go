package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/roomkeeper/internal/capability"
	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
	"github.com/iudanet/roomkeeper/pkg/api"
)

// SharesHandler handles share configuration registry requests
type SharesHandler struct {
	logger     *slog.Logger
	rooms      storage.RoomStore
	shares     storage.ShareStore
	capability *capability.Service
}

// NewSharesHandler creates a new share configs handler
func NewSharesHandler(logger *slog.Logger, rooms storage.RoomStore, shares storage.ShareStore, capSvc *capability.Service) *SharesHandler {
	return &SharesHandler{
		logger:     logger,
		rooms:      rooms,
		shares:     shares,
		capability: capSvc,
	}
}

// requireRoomOwner загружает комнату и проверяет, что вызывающий — владелец.
// Пишет ответ и возвращает nil, если проверка не прошла.
func (h *SharesHandler) requireRoomOwner(w http.ResponseWriter, r *http.Request, roomID string) *models.Room {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized")
		return nil
	}

	room, err := h.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "room not found")
			return nil
		}
		h.logger.Error("Failed to get room", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return nil
	}

	if room.OwnerID != userID {
		h.logger.Warn("Share operation denied", "room_id", roomID, "user_id", userID, "error", ErrNotOwner)
		writeError(w, h.logger, http.StatusForbidden, "forbidden")
		return nil
	}

	return room
}

// Create обрабатывает POST /api/v1/share-configs
// Создает share-конфигурацию и выпускает capability токен, ссылающийся на нее
func (h *SharesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	permission := models.Permission(req.Permission)
	if !permission.Valid() {
		writeError(w, h.logger, http.StatusBadRequest, "unknown permission")
		return
	}

	if h.requireRoomOwner(w, r, req.RoomID) == nil {
		return
	}
	userID, _ := GetUserID(ctx)

	share := &models.ShareConfig{
		ShareID:     uuid.New().String(),
		RoomID:      req.RoomID,
		PageID:      req.PageID,
		Permission:  permission,
		IsActive:    true,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
		Description: req.Description,
	}

	if err := h.shares.CreateShare(ctx, share); err != nil {
		h.logger.Error("Failed to create share config", "error", err, "room_id", req.RoomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.capability.Issue(share.RoomID, share.Permission, share.ShareID, share.PageID, "")
	if err != nil {
		h.logger.Error("Failed to issue capability token", "error", err, "share_id", share.ShareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, api.CreateShareResponse{
		Share: shareToAPI(share),
		Token: token,
	})
}

// Get обрабатывает GET /api/v1/share-configs/{shareId}
// Публичный endpoint: verify должен работать для анонимных посетителей
func (h *SharesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shareID := r.PathValue("shareId")

	share, err := h.shares.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, storage.ErrShareNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "share config not found")
			return
		}
		h.logger.Error("Failed to get share config", "error", err, "share_id", shareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, shareToAPI(share))
}

// Update обрабатывает PATCH /api/v1/share-configs/{shareId}
// Позволяет владельцу менять permission и отзывать ссылку, не перевыпуская токены
func (h *SharesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shareID := r.PathValue("shareId")

	var req api.UpdateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	share, err := h.shares.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, storage.ErrShareNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "share config not found")
			return
		}
		h.logger.Error("Failed to get share config", "error", err, "share_id", shareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.requireRoomOwner(w, r, share.RoomID) == nil {
		return
	}

	if req.Permission != nil {
		permission := models.Permission(*req.Permission)
		if !permission.Valid() {
			writeError(w, h.logger, http.StatusBadRequest, "unknown permission")
			return
		}
		share.Permission = permission
	}
	if req.IsActive != nil {
		share.IsActive = *req.IsActive
	}
	if req.Description != nil {
		share.Description = *req.Description
	}

	if err := h.shares.UpdateShare(ctx, share); err != nil {
		h.logger.Error("Failed to update share config", "error", err, "share_id", shareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Share config updated",
		"share_id", shareID,
		"permission", share.Permission,
		"is_active", share.IsActive)

	writeJSON(w, h.logger, http.StatusOK, shareToAPI(share))
}

// Delete обрабатывает DELETE /api/v1/share-configs/{shareId}
// Удаление необратимо: verify для этого shareId больше никогда не пройдет
func (h *SharesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shareID := r.PathValue("shareId")

	share, err := h.shares.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, storage.ErrShareNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "share config not found")
			return
		}
		h.logger.Error("Failed to get share config", "error", err, "share_id", shareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.requireRoomOwner(w, r, share.RoomID) == nil {
		return
	}

	if err := h.shares.DeleteShare(ctx, shareID); err != nil {
		h.logger.Error("Failed to delete share config", "error", err, "share_id", shareID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Share config deleted", "share_id", shareID)

	w.WriteHeader(http.StatusNoContent)
}

// List обрабатывает GET /api/v1/share-configs?room_id=...
// Только владелец комнаты видит ее share-конфигурации
func (h *SharesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "room_id is required")
		return
	}

	if h.requireRoomOwner(w, r, roomID) == nil {
		return
	}

	shares, err := h.shares.ListSharesByRoom(ctx, roomID)
	if err != nil {
		h.logger.Error("Failed to list share configs", "error", err, "room_id", roomID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := api.ListSharesResponse{Shares: make([]api.ShareConfig, 0, len(shares))}
	for _, share := range shares {
		resp.Shares = append(resp.Shares, shareToAPI(share))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// shareToAPI конвертирует модель в wire-запись
func shareToAPI(share *models.ShareConfig) api.ShareConfig {
	return api.ShareConfig{
		ShareID:     share.ShareID,
		RoomID:      share.RoomID,
		PageID:      share.PageID,
		Permission:  string(share.Permission),
		IsActive:    share.IsActive,
		CreatedBy:   share.CreatedBy,
		CreatedAt:   share.CreatedAt,
		Description: share.Description,
	}
}
