package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/roomkeeper/internal/capability"
	"github.com/iudanet/roomkeeper/internal/models"
	"github.com/iudanet/roomkeeper/internal/server/storage"
	"github.com/iudanet/roomkeeper/pkg/api"
)

// ShareStoreAdapter адаптирует серверное хранилище share-конфигураций
// к контракту capability.ShareStore (маппинг sentinel-ошибок).
type ShareStoreAdapter struct {
	Store storage.ShareStore
}

// GetShare возвращает живую share-конфигурацию
func (a ShareStoreAdapter) GetShare(ctx context.Context, shareID string) (*models.ShareConfig, error) {
	share, err := a.Store.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, storage.ErrShareNotFound) {
			return nil, capability.ErrShareNotFound
		}
		return nil, err
	}
	return share, nil
}

// CapabilityHandler handles capability token verification requests
type CapabilityHandler struct {
	logger  *slog.Logger
	service *capability.Service
}

// NewCapabilityHandler creates a new capability handler
func NewCapabilityHandler(logger *slog.Logger, service *capability.Service) *CapabilityHandler {
	return &CapabilityHandler{
		logger:  logger,
		service: service,
	}
}

// Verify обрабатывает GET /api/v1/capability/verify?token=...
//
// Публичный endpoint. Любая неудача проверки — malformed, битая подпись,
// отсутствующая или отозванная share-конфигурация — отвечает одинаковым
// generic "access denied": причина логируется, но не раскрывается клиенту.
// Fallback на permission по умолчанию не выполняется никогда.
func (h *CapabilityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		writeAccessDenied(w, h.logger)
		return
	}

	resolved, err := h.service.Verify(ctx, token)
	if err != nil {
		// Токен в лог не пишем
		h.logger.Warn("Capability verification failed", "error", err)
		writeAccessDenied(w, h.logger)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.VerifyCapabilityResponse{
		RoomID:     resolved.RoomID,
		PageID:     resolved.PageID,
		UserID:     resolved.UserID,
		Permission: string(resolved.Permission),
		ShareID:    resolved.ShareID,
		IssuedAt:   resolved.IssuedAt,
	})
}
