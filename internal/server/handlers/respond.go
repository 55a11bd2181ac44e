package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/roomkeeper/pkg/api"
)

// ErrNotOwner indicates authorization failure on an owner-only operation
var ErrNotOwner = errors.New("caller is not the room owner")

// writeJSON сериализует ответ с заданным статусом
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError отправляет ErrorResponse с заданным статусом
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: message})
}

// writeAccessDenied отправляет единый ответ на любую неудачу проверки
// доступа. Причина не раскрывается: детальный ответ подсказал бы,
// на каком шаге verify упал.
func writeAccessDenied(w http.ResponseWriter, logger *slog.Logger) {
	writeError(w, logger, http.StatusForbidden, "access denied")
}
