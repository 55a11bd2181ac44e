package api

import "time"

// RoomRecord представляет запись комнаты в wire-формате
type RoomRecord struct {
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`

	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	Permission string `json:"permission"`

	Shared  bool `json:"shared"`
	Publish bool `json:"publish"`

	HistoryLocked       bool       `json:"history_locked"`
	HistoryLockTime     *time.Time `json:"history_lock_time,omitempty"`
	HistoryLockedBy     string     `json:"history_locked_by,omitempty"`
	HistoryLockedByName string     `json:"history_locked_by_name,omitempty"`
}

// ListRoomsResponse представляет ответ на GET /api/v1/rooms
type ListRoomsResponse struct {
	Rooms []RoomRecord `json:"rooms"`
}

// CreateRoomRequest представляет запрос на создание комнаты
type CreateRoomRequest struct {
	ID   string `json:"id,omitempty"` // опционально: клиент может прислать заранее сгенерированный UUID
	Name string `json:"name"`
}

// UpdateRoomRequest представляет запрос на обновление комнаты.
// nil-поля не изменяются.
type UpdateRoomRequest struct {
	Name       *string `json:"name,omitempty"`
	Permission *string `json:"permission,omitempty"`
	Shared     *bool   `json:"shared,omitempty"`
	Publish    *bool   `json:"publish,omitempty"`

	HistoryLocked       *bool      `json:"history_locked,omitempty"`
	HistoryLockTime     *time.Time `json:"history_lock_time,omitempty"`
	HistoryLockedBy     *string    `json:"history_locked_by,omitempty"`
	HistoryLockedByName *string    `json:"history_locked_by_name,omitempty"`

	// LastModified метка клиента; сервер отвергает запись старее текущей
	LastModified time.Time `json:"last_modified"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
