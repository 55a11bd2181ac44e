package api

import "time"

// ShareConfig представляет конфигурацию share-ссылки в wire-формате
type ShareConfig struct {
	CreatedAt time.Time `json:"created_at"`

	ShareID     string `json:"share_id"`
	RoomID      string `json:"room_id"`
	PageID      string `json:"page_id,omitempty"`
	Permission  string `json:"permission"`
	CreatedBy   string `json:"created_by"`
	Description string `json:"description,omitempty"`

	IsActive bool `json:"is_active"`
}

// CreateShareRequest представляет запрос на создание share-конфигурации
type CreateShareRequest struct {
	RoomID      string `json:"room_id"`
	PageID      string `json:"page_id,omitempty"`
	Permission  string `json:"permission"`
	Description string `json:"description,omitempty"`
}

// UpdateShareRequest представляет запрос на изменение share-конфигурации.
// nil-поля не изменяются.
type UpdateShareRequest struct {
	Permission  *string `json:"permission,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateShareResponse представляет ответ на создание share-конфигурации.
// Token — подписанный capability токен, ссылающийся на созданную конфигурацию.
type CreateShareResponse struct {
	Share ShareConfig `json:"share"`
	Token string      `json:"token"`
}

// ListSharesResponse представляет ответ на GET /api/v1/share-configs?room_id=...
type ListSharesResponse struct {
	Shares []ShareConfig `json:"shares"`
}

// VerifyCapabilityResponse представляет ответ на успешную проверку
// capability токена. Permission здесь — живое значение из ShareConfig,
// а не то, что зашито в токене.
type VerifyCapabilityResponse struct {
	RoomID     string `json:"room_id"`
	PageID     string `json:"page_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	Permission string `json:"permission"`
	ShareID    string `json:"share_id"`
	IssuedAt   int64  `json:"issued_at"`
}
