package models

import "time"

// ShareConfig представляет владельческую, удаленно отзываемую конфигурацию
// share-ссылки. Это единственная точка отзыва capability токенов:
// сам токен бессрочный, но каждый verify сверяется с живым состоянием
// этой записи.
type ShareConfig struct {
	CreatedAt time.Time `json:"created_at"`

	ShareID     string     `json:"share_id"`          // ShareID непрозрачный уникальный идентификатор (UUID), не переиспользуется
	RoomID      string     `json:"room_id"`           // RoomID комната, к которой выдан доступ
	PageID      string     `json:"page_id,omitempty"` // PageID опциональное сужение до одной страницы
	Permission  Permission `json:"permission"`        // Permission живой уровень доступа; именно он действует при verify
	CreatedBy   string     `json:"created_by"`        // CreatedBy владелец, создавший ссылку
	Description string     `json:"description,omitempty"`

	IsActive bool `json:"is_active"` // IsActive false = ссылка отозвана, все токены на нее невалидны
}

// Clone создает копию конфигурации.
func (s *ShareConfig) Clone() *ShareConfig {
	c := *s
	return &c
}
