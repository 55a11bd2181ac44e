package models

import "time"

// Permission представляет уровень доступа к комнате.
// Значение хранится как строка и участвует в wire-формате capability токенов.
type Permission string

const (
	PermissionViewer Permission = "viewer" // только чтение
	PermissionEditor Permission = "editor" // полный доступ к редактированию
	PermissionAssist Permission = "assist" // редактирование только нового контента (history lock)
)

// Valid проверяет, что значение permission известно системе.
func (p Permission) Valid() bool {
	switch p {
	case PermissionViewer, PermissionEditor, PermissionAssist:
		return true
	}
	return false
}

// Char возвращает однобуквенное представление permission для компактной
// сериализации в payload capability токена.
func (p Permission) Char() string {
	switch p {
	case PermissionViewer:
		return "v"
	case PermissionEditor:
		return "e"
	case PermissionAssist:
		return "a"
	}
	return ""
}

// PermissionFromChar восстанавливает Permission из однобуквенного представления.
// Возвращает false, если символ неизвестен.
func PermissionFromChar(c string) (Permission, bool) {
	switch c {
	case "v":
		return PermissionViewer, true
	case "e":
		return PermissionEditor, true
	case "a":
		return PermissionAssist, true
	}
	return "", false
}

// Room представляет метаданные одной комнаты (документа).
// Содержимое canvas сюда не входит — только то, что нужно для
// реконсиляции, выдачи доступа и history lock.
type Room struct {
	CreatedAt    time.Time `json:"created_at"`    // CreatedAt время создания записи, используется grace window
	LastModified time.Time `json:"last_modified"` // LastModified монотонно неубывающее, правит разрешением конфликтов

	ID        string `json:"id"`         // ID стабильный уникальный идентификатор (UUID), неизменяем
	Name      string `json:"name"`       // Name человекочитаемое имя, НЕ уникально
	OwnerID   string `json:"owner_id"`   // OwnerID идентификатор владельца
	OwnerName string `json:"owner_name"` // OwnerName отображаемое имя владельца

	// DisplayName отображаемое имя после разрешения коллизий (" (2)", " (3)"...).
	// Заполняется только реконсилятором, идентичность записи не затрагивает.
	DisplayName string `json:"display_name,omitempty"`

	Permission Permission `json:"permission"` // Permission уровень доступа по умолчанию для посетителей без токена

	Shared  bool `json:"shared"`  // Shared комната видна коллабораторам
	Publish bool `json:"publish"` // Publish комната видна публично; независим от Shared

	HistoryLocked       bool       `json:"history_locked"`                  // HistoryLocked активен ли history lock
	HistoryLockTime     *time.Time `json:"history_lock_time,omitempty"`     // HistoryLockTime момент включения lock
	HistoryLockedBy     string     `json:"history_locked_by,omitempty"`     // HistoryLockedBy кто включил lock
	HistoryLockedByName string     `json:"history_locked_by_name,omitempty"`

	SchemaVersion int `json:"schema_version"` // SchemaVersion версия схемы записи (см. schema.go)
}

// NewerThan сравнивает две записи по LastModified.
// Возвращает true, если текущая запись строго новее other.
// При равенстве timestamps побеждает remote-сторона, это решает вызывающий код.
func (r *Room) NewerThan(other *Room) bool {
	return r.LastModified.After(other.LastModified)
}

// Clone создает глубокую копию записи.
func (r *Room) Clone() *Room {
	c := *r
	if r.HistoryLockTime != nil {
		t := *r.HistoryLockTime
		c.HistoryLockTime = &t
	}
	return &c
}

// Touch выставляет LastModified, не позволяя ему уйти назад.
func (r *Room) Touch(now time.Time) {
	if now.After(r.LastModified) {
		r.LastModified = now
	}
}
