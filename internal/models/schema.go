package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RoomSchemaVersion текущая версия схемы Room.
//
// История:
//
//	v0 — записи без schema_version: флаг публикации назывался "published",
//	     permission писался как "edit"/"read", timestamp lock лежал в
//	     "history_lock_timestamp" (unix seconds).
//	v1 — текущая схема (см. Room).
//
// Миграция выполняется одним явным шагом при чтении из локального кеша,
// бизнес-логика всегда видит только текущую форму.
const RoomSchemaVersion = 1

// legacyRoom покрывает обе формы записи: актуальные поля плюс
// устаревшие ключи v0. Используется только внутри DecodeRoom.
type legacyRoom struct {
	Room

	Published       *bool  `json:"published,omitempty"`
	LegacyLockStamp *int64 `json:"history_lock_timestamp,omitempty"`
}

// DecodeRoom десериализует запись комнаты из локального кеша,
// выполняя миграцию устаревшей схемы ровно один раз.
func DecodeRoom(data []byte) (*Room, error) {
	var raw legacyRoom
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room record: %w", err)
	}

	room := raw.Room

	if room.SchemaVersion >= RoomSchemaVersion {
		return &room, nil
	}

	// v0 -> v1
	if raw.Published != nil {
		room.Publish = *raw.Published
	}
	switch string(room.Permission) {
	case "edit":
		room.Permission = PermissionEditor
	case "read":
		room.Permission = PermissionViewer
	}
	if room.HistoryLockTime == nil && raw.LegacyLockStamp != nil {
		t := time.Unix(*raw.LegacyLockStamp, 0).UTC()
		room.HistoryLockTime = &t
	}
	// Запись с активным lock обязана нести timestamp; v0 такое допускал,
	// считаем lock невалидным и сбрасываем.
	if room.HistoryLocked && room.HistoryLockTime == nil {
		room.HistoryLocked = false
		room.HistoryLockedBy = ""
		room.HistoryLockedByName = ""
	}
	room.SchemaVersion = RoomSchemaVersion

	return &room, nil
}

// EncodeRoom сериализует запись комнаты для локального кеша,
// всегда в текущей версии схемы.
func EncodeRoom(room *Room) ([]byte, error) {
	room.SchemaVersion = RoomSchemaVersion
	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room record: %w", err)
	}
	return data, nil
}
