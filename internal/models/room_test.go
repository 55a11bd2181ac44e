package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermission_Valid(t *testing.T) {
	tests := []struct {
		permission Permission
		want       bool
	}{
		{PermissionViewer, true},
		{PermissionEditor, true},
		{PermissionAssist, true},
		{Permission(""), false},
		{Permission("admin"), false},
		{Permission("edit"), false}, // устаревшее v0 значение, невалидно после миграции
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.permission.Valid(), "permission %q", tt.permission)
	}
}

func TestPermission_CharRoundtrip(t *testing.T) {
	for _, p := range []Permission{PermissionViewer, PermissionEditor, PermissionAssist} {
		c := p.Char()
		require.NotEmpty(t, c)

		got, ok := PermissionFromChar(c)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestPermissionFromChar_Unknown(t *testing.T) {
	for _, c := range []string{"", "x", "ve", "V"} {
		_, ok := PermissionFromChar(c)
		assert.False(t, ok, "char %q", c)
	}
}

func TestRoom_NewerThan(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	older := &Room{ID: "a", LastModified: base}
	newer := &Room{ID: "a", LastModified: base.Add(time.Second)}
	same := &Room{ID: "a", LastModified: base}

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))

	// При равных timestamps ни одна сторона не "новее"
	assert.False(t, older.NewerThan(same))
	assert.False(t, same.NewerThan(older))
}

func TestRoom_Clone_DeepCopiesLockTime(t *testing.T) {
	lockTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := &Room{
		ID:              "room-1",
		Name:            "Design Review",
		HistoryLocked:   true,
		HistoryLockTime: &lockTime,
	}

	clone := room.Clone()
	require.NotSame(t, room, clone)
	assert.Equal(t, room, clone)

	// Изменение копии не трогает оригинал
	*clone.HistoryLockTime = lockTime.Add(time.Hour)
	assert.Equal(t, lockTime, *room.HistoryLockTime)
}

func TestRoom_Touch_Monotonic(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := &Room{LastModified: base}

	room.Touch(base.Add(time.Minute))
	assert.Equal(t, base.Add(time.Minute), room.LastModified)

	// Время назад не уходит
	room.Touch(base)
	assert.Equal(t, base.Add(time.Minute), room.LastModified)

	// Равное время тоже не перезаписывает
	room.Touch(base.Add(time.Minute))
	assert.Equal(t, base.Add(time.Minute), room.LastModified)
}
