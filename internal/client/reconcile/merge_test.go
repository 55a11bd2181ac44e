package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomkeeper/internal/models"
)

func roomAt(id, name string, modified time.Time) *models.Room {
	return &models.Room{
		ID:           id,
		Name:         name,
		CreatedAt:    modified,
		LastModified: modified,
	}
}

func TestMerge_LocalNewerWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	local := []*models.Room{roomAt("room-1", "Local Edit", now.Add(-time.Minute))}
	remote := []*models.Room{roomAt("room-1", "Remote Stale", now.Add(-time.Hour))}

	merged := Merge(local, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	assert.Equal(t, "Local Edit", merged[0].Name)
}

func TestMerge_RemoteNewerWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	local := []*models.Room{roomAt("room-1", "Local Stale", now.Add(-time.Hour))}
	remote := []*models.Room{roomAt("room-1", "Remote Edit", now.Add(-time.Minute))}

	merged := Merge(local, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	assert.Equal(t, "Remote Edit", merged[0].Name)
}

func TestMerge_TieGoesToRemote(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stamp := now.Add(-time.Minute)

	local := []*models.Room{roomAt("room-1", "Local", stamp)}
	remote := []*models.Room{roomAt("room-1", "Remote", stamp)}

	merged := Merge(local, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	// Равные timestamps: авторитетная сторона побеждает
	assert.Equal(t, "Remote", merged[0].Name)
}

func TestMerge_LocalOnlyWithinGraceKept(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Создана 2 минуты назад, до Registry еще не доехала
	fresh := roomAt("room-new", "Just Created", now.Add(-2*time.Minute))

	merged := Merge([]*models.Room{fresh}, nil, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	assert.Equal(t, "room-new", merged[0].ID)
}

func TestMerge_LocalOnlyBeyondGraceDropped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Создана 6 минут назад и в remote отсутствует: считается удаленной
	stale := roomAt("room-old", "Deleted Remotely", now.Add(-6*time.Minute))

	merged := Merge([]*models.Room{stale}, nil, now, DefaultGraceWindow)

	assert.Empty(t, merged)
}

func TestMerge_RemoteOnlyTaken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	remote := []*models.Room{roomAt("room-r", "From Registry", now.Add(-time.Hour))}

	merged := Merge(nil, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	assert.Equal(t, "room-r", merged[0].ID)
}

func TestMerge_NoDuplicateIDs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Дубли и в кеше, и в remote-наборе
	local := []*models.Room{
		roomAt("room-1", "Cache Old", now.Add(-time.Hour)),
		roomAt("room-1", "Cache New", now.Add(-time.Minute)),
	}
	remote := []*models.Room{
		roomAt("room-1", "Remote", now.Add(-2*time.Hour)),
		roomAt("room-1", "Remote Dup", now.Add(-2*time.Hour)),
	}

	merged := Merge(local, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	// Из локальных дублей выжил более свежий и победил remote
	assert.Equal(t, "Cache New", merged[0].Name)
}

func TestMerge_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	local := []*models.Room{
		roomAt("room-1", "A", now.Add(-time.Minute)),
		roomAt("room-2", "B", now.Add(-2*time.Minute)),
	}
	remote := []*models.Room{
		roomAt("room-1", "A-remote", now.Add(-time.Hour)),
		roomAt("room-3", "C", now.Add(-time.Hour)),
	}

	first := Merge(local, remote, now, DefaultGraceWindow)
	// Повторный прогон поверх результата дает тот же набор
	second := Merge(first, remote, now, DefaultGraceWindow)

	assert.Equal(t, first, second)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	local := []*models.Room{roomAt("room-1", "Local", now.Add(-time.Minute))}
	remote := []*models.Room{roomAt("room-1", "Remote", now.Add(-time.Hour))}

	merged := Merge(local, remote, now, DefaultGraceWindow)

	require.Len(t, merged, 1)
	merged[0].Name = "Mutated"

	assert.Equal(t, "Local", local[0].Name)
	assert.Equal(t, "Remote", remote[0].Name)
}

func TestDisambiguateNames_SuffixesByRecency(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newest := roomAt("room-a", "Untitled", now)
	middle := roomAt("room-b", "Untitled", now.Add(-time.Hour))
	oldest := roomAt("room-c", "Untitled", now.Add(-2*time.Hour))
	other := roomAt("room-d", "Roadmap", now)

	rooms := []*models.Room{oldest, newest, other, middle}
	DisambiguateNames(rooms)

	assert.Equal(t, "Untitled", newest.DisplayName)
	assert.Equal(t, "Untitled (2)", middle.DisplayName)
	assert.Equal(t, "Untitled (3)", oldest.DisplayName)
	assert.Equal(t, "Roadmap", other.DisplayName)

	// Name не затронут ни у кого
	for _, r := range rooms {
		if r.ID != "room-d" {
			assert.Equal(t, "Untitled", r.Name)
		}
	}
}

func TestDisambiguateNames_TieBrokenByID(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := roomAt("room-a", "Untitled", now)
	b := roomAt("room-b", "Untitled", now)

	DisambiguateNames([]*models.Room{b, a})

	// При равных LastModified порядок стабилен по id
	assert.Equal(t, "Untitled", a.DisplayName)
	assert.Equal(t, "Untitled (2)", b.DisplayName)
}
