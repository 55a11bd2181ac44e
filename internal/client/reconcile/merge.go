package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
)

// DefaultGraceWindow защищает только что созданные локальные комнаты,
// еще не доехавшие до Registry, от удаления при реконсиляции.
//
// Это эвристика, не гарантия: комната, созданная локально перед уходом
// клиента в offline дольше окна, при первой успешной синхронизации будет
// ошибочно сочтена удаленной. Явный tombstone-протокол сюда сознательно
// не добавлен, см. DESIGN.md.
const DefaultGraceWindow = 5 * time.Minute

// Merge сводит локальный и удаленный наборы комнат в один согласованный.
//
// Правила:
//  1. id, известный обеим сторонам: побеждает большая LastModified,
//     при равенстве — remote (он авторитетен, раз уж доступен)
//  2. id только в remote: берется как есть
//  3. id только в local: остается, пока now − createdAt < grace,
//     иначе считается удаленным удаленно и выбрасывается
//
// Функция чистая: входные записи не мутируются, результат — копии.
// Порядок результата детерминирован (remote-порядок, затем local-only),
// поэтому Merge идемпотентен при неизменном remote.
func Merge(local, remote []*models.Room, now time.Time, grace time.Duration) []*models.Room {
	localByID := make(map[string]*models.Room, len(local))
	for _, l := range local {
		// Дедупликация по id: при дубле в кеше выживает более свежий
		if prev, ok := localByID[l.ID]; ok && !l.NewerThan(prev) {
			continue
		}
		localByID[l.ID] = l
	}

	result := make([]*models.Room, 0, len(remote))
	seen := make(map[string]bool, len(remote))

	for _, r := range remote {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true

		winner := r
		if l, ok := localByID[r.ID]; ok && l.NewerThan(r) {
			winner = l
		}
		result = append(result, winner.Clone())
	}

	for _, l := range local {
		if seen[l.ID] || localByID[l.ID] != l {
			continue
		}
		seen[l.ID] = true

		// Записи нет в remote: либо она еще не доехала, либо удалена.
		// Grace window отделяет одно от другого по возрасту.
		if now.Sub(l.CreatedAt) < grace {
			result = append(result, l.Clone())
		}
	}

	return result
}

// DisambiguateNames разрешает коллизии имен display-only суффиксами.
// Внутри группы одноименных комнат суффиксы назначаются в порядке убывания
// LastModified: самая свежая остается без суффикса, следующая получает
// " (2)" и так далее. Name никогда не меняется — только DisplayName.
func DisambiguateNames(rooms []*models.Room) {
	byName := make(map[string][]*models.Room)
	for _, r := range rooms {
		byName[r.Name] = append(byName[r.Name], r)
	}

	for _, group := range byName {
		if len(group) == 1 {
			group[0].DisplayName = group[0].Name
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			if !group[i].LastModified.Equal(group[j].LastModified) {
				return group[i].LastModified.After(group[j].LastModified)
			}
			// Стабильность при равных LastModified
			return group[i].ID < group[j].ID
		})

		for i, r := range group {
			if i == 0 {
				r.DisplayName = r.Name
				continue
			}
			r.DisplayName = fmt.Sprintf("%s (%d)", r.Name, i+1)
		}
	}
}
