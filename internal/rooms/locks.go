package rooms

import (
	"context"
	"errors"
	"sync"
)

// ErrTransitionConflict indicates that another mutation is in flight for the
// same room and the single retry did not obtain the lock in time.
var ErrTransitionConflict = errors.New("concurrent room mutation in progress")

// LockTable сериализует мутации по одной комнате: permission-переход,
// гонящийся с clear того же lock, — единственный сценарий, способный
// оставить historyLocked=true с устаревшим timestamp. Чтения через
// таблицу не ходят и никогда не блокируются.
//
// Таблицу делят машина состояний и write-back реконсилятора,
// cross-room координации нет.
type LockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLockTable creates an empty lock table.
func NewLockTable() *LockTable {
	return &LockTable{
		locks: make(map[string]chan struct{}),
	}
}

// lockFor возвращает семафор для комнаты, создавая его при первом обращении
func (t *LockTable) lockFor(roomID string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[roomID]
	if !ok {
		l = make(chan struct{}, 1)
		t.locks[roomID] = l
	}
	return l
}

// Acquire захватывает эксклюзив на комнату и возвращает release.
// При конфликте выполняется одна повторная попытка с ожиданием;
// если ctx истекает раньше — ErrTransitionConflict.
func (t *LockTable) Acquire(ctx context.Context, roomID string) (func(), error) {
	l := t.lockFor(roomID)

	select {
	case l <- struct{}{}:
	default:
		// Конфликт: другая мутация в полете. Одна повторная попытка.
		select {
		case l <- struct{}{}:
		case <-ctx.Done():
			return nil, ErrTransitionConflict
		}
	}

	return func() { <-l }, nil
}
