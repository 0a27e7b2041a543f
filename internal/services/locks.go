package services

import (
	"sync"

	"github.com/google/uuid"
)

// LockTable serializes read-modify-write cycles on a single artwork
// aggregate (status, reports, recommendation). The artwork and moderation
// services share one table so no two components mutate the same aggregate
// concurrently. Requests against different artworks never block each other.
type LockTable struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entryLock
}

type entryLock struct {
	sync.Mutex
	refs int
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[uuid.UUID]*entryLock)}
}

// Lock acquires the per-artwork mutex and returns its unlock func.
func (l *LockTable) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &entryLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
