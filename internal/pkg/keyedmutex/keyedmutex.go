// Package keyedmutex serializes work per string key. The readiness usecase
// uses it to make two concurrent calculations for the same (person, role)
// run one after the other instead of racing out duplicate snapshots.
package keyedmutex

import "sync"

type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

func (m *KeyedMutex) Lock(key string) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
}

func (m *KeyedMutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		m.mu.Unlock()
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()

	e.mu.Unlock()
}
