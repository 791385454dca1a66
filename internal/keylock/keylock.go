// Package keylock provides a lazily populated set of per-key mutexes.
package keylock

import "sync"

// Map hands out one mutex per key. Entries are created on first use and
// never removed, so the map grows with the number of distinct keys.
type Map[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*sync.Mutex
}

// New returns an empty Map.
func New[K comparable]() *Map[K] {
	return &Map[K]{locks: make(map[K]*sync.Mutex)}
}

func (m *Map[K]) get(key K) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Lock acquires the mutex for key and returns the function that releases it.
func (m *Map[K]) Lock(key K) (unlock func()) {
	l := m.get(key)
	l.Lock()
	return l.Unlock
}

// Len returns the number of keys that have been locked at least once.
func (m *Map[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
