package session

import "sync"

// Locker hands out one mutex per session identifier so callers can serialize
// multi-step work on a single session while distinct sessions proceed in
// parallel. Mutexes are created on first use and retained for the lifetime
// of the Locker.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Get returns the mutex for the given session identifier, creating it on
// first use.
func (l *Locker) Get(sessionID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	return m
}
