package wallet

import "sync"

// UserLock serializes wallet mutations per user. Two concurrent requests
// must not both read the same balance and both pass a sufficiency check
// that only one should pass, so every operation that mutates a wallet
// holds the owning user's lock for its full read-modify-write cycle.
type UserLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLock() *UserLock {
	return &UserLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for userID and returns the matching unlock func.
func (l *UserLock) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
