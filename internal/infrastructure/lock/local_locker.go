package lock

import (
	"context"
	"sync"
)

// LocalLocker serializes sessions inside one process
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalLocker creates an empty in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(sessionID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[sessionID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[sessionID] = ch
	}
	return ch
}

// Lock blocks until the session is free or ctx is done
func (l *LocalLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	ch := l.slot(sessionID)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
