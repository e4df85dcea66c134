package lock

import (
	"context"
	"sync"
)

// LocalLocker é um lock por chave em memória, suficiente quando há um único worker
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.unref(key, s)
		})
	}, nil
}

func (l *LocalLocker) unref(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
