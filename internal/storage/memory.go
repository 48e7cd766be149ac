package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrWriteFailed is returned by a Memory store with FailWrites set.
var ErrWriteFailed = errors.New("write failed")

// Memory is a map-backed Store used as a test double and for fixtures.
type Memory struct {
	// FailWrites makes Set and Remove fail, simulating a full or broken
	// store without touching already-persisted values.
	FailWrites bool

	mu      sync.Mutex
	data    map[string][]byte
	subs    map[int]func(string)
	nextSub int
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}, subs: map[int]func(string){}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	if m.FailWrites {
		m.mu.Unlock()
		return ErrWriteFailed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	m.mu.Unlock()
	m.notify(key)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	if m.FailWrites {
		m.mu.Unlock()
		return ErrWriteFailed
	}
	delete(m.data, key)
	m.mu.Unlock()
	m.notify(key)
	return nil
}

func (m *Memory) Subscribe(fn func(key string)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Memory) notify(key string) {
	m.mu.Lock()
	fns := make([]func(string), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
