package kv

import (
	"context"
	"sync"
	"time"

	"github.com/clawsandpaws/pawsd/pkg/metrics"
)

// MemoryStore implements Store with a mutex-guarded map. It is the default
// backend and the one tests run against. Values survive for the lifetime of
// the process only.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	defer observe("get", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		metrics.RecordStoreOpError("get")
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Set writes value under key, overwriting unconditionally.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	defer observe("set", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.RecordStoreOpError("set")
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

// SetMany writes all pairs under one lock so readers never observe a mix.
func (s *MemoryStore) SetMany(ctx context.Context, pairs map[string]string) error {
	defer observe("set_many", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.RecordStoreOpError("set_many")
		return ErrClosed
	}
	for k, v := range pairs {
		s.data[k] = v
	}
	return nil
}

// Remove deletes the named keys. Missing keys are not an error.
func (s *MemoryStore) Remove(ctx context.Context, keys ...string) error {
	defer observe("remove", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.RecordStoreOpError("remove")
		return ErrClosed
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Clear deletes every key.
func (s *MemoryStore) Clear(ctx context.Context) error {
	defer observe("clear", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.RecordStoreOpError("clear")
		return ErrClosed
	}
	s.data = make(map[string]string)
	return nil
}

// Close marks the store closed; further operations return ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func observe(op string, start time.Time) {
	metrics.RecordStoreOp(op)
	metrics.RecordStoreOpLatency(float64(time.Since(start).Microseconds()) / 1000.0)
}
