package handler

import (
	"context"
	"sync"

	"contactApp/internal/storage"
)

// memStore — Store в памяти для тестов
type memStore struct {
	mu      sync.Mutex
	items   []storage.Submission
	err     error
	pingErr error
}

func (s *memStore) Insert(_ context.Context, sub *storage.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	sub.ID = int64(len(s.items) + 1)
	s.items = append(s.items, *sub)
	return nil
}

func (s *memStore) List(_ context.Context, limit, offset int) ([]storage.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []storage.Submission{}
	for i := len(s.items) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *memStore) Ping(context.Context) error { return s.pingErr }
func (s *memStore) Close() error               { return nil }
