package infra

import (
	"context"
	"sync"

	"locking-gateway/middleware/locking/domain"
)

type Counters struct {
	Granted int64
	Denied  int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu     sync.Mutex
	total  Counters
	byLock map[string]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{byLock: make(map[string]Counters)}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.AcquireEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byLock[ev.Lock]
	if ev.Granted {
		s.total.Granted++
		c.Granted++
	} else {
		s.total.Denied++
		c.Denied++
	}
	s.byLock[ev.Lock] = c
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByLock() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byLock))
	for k, v := range s.byLock {
		out[k] = v
	}
	return out
}
