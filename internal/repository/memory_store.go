package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// MemoryStore is a process-local Store. Snapshots are cloned on the way in
// and out so callers never share holdings maps with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	portfolios   map[string]model.Portfolio
	transactions map[string][]model.Transaction
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		portfolios:   make(map[string]model.Portfolio),
		transactions: make(map[string][]model.Transaction),
	}
}

func (s *MemoryStore) LoadPortfolio(_ context.Context, id string) (model.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[id]
	if !ok {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, id string) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger(id), nil
}

func (s *MemoryStore) Snapshot(_ context.Context, id string) (model.Portfolio, []model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[id]
	if !ok {
		return model.Portfolio{}, nil, apperrors.ErrPortfolioNotFound
	}
	return p.Clone(), s.ledger(id), nil
}

// ledger copies id's entries newest first. Callers hold mu.
func (s *MemoryStore) ledger(id string) []model.Transaction {
	entries := s.transactions[id]
	out := make([]model.Transaction, len(entries))
	copy(out, entries)
	slices.Reverse(out)
	return out
}

func (s *MemoryStore) Commit(ctx context.Context, p model.Portfolio, t model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios[p.ID] = p.Clone()
	s.transactions[p.ID] = append(s.transactions[p.ID], t)
	return nil
}
