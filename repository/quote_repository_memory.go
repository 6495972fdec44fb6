package repository

import (
	"fmt"
	"sync"

	"loan-fee/domain"
)

// QuoteRepositoryMemory is an in-memory implementation of QuoteRepository.
type QuoteRepositoryMemory struct {
	mu    sync.RWMutex
	data  []domain.Quote
	index map[string]int
}

// NewQuoteRepositoryMemory creates a new in-memory quote repository.
func NewQuoteRepositoryMemory() *QuoteRepositoryMemory {
	return &QuoteRepositoryMemory{
		data:  []domain.Quote{},
		index: make(map[string]int),
	}
}

// Save stores the quote in memory.
func (r *QuoteRepositoryMemory) Save(quote domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[quote.ID]; ok {
		r.data[i] = quote
		return nil
	}
	r.index[quote.ID] = len(r.data)
	r.data = append(r.data, quote)
	return nil
}

func (r *QuoteRepositoryMemory) FindByID(id string) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Quote{}, &domain.OpError{
			Op:   "repository.find_quote",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("quote %s: %w", id, domain.ErrNotFound),
		}
	}
	return r.data[i], nil
}

// All returns the stored quotes in insertion order.
func (r *QuoteRepositoryMemory) All() []domain.Quote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Quote, len(r.data))
	copy(out, r.data)
	return out
}
