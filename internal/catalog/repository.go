package catalog

import (
	"context"
	"sync"
)

// Repository provides read access to the catalog collection.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// InMemoryRepository is used for tests and local scenarios without a
// database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	err      error
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

func (r *InMemoryRepository) ListProducts(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Fail makes every subsequent call return err; tests use it to simulate a
// catalog outage.
func (r *InMemoryRepository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
