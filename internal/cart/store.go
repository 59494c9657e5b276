package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"go.uber.org/zap"
)

// slotPrefix is the fixed name of the persisted cart slot; the client
// profile id is appended to scope it to one shopper.
const slotPrefix = "potteryCart"

func slotKey(cartID string) string {
	return fmt.Sprintf("%s:%s", slotPrefix, cartID)
}

// Store persists the serialized cart between visits. Load never fails on a
// bad payload: an absent or unparseable slot yields an empty cart, so the
// shopper sees an empty cart instead of an error.
type Store interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, cartID string, cart *Cart) error
	Delete(ctx context.Context, cartID string) error
}

// The persisted form is the bare JSON array of product snapshots. An empty
// cart is written explicitly as [] so a later Load never reads back stale
// items.
func encodeCart(c *Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []catalog.Product{}
	}
	return json.Marshal(items)
}

func decodeCart(data []byte) (*Cart, error) {
	var items []catalog.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &Cart{Items: items}, nil
}

// InMemoryStore holds encoded slots in a map; used for tests and when no
// Redis address is configured. Going through the same codec as the Redis
// store keeps the round-trip behavior identical.
type InMemoryStore struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	logger *zap.Logger
}

func NewInMemoryStore(logger *zap.Logger) *InMemoryStore {
	return &InMemoryStore{
		slots:  make(map[string][]byte),
		logger: logger,
	}
}

func (s *InMemoryStore) Load(ctx context.Context, cartID string) (*Cart, error) {
	s.mu.RLock()
	data, ok := s.slots[slotKey(cartID)]
	s.mu.RUnlock()
	if !ok {
		return New(), nil
	}

	cart, err := decodeCart(data)
	if err != nil {
		s.logger.Warn("discarding unparseable cart slot", zap.String("cart_id", cartID), zap.Error(err))
		return New(), nil
	}
	return cart, nil
}

func (s *InMemoryStore) Save(ctx context.Context, cartID string, cart *Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	s.mu.Lock()
	s.slots[slotKey(cartID)] = data
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.slots, slotKey(cartID))
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a slot with an arbitrary payload; tests use it to
// exercise the parse-failure path.
func (s *InMemoryStore) Corrupt(cartID string, payload []byte) {
	s.mu.Lock()
	s.slots[slotKey(cartID)] = payload
	s.mu.Unlock()
}
