package cart

import (
	"context"

	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"go.uber.org/zap"
)

// Service orchestrates cart operations. Every mutation is written back to
// the store before returning, so the persisted slot always reflects the
// latest mutation the shopper issued.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Get(ctx context.Context, cartID string) (*Cart, error) {
	return s.store.Load(ctx, cartID)
}

// Add appends a product snapshot and persists the cart.
func (s *Service) Add(ctx context.Context, cartID string, p catalog.Product) (*Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Add(p)
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops every unit of the given product and persists the cart.
// Removing an id that is not in the cart is not an error.
func (s *Service) Remove(ctx context.Context, cartID, productID string) (*Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if removed := cart.Remove(productID); removed == 0 {
		s.logger.Debug("remove matched no cart entries",
			zap.String("cart_id", cartID),
			zap.String("product_id", productID))
	}
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the persisted slot; clearing an absent or empty cart is a
// no-op.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}
