package catalog

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type repositoryFunc func(ctx context.Context) ([]Product, error)

func (f repositoryFunc) ListProducts(ctx context.Context) ([]Product, error) {
	return f(ctx)
}

// A caller that gives up must not poison the shared fetch for everyone
// coalesced behind it.
func TestList_SurvivesCancelledCaller(t *testing.T) {
	seed := []Product{{ID: "1", Name: "Raku Vase", Price: 48.00, Available: true}}
	repo := repositoryFunc(func(ctx context.Context) ([]Product, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return seed, nil
	})
	svc := NewService(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("expected fetch to outlive the caller, got %v", err)
	}
	if len(products) != 1 || products[0].Name != "Raku Vase" {
		t.Fatalf("unexpected catalog: %+v", products)
	}
}
