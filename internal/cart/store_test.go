package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())
	ctx := context.Background()

	c := New()
	c.Add(piece("bowl", 19.99))
	c.Add(piece("mug", 12.50))
	c.Add(piece("bowl", 19.99))

	require.NoError(t, store.Save(ctx, "shopper-1", c))

	loaded, err := store.Load(ctx, "shopper-1")
	require.NoError(t, err)
	require.Equal(t, c.Items, loaded.Items)
	require.Equal(t, c.Total(), loaded.Total())
}

func TestStoreRoundTripEmptyCart(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "shopper-1", New()))

	loaded, err := store.Load(ctx, "shopper-1")
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

// Saving an emptied cart over a previously full slot must not read back
// stale items.
func TestSaveEmptyOverwritesPreviousItems(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())
	ctx := context.Background()

	full := New()
	full.Add(piece("bowl", 19.99))
	require.NoError(t, store.Save(ctx, "shopper-1", full))

	full.Clear()
	require.NoError(t, store.Save(ctx, "shopper-1", full))

	loaded, err := store.Load(ctx, "shopper-1")
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

func TestLoadAbsentSlotYieldsEmptyCart(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())

	loaded, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

// A slot that fails to parse is swallowed: the shopper gets an empty cart,
// never an error.
func TestLoadCorruptSlotYieldsEmptyCart(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())
	store.Corrupt("shopper-1", []byte(`{"not":"an array"`))

	loaded, err := store.Load(context.Background(), "shopper-1")
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewInMemoryStore(zap.NewNop())
	ctx := context.Background()

	c := New()
	c.Add(piece("bowl", 19.99))
	require.NoError(t, store.Save(ctx, "shopper-1", c))

	require.NoError(t, store.Delete(ctx, "shopper-1"))
	require.NoError(t, store.Delete(ctx, "shopper-1"))

	loaded, err := store.Load(ctx, "shopper-1")
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

func TestDecodeCartRejectsNonArray(t *testing.T) {
	_, err := decodeCart([]byte(`{"items":[]}`))
	require.Error(t, err)

	c, err := decodeCart([]byte(`[]`))
	require.NoError(t, err)
	require.True(t, c.Empty())
}
