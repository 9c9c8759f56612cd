package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*Service, *MemStore) {
	store := NewMemStore()
	return NewService(store, zap.NewNop()), store
}

func TestService_PersistsAfterEveryMutation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "owner", item("p1", 100, 1))
	require.NoError(t, err)

	snapshotItems := func() []LineItem {
		data, ok, err := store.Load(ctx, "owner")
		require.NoError(t, err)
		require.True(t, ok, "mutation must write a snapshot")
		var items []LineItem
		require.NoError(t, json.Unmarshal(data, &items))
		return items
	}

	require.Len(t, snapshotItems(), 1)

	_, err = svc.SetQuantity(ctx, "owner", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, snapshotItems()[0].Quantity)

	_, err = svc.RemoveItem(ctx, "owner", "p1")
	require.NoError(t, err)
	assert.Empty(t, snapshotItems())

	_, err = svc.AddItem(ctx, "owner", item("p2", 50, 2))
	require.NoError(t, err)
	_, err = svc.Clear(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, snapshotItems())
}

func TestService_SnapshotRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	want := []LineItem{
		{ID: "p1", Name: "Chocolate Truffle Cake", Price: decimal.NewFromInt(550), Quantity: 2},
		{ID: "p2", Name: "Nankhatai", Price: decimal.NewFromInt(90), Quantity: 1},
	}
	for _, it := range want {
		_, err := svc.AddItem(ctx, "owner", it)
		require.NoError(t, err)
	}

	got, err := svc.Get(ctx, "owner")
	require.NoError(t, err)

	if diff := cmp.Diff(want, got.Items()); diff != "" {
		t.Fatalf("cart did not survive the persistence round trip (-want +got):\n%s", diff)
	}
}

func TestService_MalformedSnapshotRecoversEmpty(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "owner", []byte(`{"not":"an array"`)))

	c, err := svc.Get(ctx, "owner")
	require.NoError(t, err, "corrupt snapshots must not surface as errors")
	assert.Equal(t, 0, c.Len())

	// The next mutation starts from the recovered empty cart.
	c, err = svc.AddItem(ctx, "owner", item("p1", 100, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, c.ItemCount())
}

func TestService_MissingSnapshotStartsEmpty(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestService_OwnersAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", item("p1", 100, 1))
	require.NoError(t, err)

	c, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestService_OperationsApplyInCallOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "owner", item("p1", 100, 1))
	require.NoError(t, err)

	// remove then set-quantity: the set is a no-op on the gone id
	_, err = svc.RemoveItem(ctx, "owner", "p1")
	require.NoError(t, err)
	c, err := svc.SetQuantity(ctx, "owner", "p1", 3)
	require.NoError(t, err)
	assert.False(t, c.Contains("p1"))

	// set-quantity to zero then remove: both leave the cart empty
	_, err = svc.AddItem(ctx, "owner", item("p2", 50, 2))
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "owner", "p2", 0)
	require.NoError(t, err)
	c, err = svc.Get(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
