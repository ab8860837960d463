package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	spray = LineProduct{ID: "anti-rust-spray", Name: "Anti Rust Spray", Price: 90, Image: "/spray.png"}
	wax   = LineProduct{ID: "car-wax", Name: "Car Wax", Price: 250, Image: "/wax.png"}
)

func TestApply_AddMergesByProductID(t *testing.T) {
	c := Apply(Cart{}, AddItem{Product: spray, Quantity: 2, Variant: "60ml"})
	c = Apply(c, AddItem{Product: spray, Quantity: 3, Variant: "500ml"})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	// the repeat add's variant is dropped, the original line keeps its own
	assert.Equal(t, "60ml", c.Items[0].Variant)
}

func TestApply_AddAppendsNewProduct(t *testing.T) {
	c := Apply(Cart{}, AddItem{Product: spray, Quantity: 1})
	c = Apply(c, AddItem{Product: wax, Quantity: 2, Variant: "200g"})

	require.Len(t, c.Items, 2)
	assert.Equal(t, "car-wax", c.Items[1].Product.ID)
	assert.Equal(t, "200g", c.Items[1].Variant)
}

func TestApply_RemoveItem(t *testing.T) {
	c := Apply(Cart{}, AddItem{Product: spray, Quantity: 1})
	c = Apply(c, AddItem{Product: wax, Quantity: 1})

	c = Apply(c, RemoveItem{ProductID: "anti-rust-spray"})
	require.Len(t, c.Items, 1)
	assert.Equal(t, "car-wax", c.Items[0].Product.ID)

	// removing an absent product is a no-op
	c = Apply(c, RemoveItem{ProductID: "missing"})
	assert.Len(t, c.Items, 1)
}

func TestApply_SetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantItems int
		wantQty   int
	}{
		{name: "overwrite", quantity: 7, wantItems: 1, wantQty: 7},
		{name: "zero removes", quantity: 0, wantItems: 0},
		{name: "negative removes", quantity: -1, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Apply(Cart{}, AddItem{Product: spray, Quantity: 3})
			c = Apply(c, SetQuantity{ProductID: "anti-rust-spray", Quantity: tt.quantity})

			require.Len(t, c.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.wantQty, c.Items[0].Quantity)
			}
		})
	}
}

func TestApply_Clear(t *testing.T) {
	c := Apply(Cart{}, AddItem{Product: spray, Quantity: 3})
	c = Apply(c, Clear{})
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total())
}

func TestTotal_MatchesSumAfterMutationSequence(t *testing.T) {
	c := Cart{}
	for _, in := range []Intent{
		AddItem{Product: spray, Quantity: 2},        // 180
		AddItem{Product: wax, Quantity: 1},          // 250
		AddItem{Product: spray, Quantity: 1},        // merge -> qty 3
		SetQuantity{ProductID: "car-wax", Quantity: 4},
		RemoveItem{ProductID: "no-such-product"},
	} {
		c = Apply(c, in)
	}

	var want float64
	for _, item := range c.Items {
		want += item.Product.Price * float64(item.Quantity)
	}
	assert.Equal(t, want, c.Total())
	assert.Equal(t, 90*3+250*4.0, c.Total())
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store := NewStore(NewMemorySnapshots())
	ctx := context.Background()

	_, err := store.Dispatch(ctx, "sess-1", AddItem{Product: spray, Quantity: 2, Variant: "60ml"})
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, "sess-1", AddItem{Product: wax, Quantity: 1})
	require.NoError(t, err)

	got := store.Get(ctx, "sess-1")
	require.Len(t, got.Items, 2)
	assert.Equal(t, "anti-rust-spray", got.Items[0].Product.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "60ml", got.Items[0].Variant)
	assert.Equal(t, 90*2+250.0, got.Total())
}

func TestStore_CorruptSnapshotFallsBackToEmpty(t *testing.T) {
	snaps := NewMemorySnapshots()
	require.NoError(t, snaps.Save(context.Background(), "sess-2", []byte("{not json")))

	store := NewStore(snaps)
	got := store.Get(context.Background(), "sess-2")
	assert.Empty(t, got.Items)
}

func TestStore_ClearDropsSnapshot(t *testing.T) {
	store := NewStore(NewMemorySnapshots())
	ctx := context.Background()

	_, err := store.Dispatch(ctx, "sess-3", AddItem{Product: spray, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, "sess-3"))
	assert.Empty(t, store.Get(ctx, "sess-3").Items)
}
