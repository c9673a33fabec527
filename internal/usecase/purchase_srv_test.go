package usecase

import (
	"context"
	"testing"

	"classifieds-market/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	seller := h.addUser(t, "seller", true)
	h.addUser(t, "alice", false)
	h.addUser(t, "bob", false)
	item := h.addItem(t, seller, "camera")

	assert.Equal(t, entity.ResultNotFound, h.svc.Purchase.Request(ctx, "ghost", item.Seq))
	assert.Equal(t, entity.ResultNotFound, h.svc.Purchase.Request(ctx, "alice", 999))
	assert.Equal(t, entity.ResultForbidden, h.svc.Purchase.Request(ctx, "seller", item.Seq))

	require.Equal(t, entity.ResultSuccess, h.svc.Purchase.Request(ctx, "alice", item.Seq))
	assert.True(t, h.items.rows[item.Seq].PurchaseType)
	assert.Equal(t, entity.ResultConflict, h.svc.Purchase.Request(ctx, "bob", item.Seq))

	list, result := h.svc.Purchase.List(ctx, "alice")
	require.Equal(t, entity.ResultSuccess, result)
	require.Len(t, list, 1)
	assert.Equal(t, item.Seq, list[0].Seq)

	_, result = h.svc.Purchase.List(ctx, "ghost")
	assert.Equal(t, entity.ResultNotFound, result)

	assert.Equal(t, entity.ResultForbidden, h.svc.Purchase.Complete(ctx, "bob", "alice", item.Seq))
	assert.Equal(t, entity.ResultNotFound, h.svc.Purchase.Complete(ctx, "seller", "bob", item.Seq))
	require.Equal(t, entity.ResultSuccess, h.svc.Purchase.Complete(ctx, "seller", "alice", item.Seq))

	// one of two units left, so the item is listed again
	assert.Equal(t, 1, h.items.rows[item.Seq].Cnt)
	assert.False(t, h.items.rows[item.Seq].PurchaseType)

	list, _ = h.svc.Purchase.List(ctx, "alice")
	assert.Empty(t, list)

	// already completed, not missing
	assert.Equal(t, entity.ResultConflict, h.svc.Purchase.Complete(ctx, "seller", "alice", item.Seq))
	require.Equal(t, entity.ResultSuccess, h.svc.Purchase.Request(ctx, "bob", item.Seq))
	assert.Equal(t, entity.ResultConflict, h.svc.Purchase.Request(ctx, "alice", item.Seq))
}
