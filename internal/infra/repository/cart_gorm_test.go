package repository

import (
	"context"
	"math"
	"sync"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/infra/dbtest"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCart_GetOrCreate_SameCartTwice(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	first, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)
	second, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.Equal(t, first.ID, second.ID)

	other, err := r.GetOrCreateByUserID(ctx, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestCart_ConcurrentGetOrCreate_SingleCart(t *testing.T) {
	r := NewCartGormRepository(dbtest.Open(t))

	const N = 20
	ids := make(map[int64]struct{})
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			cart, err := r.GetOrCreateByUserID(ctx, 42)
			if err != nil {
				return err
			}
			mu.Lock()
			ids[cart.ID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Len(t, ids, 1)
}

func TestCart_Upsert_AccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)

	first, err := r.UpsertByCartAndProduct(ctx, cart.ID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Quantity)

	second, err := r.UpsertByCartAndProduct(ctx, cart.ID, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)

	items, err := r.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Quantity)
}

func TestCart_Upsert_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)

	_, err = r.UpsertByCartAndProduct(ctx, cart.ID, 7, 0)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)
	_, err = r.UpsertByCartAndProduct(ctx, cart.ID, 7, -1)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)
}

func TestCart_Upsert_QuantityLimit(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)

	_, err = r.UpsertByCartAndProduct(ctx, cart.ID, 7, repo.MaxQuantity+1)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)
	_, err = r.UpsertByCartAndProduct(ctx, cart.ID, 7, math.MaxInt64)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)

	full, err := r.UpsertByCartAndProduct(ctx, cart.ID, 7, repo.MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, repo.MaxQuantity, full.Quantity)

	//上限を超える加算は弾き、行はそのまま読める
	_, err = r.UpsertByCartAndProduct(ctx, cart.ID, 7, 1)
	assert.ErrorIs(t, err, repo.ErrQuantityLimit)

	got, err := r.FindByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, repo.MaxQuantity, got.Quantity)

	_, err = r.UpdateQuantity(ctx, full.ID, repo.MaxQuantity+1)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)
}

func TestCart_ConcurrentUpsert_SingleRow(t *testing.T) {
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(context.Background(), 1)
	require.NoError(t, err)

	const N = 25
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := r.UpsertByCartAndProduct(ctx, cart.ID, 9, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	items, err := r.ListByCartID(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(N), items[0].Quantity)
}

func TestCart_Clear_KeepsCartRow(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)
	for _, pid := range []int64{1, 2, 3} {
		_, err := r.UpsertByCartAndProduct(ctx, cart.ID, pid, 1)
		require.NoError(t, err)
	}

	require.NoError(t, r.Clear(ctx, cart.ID))

	items, err := r.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	found, err := r.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)

	assert.ErrorIs(t, r.Clear(ctx, 9999), repo.ErrNotFound)
}

func TestCart_UpdateDeleteAndOwnership(t *testing.T) {
	ctx := context.Background()
	r := NewCartGormRepository(dbtest.Open(t))

	cart, err := r.GetOrCreateByUserID(ctx, 1)
	require.NoError(t, err)
	item, err := r.UpsertByCartAndProduct(ctx, cart.ID, 5, 1)
	require.NoError(t, err)

	owned, err := r.IsOwnedByUser(ctx, item.ID, 1)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = r.IsOwnedByUser(ctx, item.ID, 2)
	require.NoError(t, err)
	assert.False(t, owned)

	updated, err := r.UpdateQuantity(ctx, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Quantity)

	_, err = r.UpdateQuantity(ctx, 9999, 4)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, r.DeleteByID(ctx, item.ID))
	assert.ErrorIs(t, r.DeleteByID(ctx, item.ID), repo.ErrNotFound)

	_, err = r.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCart_FindByUserID_NotFound(t *testing.T) {
	r := NewCartGormRepository(dbtest.Open(t))

	_, err := r.FindByUserID(context.Background(), 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

var _ repo.CartRepository = (*CartGormRepository)(nil)
var _ repo.CartItemRepository = (*CartGormRepository)(nil)
var _ repo.ProductRepository = (*ProductGormRepository)(nil)
var _ repo.CategoryRepository = (*CategoryGormRepository)(nil)
var _ repo.OrderRepository = (*OrderGormRepository)(nil)
var _ repo.OrderItemRepository = (*OrderItemGormRepository)(nil)
var _ repo.TransactionManager = (*TxManagerGorm)(nil)

func TestUser_CreateDuplicateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewUserGormRepository(dbtest.Open(t))

	u := &model.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)

	err := r.Create(ctx, &model.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	found, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = r.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)

	byID, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}
