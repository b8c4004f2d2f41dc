package usecase_test

import (
	"context"
	"math"
	"net/http"
	"testing"

	infraRepo "shop/internal/infra/repository"
	"shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderUsecase(db *gorm.DB) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(db),
		infraRepo.NewOrderGormRepository(db),
		infraRepo.NewOrderItemGormRepository(db),
	)
}

// alice: 同じ商品を1+2個 → 1明細3個 → checkout → OrderItem{product, 3}
func TestCheckout_FromStoredCart(t *testing.T) {
	db := openDB(t)
	carts := newCartUsecase(db)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	p := seedProduct(t, db, "Shoes", 5000)

	_, err := carts.AddItem(ctx, alice.ID, usecase.AddCartInput{ProductID: p.ID, Quantity: qty(1)})
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, alice.ID, usecase.AddCartInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)

	order, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, order.UserID)
	assert.Equal(t, int64(15000), order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, p.ID, order.Items[0].ProductID)
	assert.Equal(t, int64(3), order.Items[0].Quantity)
	assert.Equal(t, int64(5000), order.Items[0].UnitPrice)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	//checkout後はカートが空
	items, err := carts.ListItems(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckout_SubmittedLinesAreMerged(t *testing.T) {
	db := openDB(t)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	shoes := seedProduct(t, db, "Shoes", 5000)
	socks := seedProduct(t, db, "Socks", 300)

	order, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{
		{ProductID: shoes.ID, Quantity: 1},
		{ProductID: socks.ID, Quantity: 4},
		{ProductID: shoes.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, shoes.ID, order.Items[0].ProductID)
	assert.Equal(t, int64(2), order.Items[0].Quantity)
	assert.Equal(t, socks.ID, order.Items[1].ProductID)
	assert.Equal(t, int64(4), order.Items[1].Quantity)
	assert.Equal(t, int64(2*5000+4*300), order.TotalPrice)
}

func TestCheckout_FailuresCreateNothing(t *testing.T) {
	db := openDB(t)
	carts := newCartUsecase(db)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	p := seedProduct(t, db, "Shoes", 5000)

	//空カート
	_, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = carts.AddItem(ctx, alice.ID, usecase.AddCartInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)

	//存在しない商品
	_, err = orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: p.ID + 50, Quantity: 1},
	}})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	//数量0
	_, err = orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{
		{ProductID: p.ID, Quantity: 0},
	}})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	list, err := orders.ListOrders(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	//失敗時はカートもそのまま
	items, err := carts.ListItems(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
}

// 明細を指定した注文は保存済みカートを残す
func TestCheckout_SubmittedLinesKeepStoredCart(t *testing.T) {
	db := openDB(t)
	carts := newCartUsecase(db)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	shoes := seedProduct(t, db, "Shoes", 5000)
	mat := seedProduct(t, db, "Bathroom Mat", 1200)

	_, err := carts.AddItem(ctx, alice.ID, usecase.AddCartInput{ProductID: mat.ID, Quantity: qty(2)})
	require.NoError(t, err)

	_, err = orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{
		{ProductID: shoes.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	items, err := carts.ListItems(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mat.ID, items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestCheckout_QuantityAndTotalLimits(t *testing.T) {
	db := openDB(t)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	shoes := seedProduct(t, db, "Shoes", 5000)
	pricey := seedProduct(t, db, "Yacht", math.MaxInt64/2)

	cases := []struct {
		name  string
		lines []usecase.CheckoutLine
	}{
		{"line over limit", []usecase.CheckoutLine{{ProductID: shoes.ID, Quantity: math.MaxInt64 / 4000}}},
		{"merged lines wrap", []usecase.CheckoutLine{
			{ProductID: shoes.ID, Quantity: math.MaxInt64/2 + 1},
			{ProductID: shoes.ID, Quantity: math.MaxInt64/2 + 1},
		}},
		{"merged over limit", []usecase.CheckoutLine{
			{ProductID: shoes.ID, Quantity: repository.MaxQuantity},
			{ProductID: shoes.ID, Quantity: 1},
		}},
		{"total overflow", []usecase.CheckoutLine{{ProductID: pricey.ID, Quantity: 3}}},
		{"total overflow across lines", []usecase.CheckoutLine{
			{ProductID: pricey.ID, Quantity: 1},
			{ProductID: shoes.ID, Quantity: 1},
			{ProductID: pricey.ID, Quantity: 1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: tc.lines})
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}

	list, err := orders.ListOrders(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	//上限ちょうどは通る
	order, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{
		{ProductID: shoes.ID, Quantity: repository.MaxQuantity},
	}})
	require.NoError(t, err)
	assert.Equal(t, 5000*repository.MaxQuantity, order.TotalPrice)
}

func TestOrders_ListAndGet(t *testing.T) {
	db := openDB(t)
	orders := newOrderUsecase(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	p := seedProduct(t, db, "Shoes", 5000)

	first, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)
	second, err := orders.Checkout(ctx, alice.ID, usecase.CheckoutInput{Items: []usecase.CheckoutLine{{ProductID: p.ID, Quantity: 2}}})
	require.NoError(t, err)

	list, err := orders.ListOrders(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	require.Len(t, list[0].Items, 1)

	got, err := orders.GetOrder(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(1), got.Items[0].Quantity)

	//他人の注文は404
	_, err = orders.GetOrder(ctx, bob.ID, first.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	bobs, err := orders.ListOrders(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}
