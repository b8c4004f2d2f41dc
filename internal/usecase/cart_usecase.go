package usecase

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// Repositoryは Cart と CartItem を分離して受け取ります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// Quantity省略時は1
type AddCartInput struct {
	ProductID int64
	Quantity  *int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (model.Cart, error) {
	if userID <= 0 {
		return model.Cart{}, unauthorized("unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, fmt.Errorf("get cart: %w", err)
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return model.Cart{}, fmt.Errorf("list cart items: %w", err)
	}
	cart.Items = items

	return cart, nil
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartInput) (model.CartItem, error) {
	if userID <= 0 {
		return model.CartItem{}, unauthorized("unauthorized")
	}
	if in.ProductID <= 0 {
		return model.CartItem{}, validationError("invalid product_id")
	}

	qty := int64(1)
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if err := checkQuantity(qty); err != nil {
		return model.CartItem{}, err
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartItem{}, notFound("product not found")
		}
		return model.CartItem{}, fmt.Errorf("find product: %w", err)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.CartItem{}, fmt.Errorf("get cart: %w", err)
	}

	item, err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, qty)
	if errors.Is(err, repo.ErrQuantityLimit) {
		return model.CartItem{}, validationError(quantityTooLarge)
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("upsert cart item: %w", err)
	}
	return item, nil
}

// 数量変更（所有チェックが先）。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (model.CartItem, error) {
	if userID <= 0 {
		return model.CartItem{}, unauthorized("unauthorized")
	}
	if err := u.ensureOwned(ctx, userID, cartItemID); err != nil {
		return model.CartItem{}, err
	}
	if err := checkQuantity(in.Quantity); err != nil {
		return model.CartItem{}, err
	}

	item, err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, notFound("cart item not found")
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("update cart item: %w", err)
	}
	return item, nil
}

// 明細削除（削除した明細を返す）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (model.CartItem, error) {
	if userID <= 0 {
		return model.CartItem{}, unauthorized("unauthorized")
	}
	if err := u.ensureOwned(ctx, userID, cartItemID); err != nil {
		return model.CartItem{}, err
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, notFound("cart item not found")
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("find cart item: %w", err)
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartItem{}, notFound("cart item not found")
		}
		return model.CartItem{}, fmt.Errorf("delete cart item: %w", err)
	}
	return item, nil
}

// カートが無ければ空
func (u *CartUsecase) ListItems(ctx context.Context, userID int64) ([]model.CartItem, error) {
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// 明細を全削除（カートが無いユーザーは404）
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (model.Cart, error) {
	if userID <= 0 {
		return model.Cart{}, unauthorized("unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, notFound("cart not found")
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("find cart: %w", err)
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return model.Cart{}, fmt.Errorf("clear cart: %w", err)
	}

	cart.Items = []model.CartItem{}
	return cart, nil
}

// 他人の明細・存在しない明細は404（存在を隠す）
func (u *CartUsecase) ensureOwned(ctx context.Context, userID int64, cartItemID int64) error {
	if cartItemID <= 0 {
		return notFound("cart item not found")
	}
	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return fmt.Errorf("check cart item owner: %w", err)
	}
	if !owned {
		return notFound("cart item not found")
	}
	return nil
}

var quantityTooLarge = fmt.Sprintf("quantity must be at most %d", repo.MaxQuantity)

// 1以上MaxQuantity以下
func checkQuantity(qty int64) error {
	if qty < 1 {
		return validationError("quantity must be positive")
	}
	if qty > repo.MaxQuantity {
		return validationError(quantityTooLarge)
	}
	return nil
}
