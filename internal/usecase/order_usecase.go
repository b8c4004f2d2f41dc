package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

const defaultOrderListLimit = 50

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, items repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, items: items}
}

type CheckoutLine struct {
	ProductID int64
	Quantity  int64
}

// Itemsが空なら保存済みカートを使う
type CheckoutInput struct {
	Items []CheckoutLine
}

// 注文確定。注文作成・明細作成・カートを空にするまでを1トランザクションで行う
// Itemsを指定した注文では保存済みカートに触れない
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, unauthorized("unauthorized")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得（無ければスナップショットは空）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		hasCart := err == nil
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("find cart: %w", err)
		}

		//カートから作った注文のときだけカートを空にする
		lines := in.Items
		fromCart := false
		if len(lines) == 0 && hasCart {
			fromCart = true
			cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
			if err != nil {
				return fmt.Errorf("list cart items: %w", err)
			}
			for _, ci := range cartItems {
				lines = append(lines, CheckoutLine{ProductID: ci.ProductID, Quantity: ci.Quantity})
			}
		}
		if len(lines) == 0 {
			return validationError("cart is empty")
		}

		merged, err := mergeLines(lines)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(merged))
		for _, l := range merged {
			ids = append(ids, l.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("find products: %w", err)
		}

		//単価は注文時点の商品価格
		orderItems := make([]model.OrderItem, 0, len(merged))
		var total int64
		for _, l := range merged {
			p, ok := products[l.ProductID]
			if !ok {
				return notFound(fmt.Sprintf("product %d not found", l.ProductID))
			}
			orderItems = append(orderItems, model.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: p.Price,
			})
			sub, ok := mulInt64(p.Price, l.Quantity)
			if !ok || total > math.MaxInt64-sub {
				return validationError("order total is too large")
			}
			total += sub
		}

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			TotalPrice: total,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		created, err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems)
		if err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		if fromCart {
			if err := r.Carts().Clear(ctx, cart.ID); err != nil {
				return fmt.Errorf("clear cart: %w", err)
			}
		}

		order.Items = created
		out = order
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	return out, nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, unauthorized("unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID, defaultOrderListLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range orders {
		items, err := u.items.ListByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list order items: %w", err)
		}
		orders[i].Items = items
	}
	return orders, nil
}

// 他人の注文は404
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, unauthorized("unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, notFound("order not found")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFound("order not found")
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	if order.UserID != userID {
		return model.Order{}, notFound("order not found")
	}

	items, err := u.items.ListByOrderID(ctx, order.ID)
	if err != nil {
		return model.Order{}, fmt.Errorf("list order items: %w", err)
	}
	order.Items = items
	return order, nil
}

// 同じ商品の行はまとめる（最初に出た順を保つ）
func mergeLines(lines []CheckoutLine) ([]CheckoutLine, error) {
	out := make([]CheckoutLine, 0, len(lines))
	index := make(map[int64]int, len(lines))

	for _, l := range lines {
		if l.ProductID <= 0 {
			return nil, validationError("invalid product_id")
		}
		if err := checkQuantity(l.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[l.ProductID]; ok {
			//どちらも上限以下なので加算で溢れない
			if err := checkQuantity(out[i].Quantity + l.Quantity); err != nil {
				return nil, err
			}
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

// a*bが溢れるならfalse（a, b >= 0）
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}
