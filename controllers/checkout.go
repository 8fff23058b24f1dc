package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brelis-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errEmptyCart         = errors.New("cart is empty")
	errInsufficientStock = errors.New("insufficient stock")
	errOrderStateChanged = errors.New("order was updated concurrently")
)

// buildOrder validates every cart line against the live products and
// assembles the immutable order snapshot. It touches no storage, so the
// whole pricing pipeline is testable in isolation; the transactional
// checkout persists exactly what it returns.
func buildOrder(cart *models.Cart, products map[primitive.ObjectID]*models.Product, addr models.Address, paymentMethod string, shipping models.ShippingSection, coins models.CoinsSection) (*models.Order, error) {
	if len(cart.Items) == 0 {
		return nil, errEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s not found", line.ProductID.Hex())
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %q is no longer available", product.Name)
		}
		variant, ok := product.SizeVariant(line.Size)
		if !ok {
			return nil, fmt.Errorf("size %s of %q is no longer available", line.Size, product.Name)
		}
		if variant.Stock < line.Quantity {
			return nil, fmt.Errorf("%w for %q size %s", errInsufficientStock, product.Name, line.Size)
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	subtotal := cart.Subtotal()
	shippingCost := models.ShippingCostFor(subtotal, shipping.FlatRate, shipping.FreeAbove)
	total := cart.Total() + shippingCost

	coinsEarned := 0
	if coins.Enabled {
		coinsEarned = models.CoinsEarnedFor(total, coins.EarnRatePercent)
	}

	now := time.Now()
	return &models.Order{
		ID:             primitive.NewObjectID(),
		UserID:         cart.UserID,
		Items:          items,
		Subtotal:       subtotal,
		CouponCode:     cart.CouponCode,
		DiscountAmount: cart.DiscountAmount,
		CoinsUsed:      cart.CoinsUsed,
		CoinsDiscount:  cart.CoinsDiscount,
		ShippingCost:   shippingCost,
		Total:          total,
		CoinsEarned:    coinsEarned,
		Address:        addr,
		Payment: models.Payment{
			Method: paymentMethod,
			Status: "pending",
		},
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// stockGuardFilter matches the product only while the ordered size still
// holds enough stock. A concurrent checkout that consumed the stock first
// makes the guarded update a no-op instead of overselling.
func stockGuardFilter(item models.OrderItem) bson.M {
	return bson.M{
		"_id":   item.ProductID,
		"sizes": bson.M{"$elemMatch": bson.M{"size": item.Size, "stock": bson.M{"$gte": item.Quantity}}},
	}
}

// stockDecrement takes the ordered quantity out of the size matched by the
// guard filter.
func stockDecrement(item models.OrderItem) bson.M {
	return bson.M{"$inc": bson.M{"sizes.$.stock": -item.Quantity}}
}

// decrementStock applies the guarded decrement for every order line. A
// no-op update means the stock ran out underneath us, which aborts the
// enclosing transaction.
func decrementStock(ctx context.Context, products *mongo.Collection, items []models.OrderItem) error {
	for _, item := range items {
		result, err := products.UpdateOne(ctx, stockGuardFilter(item), stockDecrement(item))
		if err != nil {
			return err
		}
		if result.ModifiedCount == 0 {
			return fmt.Errorf("%w for size %s", errInsufficientStock, item.Size)
		}
	}
	return nil
}

// restoreStock puts the ordered quantities back, used on cancellation and
// return.
func restoreStock(ctx context.Context, products *mongo.Collection, items []models.OrderItem) error {
	for _, item := range items {
		_, err := products.UpdateOne(ctx,
			bson.M{"_id": item.ProductID, "sizes.size": item.Size},
			bson.M{"$inc": bson.M{"sizes.$.stock": item.Quantity}},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// transitionFilter matches the order only while it still sits in the status
// the caller observed before starting the transaction.
func transitionFilter(orderID primitive.ObjectID, from models.OrderStatus) bson.M {
	return bson.M{"_id": orderID, "status": from}
}

// claimTransition flips the order's status, pinned on the source status. It
// must run first inside the transaction: WithTransaction retries its callback
// on transient errors, and a pre-check done outside the session can be stale
// by then. ModifiedCount of zero means another writer moved the order first,
// so the transition's stock and coin effects must not run.
func claimTransition(ctx context.Context, orders *mongo.Collection, orderID primitive.ObjectID, from, to models.OrderStatus) error {
	result, err := orders.UpdateOne(ctx, transitionFilter(orderID, from), bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return errOrderStateChanged
	}
	return nil
}

// adjustCoins mutates the user's coin balance and appends the matching
// ledger entry with its balance snapshot. Earned credits, redeemed debits;
// a debit below zero fails with models.ErrInsufficientCoins before any
// write. Must run inside a session transaction so balance and ledger cannot
// diverge.
func adjustCoins(ctx context.Context, users, coinTxns *mongo.Collection, userID, orderID primitive.ObjectID, amount int, txnType models.CoinTransactionType, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("coin adjustment must be positive, got %d", amount)
	}

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return 0, err
	}

	balance := user.Coins
	switch txnType {
	case models.CoinEarned:
		balance += amount
	case models.CoinRedeemed:
		if user.Coins < amount {
			return 0, models.ErrInsufficientCoins
		}
		balance -= amount
	default:
		return 0, fmt.Errorf("unknown coin transaction type %q", txnType)
	}

	if _, err := users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"coins": balance}}); err != nil {
		return 0, err
	}

	txn := models.CoinTransaction{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		OrderID:      orderID,
		Type:         txnType,
		Amount:       amount,
		Description:  description,
		BalanceAfter: balance,
		CreatedAt:    time.Now(),
	}
	if _, err := coinTxns.InsertOne(ctx, txn); err != nil {
		return 0, err
	}

	return balance, nil
}
