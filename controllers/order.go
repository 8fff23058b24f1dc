package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"brelis-api/config"
	"brelis-api/models"
	"brelis-api/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderController handles checkout and the customer's order views.
type OrderController struct {
	client       *mongo.Client
	Orders       *mongo.Collection
	Carts        *mongo.Collection
	Products     *mongo.Collection
	Users        *mongo.Collection
	CoinTxns     *mongo.Collection
	Settings     *SettingsController
	EmailService *utils.EmailService
	validate     *validator.Validate
}

// NewOrderController creates a new OrderController.
func NewOrderController(client *mongo.Client, cfg *config.Config, settings *SettingsController, emailService *utils.EmailService) *OrderController {
	db := client.Database(cfg.Mongo.Database)
	return &OrderController{
		client:       client,
		Orders:       db.Collection("orders"),
		Carts:        db.Collection("carts"),
		Products:     db.Collection("products"),
		Users:        db.Collection("users"),
		CoinTxns:     db.Collection("coin_transactions"),
		Settings:     settings,
		EmailService: emailService,
		validate:     validator.New(),
	}
}

// CreateOrder places an order from the user's cart. Order insert, stock
// decrement, coin debit with its ledger entry, and the cart clear all run in
// one session transaction: either the whole checkout happens or none of it
// does, and the coin balance is re-checked inside the transaction.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeAndValidate(w, r, oc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, oc.Users)
	if user == nil {
		return
	}

	settings := oc.Settings.Current()

	session, err := oc.client.StartSession()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to start checkout")
		return
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Load the cart inside the transaction. WithTransaction retries its
		// callback on transient errors, and a snapshot taken outside the
		// session could already be cleared by a checkout that committed in
		// between, which would place the same order twice.
		var cart models.Cart
		if err := oc.Carts.FindOne(sc, bson.M{"user_id": user.ID}).Decode(&cart); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errEmptyCart
			}
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, errEmptyCart
		}

		// Reload every product inside the transaction so the snapshot
		// and the stock checks see consistent state.
		products := make(map[primitive.ObjectID]*models.Product, len(cart.Items))
		for _, line := range cart.Items {
			if _, seen := products[line.ProductID]; seen {
				continue
			}
			var product models.Product
			if err := oc.Products.FindOne(sc, bson.M{"_id": line.ProductID}).Decode(&product); err != nil {
				return nil, fmt.Errorf("product %s not found", line.ProductID.Hex())
			}
			products[line.ProductID] = &product
		}

		order, err := buildOrder(&cart, products, req.Address, req.PaymentMethod, settings.Shipping, settings.Coins)
		if err != nil {
			return nil, err
		}

		if _, err := oc.Orders.InsertOne(sc, order); err != nil {
			return nil, err
		}

		if err := decrementStock(sc, oc.Products, order.Items); err != nil {
			return nil, err
		}

		if order.CoinsUsed > 0 {
			_, err := adjustCoins(sc, oc.Users, oc.CoinTxns, user.ID, order.ID,
				order.CoinsUsed, models.CoinRedeemed, "Redeemed at checkout")
			if err != nil {
				return nil, err
			}
		}

		cleared := cart
		cleared.Clear()
		cleared.UpdatedAt = time.Now()
		if _, err := oc.Carts.UpdateOne(sc, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
			"items":           []models.CartItem{},
			"coupon_code":     "",
			"discount_amount": 0,
			"coins_used":      0,
			"coins_discount":  0,
			"updated_at":      cleared.UpdatedAt,
		}}); err != nil {
			return nil, err
		}

		return order, nil
	})
	if err != nil {
		switch err {
		case errEmptyCart:
			utils.RespondError(w, http.StatusBadRequest, "Cart is empty")
		case models.ErrInsufficientCoins:
			utils.RespondError(w, http.StatusBadRequest, "Insufficient coins")
		default:
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	order := result.(*models.Order)

	go func(email, name string, order *models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, order); err != nil {
			slog.Error("failed to send order confirmation", slog.String("email", email), slog.String("error", err.Error()))
		}
	}(user.Email, user.Name, order)

	slog.Info("order placed",
		slog.String("order_id", order.ID.Hex()),
		slog.String("user_id", user.ID.Hex()),
		slog.Float64("total", order.Total))

	utils.RespondData(w, http.StatusCreated, order)
}

// GetOrders retrieves the authenticated user's orders, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, oc.Users)
	if user == nil {
		return
	}

	page, limit := utils.ParsePagination(r)
	filter := bson.M{"user_id": user.ID}

	total, err := oc.Orders.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting orders")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := oc.Orders.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	utils.RespondData(w, http.StatusOK, utils.PagedData{
		Items:      orders,
		Pagination: utils.NewPagination(page, limit, total),
	})
}

// GetOrderByID retrieves one of the user's own orders.
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, oc.Users)
	if user == nil {
		return
	}

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID, "user_id": user.ID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondData(w, http.StatusOK, order)
}

// CancelOrder lets the customer cancel a pending or confirmed order. Stock
// restore, coin refund with its ledger entry, and the status change run in
// one transaction.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, oc.Users)
	if user == nil {
		return
	}

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID, "user_id": user.ID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !order.Status.Cancellable() {
		utils.RespondError(w, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	session, err := oc.client.StartSession()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Claim the status flip first: if another transition won the race
		// since our read above, the filter misses and the refund and stock
		// restore never run a second time.
		if err := claimTransition(sc, oc.Orders, order.ID, order.Status, models.OrderStatusCancelled); err != nil {
			return nil, err
		}

		if err := restoreStock(sc, oc.Products, order.Items); err != nil {
			return nil, err
		}

		if order.CoinsUsed > 0 {
			_, err := adjustCoins(sc, oc.Users, oc.CoinTxns, user.ID, order.ID,
				order.CoinsUsed, models.CoinEarned, "Refund for cancelled order")
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if err == errOrderStateChanged {
			utils.RespondError(w, http.StatusConflict, "Order was updated in the meantime")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	slog.Info("order cancelled",
		slog.String("order_id", order.ID.Hex()),
		slog.String("user_id", user.ID.Hex()))

	utils.RespondMessage(w, http.StatusOK, "Order cancelled")
}
