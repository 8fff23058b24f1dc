package controllers

import (
	"log/slog"
	"net/http"

	"brelis-api/config"
	"brelis-api/models"
	"brelis-api/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminController handles the back-office: user management, the all-orders
// view, the order status machine and dashboard counters.
type AdminController struct {
	client       *mongo.Client
	Users        *mongo.Collection
	Orders       *mongo.Collection
	Products     *mongo.Collection
	CoinTxns     *mongo.Collection
	EmailService *utils.EmailService
	validate     *validator.Validate
}

// NewAdminController creates a new AdminController.
func NewAdminController(client *mongo.Client, cfg *config.Config, emailService *utils.EmailService) *AdminController {
	db := client.Database(cfg.Mongo.Database)
	return &AdminController{
		client:       client,
		Users:        db.Collection("users"),
		Orders:       db.Collection("orders"),
		Products:     db.Collection("products"),
		CoinTxns:     db.Collection("coin_transactions"),
		EmailService: emailService,
		validate:     validator.New(),
	}
}

// ListUsers returns a page of accounts, optionally filtered by email/name.
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["$or"] = []bson.M{
			{"email": bson.M{"$regex": q, "$options": "i"}},
			{"name": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	page, limit := utils.ParsePagination(r)

	total, err := ac.Users.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting users")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0, "verification_token": 0})

	cursor, err := ac.Users.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading users")
		return
	}

	utils.RespondData(w, http.StatusOK, utils.PagedData{
		Items:      users,
		Pagination: utils.NewPagination(page, limit, total),
	})
}

// UpdateUser changes an account's role or active flag.
func (ac *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !decodeAndValidate(w, r, ac.validate, &req) {
		return
	}

	set := bson.M{}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if len(set) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := ac.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "User updated")
}

// ListOrders returns a page of all orders, optionally filtered by status.
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.RespondError(w, http.StatusBadRequest, "Unknown order status")
			return
		}
		filter["status"] = status
	}

	page, limit := utils.ParsePagination(r)

	total, err := ac.Orders.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting orders")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := ac.Orders.Find(ctx, filter, opts)
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

// UpdateOrderStatus drives an order through the status machine. The
// transition table decides which edges exist; its attached effect (coin
// credit on delivery, stock restore + coin refund on cancellation, stock
// restore + coin debit on return) runs in the same transaction as the
// status write, so the ledger can never drift from the order state.
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, ac.validate, &req) {
		return
	}

	next := models.OrderStatus(req.Status)
	if !next.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var order models.Order
	if err := ac.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !order.Status.CanTransitionTo(next) {
		utils.RespondError(w, http.StatusBadRequest,
			"Cannot transition order from "+string(order.Status)+" to "+string(next))
		return
	}

	session, err := ac.client.StartSession()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Claim the status flip first, pinned on the status we validated the
		// transition against. A concurrent transition makes the filter miss
		// and the effects below never run for a state the order left.
		if err := claimTransition(sc, ac.Orders, order.ID, order.Status, next); err != nil {
			return nil, err
		}

		switch order.Status.TransitionEffect(next) {
		case models.EffectCreditEarned:
			if order.CoinsEarned > 0 {
				_, err := adjustCoins(sc, ac.Users, ac.CoinTxns, order.UserID, order.ID,
					order.CoinsEarned, models.CoinEarned, "Earned on delivery")
				if err != nil {
					return nil, err
				}
			}
		case models.EffectRestoreAndRefund:
			if err := restoreStock(sc, ac.Products, order.Items); err != nil {
				return nil, err
			}
			if order.CoinsUsed > 0 {
				_, err := adjustCoins(sc, ac.Users, ac.CoinTxns, order.UserID, order.ID,
					order.CoinsUsed, models.CoinEarned, "Refund for cancelled order")
				if err != nil {
					return nil, err
				}
			}
		case models.EffectRestoreAndDebit:
			if err := restoreStock(sc, ac.Products, order.Items); err != nil {
				return nil, err
			}
			if order.CoinsEarned > 0 {
				_, err := adjustCoins(sc, ac.Users, ac.CoinTxns, order.UserID, order.ID,
					order.CoinsEarned, models.CoinRedeemed, "Reversed on return")
				if err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		switch err {
		case errOrderStateChanged:
			utils.RespondError(w, http.StatusConflict, "Order was updated in the meantime")
		case models.ErrInsufficientCoins:
			utils.RespondError(w, http.StatusConflict, "User has already spent the coins credited for this order")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	order.Status = next
	go func(order models.Order) {
		ctx, cancel := requestContext()
		defer cancel()
		var user models.User
		if err := ac.Users.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err != nil {
			return
		}
		if err := ac.EmailService.SendOrderStatusEmail(user.Email, user.Name, &order); err != nil {
			slog.Error("failed to send status email", slog.String("email", user.Email), slog.String("error", err.Error()))
		}
	}(order)

	slog.Info("order status updated",
		slog.String("order_id", order.ID.Hex()),
		slog.String("status", string(next)))

	utils.RespondMessage(w, http.StatusOK, "Order status updated")
}

// Dashboard returns headline counters for the admin home screen.
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	userCount, err := ac.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}
	productCount, err := ac.Products.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}
	orderCount, err := ac.Orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}
	pendingCount, err := ac.Orders.CountDocuments(ctx, bson.M{"status": models.OrderStatusPending})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	// Revenue counts every order that was not cancelled or returned.
	cursor, err := ac.Orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$nin": bson.A{
			models.OrderStatusCancelled, models.OrderStatusReturned,
		}}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}
	defer cursor.Close(ctx)

	var revenue float64
	var agg []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &agg); err == nil && len(agg) > 0 {
		revenue = agg[0].Revenue
	}

	utils.RespondData(w, http.StatusOK, map[string]any{
		"users":          userCount,
		"products":       productCount,
		"orders":         orderCount,
		"pending_orders": pendingCount,
		"revenue":        revenue,
	})
}
