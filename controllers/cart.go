package controllers

import (
	"context"
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
)

// CartController handles cart-related requests
type CartController struct {
	Carts    *mongo.Collection
	Products *mongo.Collection
	Users    *mongo.Collection
	validate *validator.Validate
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client, cfg *config.Config) *CartController {
	db := client.Database(cfg.Mongo.Database)
	return &CartController{
		Carts:    db.Collection("carts"),
		Products: db.Collection("products"),
		Users:    db.Collection("users"),
		validate: validator.New(),
	}
}

// loadOrCreateCart fetches the user's cart, creating it lazily on first
// access. The cart is never deleted afterwards.
func (cc *CartController) loadOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := cc.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	cart = models.Cart{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := cc.Carts.InsertOne(ctx, cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// saveCart persists the full cart state.
func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := cc.Carts.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
		"items":           cart.Items,
		"coupon_code":     cart.CouponCode,
		"discount_amount": cart.DiscountAmount,
		"coins_used":      cart.CoinsUsed,
		"coins_discount":  cart.CoinsDiscount,
		"updated_at":      cart.UpdatedAt,
	}})
	return err
}

// cartView decorates the cart with its derived amounts for the response.
func cartView(cart *models.Cart) map[string]any {
	return map[string]any{
		"cart":       cart,
		"subtotal":   cart.Subtotal(),
		"item_count": cart.ItemCount(),
		"total":      cart.Total(),
	}
}

// GetCart retrieves the user's cart, creating it on first access.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// AddItem adds a (product, size) line to the cart, merging quantity into an
// existing line.
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddCartItemRequest
	if !decodeAndValidate(w, r, cc.validate, &req) {
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	var product models.Product
	if err := cc.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if !product.IsActive {
		utils.RespondError(w, http.StatusBadRequest, "Product is not available")
		return
	}

	variant, ok := product.SizeVariant(req.Size)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Size not available for this product")
		return
	}
	if variant.Stock < req.Quantity {
		utils.RespondError(w, http.StatusBadRequest, "Insufficient stock for size "+req.Size)
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	cart.AddItem(models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     image,
		Size:      req.Size,
		Quantity:  req.Quantity,
		Price:     product.PriceFor(req.Size),
	})

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// UpdateItem changes a line's quantity; zero removes the line.
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCartItemRequest
	if !decodeAndValidate(w, r, cc.validate, &req) {
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	if !cart.UpdateItemQuantity(productID, req.Size, req.Quantity) {
		utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// RemoveItem deletes an exact (product, size) line.
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, ok := objectIDVar(w, vars, "productID")
	if !ok {
		return
	}
	size := vars["size"]

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	if !cart.RemoveItem(productID, size) {
		utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// ClearCart empties the cart, keeping the document for reuse.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	cart.Clear()
	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error clearing cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// ApplyCoupon validates a code against the coupon table and stores the
// computed discount on the cart. The amount is not recomputed when the cart
// changes afterwards; Total() only floors at zero.
func (cc *CartController) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyCouponRequest
	if !decodeAndValidate(w, r, cc.validate, &req) {
		return
	}

	coupon, ok := models.LookupCoupon(req.Code)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid coupon code")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	subtotal := cart.Subtotal()
	if !coupon.Eligible(subtotal) {
		utils.RespondError(w, http.StatusBadRequest, "Cart subtotal does not meet the coupon minimum")
		return
	}

	cart.CouponCode = coupon.Code
	cart.DiscountAmount = coupon.Discount(subtotal)

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// RemoveCoupon drops the applied coupon.
func (cc *CartController) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	cart.CouponCode = ""
	cart.DiscountAmount = 0

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// ApplyCoins puts coins toward the cart as a discount of min(coins,
// subtotal). The balance is checked here and re-checked inside the checkout
// transaction, where the actual debit happens.
func (cc *CartController) ApplyCoins(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyCoinsRequest
	if !decodeAndValidate(w, r, cc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	if user.Coins < req.Coins {
		utils.RespondError(w, http.StatusBadRequest, "Insufficient coins")
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	if len(cart.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	cart.ApplyCoins(req.Coins)

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}

// RemoveCoins drops the coins discount.
func (cc *CartController) RemoveCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, cc.Users)
	if user == nil {
		return
	}

	cart, err := cc.loadOrCreateCart(ctx, user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
		return
	}

	cart.RemoveCoins()

	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondData(w, http.StatusOK, cartView(cart))
}
