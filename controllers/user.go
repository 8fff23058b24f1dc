package controllers

import (
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
	"golang.org/x/crypto/bcrypt"
)

// UserController handles auth, profile, addresses, wishlist and the coin
// ledger view.
type UserController struct {
	Users        *mongo.Collection
	CoinTxns     *mongo.Collection
	Products     *mongo.Collection
	EmailService *utils.EmailService
	cfg          *config.Config
	validate     *validator.Validate
}

// NewUserController creates a new UserController.
func NewUserController(client *mongo.Client, cfg *config.Config, emailService *utils.EmailService) *UserController {
	db := client.Database(cfg.Mongo.Database)
	return &UserController{
		Users:        db.Collection("users"),
		CoinTxns:     db.Collection("coin_transactions"),
		Products:     db.Collection("products"),
		EmailService: emailService,
		cfg:          cfg,
		validate:     validator.New(),
	}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeAndValidate(w, r, uc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	count, err := uc.Users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Phone:     req.Phone,
		Role:      "user",
		Coins:     0,
		Wishlist:  []primitive.ObjectID{},
		Addresses: []models.Address{},
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	verificationToken, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, uc.cfg.JWT.TTL)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating verification token")
		return
	}
	user.VerificationToken = verificationToken

	if _, err := uc.Users.InsertOne(ctx, user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	go func(email, token string) {
		if err := uc.EmailService.SendVerificationEmail(email, token, uc.cfg.HTTPServer.BaseURL); err != nil {
			slog.Error("failed to send verification email", slog.String("email", email), slog.String("error", err.Error()))
		}
	}(user.Email, verificationToken)

	utils.RespondMessage(w, http.StatusCreated, "User registered successfully. Please check your email to verify your account.")
}

// VerifyEmail handles email verification
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondError(w, http.StatusBadRequest, "Verification token missing")
		return
	}

	if _, err := utils.ParseJWT(token); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid token")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	if err := uc.Users.FindOne(ctx, bson.M{"verification_token": token}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "User not found or already verified")
		return
	}

	_, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"is_verified": true, "verification_token": ""},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating verification status")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Email verified successfully. You can now log in.")
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, uc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	if err := uc.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsVerified {
		utils.RespondError(w, http.StatusUnauthorized, "Email not verified")
		return
	}
	if !user.IsActive {
		utils.RespondError(w, http.StatusForbidden, "Account is disabled")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, uc.cfg.JWT.TTL)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	user.Password = ""
	user.VerificationToken = ""
	utils.RespondData(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	user.Password = ""
	user.VerificationToken = ""
	utils.RespondData(w, http.StatusOK, user)
}

// UpdateProfile updates name/phone on the authenticated user.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeAndValidate(w, r, uc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if len(set) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if _, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating profile")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Profile updated")
}

// AddAddress appends a delivery address.
func (uc *UserController) AddAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if !decodeAndValidate(w, r, uc.validate, &addr) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	addr.ID = primitive.NewObjectID()
	if len(user.Addresses) == 0 {
		addr.IsDefault = true
	}

	if _, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$push": bson.M{"addresses": addr}}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error adding address")
		return
	}

	utils.RespondData(w, http.StatusCreated, addr)
}

// UpdateAddress replaces an existing address by id.
func (uc *UserController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var addr models.Address
	if !decodeAndValidate(w, r, uc.validate, &addr) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	addr.ID = addressID
	result, err := uc.Users.UpdateOne(ctx,
		bson.M{"_id": user.ID, "addresses._id": addressID},
		bson.M{"$set": bson.M{"addresses.$": addr}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating address")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Address not found")
		return
	}

	utils.RespondData(w, http.StatusOK, addr)
}

// DeleteAddress removes an address by id.
func (uc *UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	result, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$pull": bson.M{"addresses": bson.M{"_id": addressID}}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting address")
		return
	}
	if result.ModifiedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Address not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Address deleted")
}

// GetWishlist returns the full product documents on the user's wishlist.
func (uc *UserController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	products := []models.Product{}
	if len(user.Wishlist) > 0 {
		cursor, err := uc.Products.Find(ctx, bson.M{"_id": bson.M{"$in": user.Wishlist}})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error fetching wishlist")
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &products); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error reading wishlist")
			return
		}
	}

	utils.RespondData(w, http.StatusOK, products)
}

// AddToWishlist adds a product id to the wishlist (idempotent).
func (uc *UserController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	productID, ok := objectIDVar(w, mux.Vars(r), "productID")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	count, err := uc.Products.CountDocuments(ctx, bson.M{"_id": productID, "is_active": true})
	if err != nil || count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if _, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$addToSet": bson.M{"wishlist": productID}},
	); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Added to wishlist")
}

// RemoveFromWishlist drops a product id from the wishlist.
func (uc *UserController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID, ok := objectIDVar(w, mux.Vars(r), "productID")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	if _, err := uc.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$pull": bson.M{"wishlist": productID}},
	); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Removed from wishlist")
}

// GetCoins returns the balance and a page of the coin ledger, newest first.
func (uc *UserController) GetCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, uc.Users)
	if user == nil {
		return
	}

	page, limit := utils.ParsePagination(r)
	filter := bson.M{"user_id": user.ID}

	total, err := uc.CoinTxns.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting transactions")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := uc.CoinTxns.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching transactions")
		return
	}
	defer cursor.Close(ctx)

	transactions := []models.CoinTransaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading transactions")
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{
		"balance": user.Coins,
		"ledger": utils.PagedData{
			Items:      transactions,
			Pagination: utils.NewPagination(page, limit, total),
		},
	})
}
