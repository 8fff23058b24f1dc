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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewController handles product reviews. One review per (user, product).
type ReviewController struct {
	Reviews  *mongo.Collection
	Products *mongo.Collection
	Users    *mongo.Collection
	validate *validator.Validate
}

// NewReviewController creates a new ReviewController.
func NewReviewController(client *mongo.Client, cfg *config.Config) *ReviewController {
	db := client.Database(cfg.Mongo.Database)
	return &ReviewController{
		Reviews:  db.Collection("reviews"),
		Products: db.Collection("products"),
		Users:    db.Collection("users"),
		validate: validator.New(),
	}
}

// recomputeRating re-queries all reviews for the product and averages them.
// Linear in the number of reviews per write; fine at this catalog's scale.
func (rc *ReviewController) recomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	cursor, err := rc.Reviews.Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return err
	}

	var rating float64
	if len(reviews) > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	_, err = rc.Products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": bson.M{
		"rating":       rating,
		"review_count": len(reviews),
	}})
	return err
}

// ListByProduct returns a page of reviews for a product, newest first.
func (rc *ReviewController) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := objectIDVar(w, mux.Vars(r), "productID")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	page, limit := utils.ParsePagination(r)
	filter := bson.M{"product_id": productID}

	total, err := rc.Reviews.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting reviews")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := rc.Reviews.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading reviews")
		return
	}

	utils.RespondData(w, http.StatusOK, utils.PagedData{
		Items:      reviews,
		Pagination: utils.NewPagination(page, limit, total),
	})
}

// Create posts a review and refreshes the product's aggregate rating.
func (rc *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if !decodeAndValidate(w, r, rc.validate, &req) {
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, rc.Users)
	if user == nil {
		return
	}

	count, err := rc.Products.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil || count == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	existing, err := rc.Reviews.CountDocuments(ctx, bson.M{"product_id": productID, "user_id": user.ID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if existing > 0 {
		utils.RespondError(w, http.StatusBadRequest, "You have already reviewed this product")
		return
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := rc.Reviews.InsertOne(ctx, review); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating review")
		return
	}

	if err := rc.recomputeRating(ctx, productID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product rating")
		return
	}

	utils.RespondData(w, http.StatusCreated, review)
}

// Update edits the caller's own review and refreshes the aggregate.
func (rc *ReviewController) Update(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if !decodeAndValidate(w, r, rc.validate, &req) {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, rc.Users)
	if user == nil {
		return
	}

	var review models.Review
	if err := rc.Reviews.FindOne(ctx, bson.M{"_id": reviewID, "user_id": user.ID}).Decode(&review); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Review not found")
		return
	}

	_, err := rc.Reviews.UpdateOne(ctx, bson.M{"_id": reviewID}, bson.M{"$set": bson.M{
		"rating":     req.Rating,
		"title":      req.Title,
		"comment":    req.Comment,
		"updated_at": time.Now(),
	}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating review")
		return
	}

	if err := rc.recomputeRating(ctx, review.ProductID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product rating")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Review updated")
}

// Delete removes the caller's own review (admins may remove any) and
// refreshes the aggregate.
func (rc *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user := currentUser(ctx, w, r, rc.Users)
	if user == nil {
		return
	}

	filter := bson.M{"_id": reviewID}
	if user.Role != "admin" {
		filter["user_id"] = user.ID
	}

	var review models.Review
	if err := rc.Reviews.FindOne(ctx, filter).Decode(&review); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Review not found")
		return
	}

	if _, err := rc.Reviews.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting review")
		return
	}

	if err := rc.recomputeRating(ctx, review.ProductID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product rating")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Review deleted")
}
