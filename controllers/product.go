package controllers

import (
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

// ProductController handles catalog requests.
type ProductController struct {
	Products *mongo.Collection
	validate *validator.Validate
}

// NewProductController creates a new ProductController.
func NewProductController(client *mongo.Client, cfg *config.Config) *ProductController {
	return &ProductController{
		Products: client.Database(cfg.Mongo.Database).Collection("products"),
		validate: validator.New(),
	}
}

// GetProducts lists active products with optional category/search filters
// and pagination. Admins may pass all=true to include inactive products;
// the route is public, so the flag only works with a valid admin token.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{"is_active": true}
	if r.URL.Query().Get("all") == "true" && adminRequest(r) {
		delete(filter, "is_active")
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}

	page, limit := utils.ParsePagination(r)

	total, err := pc.Products.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error counting products")
		return
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch r.URL.Query().Get("sort") {
	case "price_asc":
		sort = bson.D{{Key: "base_price", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "base_price", Value: -1}}
	case "rating":
		sort = bson.D{{Key: "rating", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := pc.Products.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondData(w, http.StatusOK, utils.PagedData{
		Items:      products,
		Pagination: utils.NewPagination(page, limit, total),
	})
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var product models.Product
	if err := pc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondData(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !decodeAndValidate(w, r, pc.validate, &req) {
		return
	}

	for _, size := range req.Sizes {
		if size.Stock < 0 {
			utils.RespondError(w, http.StatusBadRequest, "Stock must not be negative")
			return
		}
	}

	product := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Images:      req.Images,
		Sizes:       req.Sizes,
		BasePrice:   req.BasePrice,
		SalePrice:   req.SalePrice,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := pc.Products.InsertOne(ctx, product); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	utils.RespondData(w, http.StatusCreated, product)
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req models.CreateProductRequest
	if !decodeAndValidate(w, r, pc.validate, &req) {
		return
	}

	for _, size := range req.Sizes {
		if size.Stock < 0 {
			utils.RespondError(w, http.StatusBadRequest, "Stock must not be negative")
			return
		}
	}

	set := bson.M{
		"name":        req.Name,
		"description": req.Description,
		"category":    req.Category,
		"images":      req.Images,
		"sizes":       req.Sizes,
		"base_price":  req.BasePrice,
		"sale_price":  req.SalePrice,
		"updated_at":  time.Now(),
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := pc.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product updated")
}

// DeleteProduct deactivates a product (Admin only). Orders keep their
// snapshots, so a hard delete is never needed.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := pc.Products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product deactivated")
}
