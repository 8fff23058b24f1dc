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

// LookbookController handles editorial lookbook entries.
type LookbookController struct {
	Lookbook *mongo.Collection
	validate *validator.Validate
}

// NewLookbookController creates a new LookbookController.
func NewLookbookController(client *mongo.Client, cfg *config.Config) *LookbookController {
	return &LookbookController{
		Lookbook: client.Database(cfg.Mongo.Database).Collection("lookbook"),
		validate: validator.New(),
	}
}

// List returns active entries ordered by position. Admins pass all=true to
// include inactive ones; on this public route the flag requires a valid
// admin token.
func (lc *LookbookController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{"is_active": true}
	if r.URL.Query().Get("all") == "true" && adminRequest(r) {
		delete(filter, "is_active")
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := lc.Lookbook.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching lookbook")
		return
	}
	defer cursor.Close(ctx)

	entries := []models.LookbookEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading lookbook")
		return
	}

	utils.RespondData(w, http.StatusOK, entries)
}

func parseProductIDs(hexes []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, hex := range hexes {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Create adds a lookbook entry (admin only).
func (lc *LookbookController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LookbookRequest
	if !decodeAndValidate(w, r, lc.validate, &req) {
		return
	}

	productIDs, ok := parseProductIDs(req.Products)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID in products")
		return
	}

	entry := models.LookbookEntry{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Image:     req.Image,
		Season:    req.Season,
		Products:  productIDs,
		Position:  req.Position,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := lc.Lookbook.InsertOne(ctx, entry); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating lookbook entry")
		return
	}

	utils.RespondData(w, http.StatusCreated, entry)
}

// Update replaces a lookbook entry (admin only).
func (lc *LookbookController) Update(w http.ResponseWriter, r *http.Request) {
	entryID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var req models.LookbookRequest
	if !decodeAndValidate(w, r, lc.validate, &req) {
		return
	}

	productIDs, ok := parseProductIDs(req.Products)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID in products")
		return
	}

	set := bson.M{
		"title":    req.Title,
		"image":    req.Image,
		"season":   req.Season,
		"products": productIDs,
		"position": req.Position,
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := lc.Lookbook.UpdateOne(ctx, bson.M{"_id": entryID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating lookbook entry")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Lookbook entry not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Lookbook entry updated")
}

// Delete removes a lookbook entry (admin only).
func (lc *LookbookController) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, ok := objectIDVar(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := lc.Lookbook.DeleteOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting lookbook entry")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Lookbook entry not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Lookbook entry deleted")
}
