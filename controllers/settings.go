package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"brelis-api/config"
	"brelis-api/models"
	"brelis-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsController owns the singleton settings document. It is loaded
// once at startup, seeded with defaults on first run, and handed by
// reference to the controllers that price shipping and coins. Updates go
// through typed section structs, never a free-form map.
type SettingsController struct {
	Collection *mongo.Collection

	mu      sync.RWMutex
	current models.Settings
}

// NewSettingsController loads the settings document, seeding defaults when
// none exists yet.
func NewSettingsController(client *mongo.Client, cfg *config.Config) (*SettingsController, error) {
	sc := &SettingsController{
		Collection: client.Database(cfg.Mongo.Database).Collection("settings"),
	}

	ctx, cancel := requestContext()
	defer cancel()

	var settings models.Settings
	err := sc.Collection.FindOne(ctx, bson.M{}).Decode(&settings)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		settings = models.DefaultSettings()
		result, err := sc.Collection.InsertOne(ctx, settings)
		if err != nil {
			return nil, err
		}
		settings.ID = result.InsertedID.(primitive.ObjectID)
	default:
		return nil, err
	}

	sc.current = settings
	return sc, nil
}

// Current returns a copy of the in-memory settings.
func (sc *SettingsController) Current() models.Settings {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.current
}

// Get returns the settings document. Public so the storefront can read the
// announcement bar and shipping thresholds.
func (sc *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	utils.RespondData(w, http.StatusOK, sc.Current())
}

// UpdateSection replaces one named section (admin only). The raw body is
// decoded into the section's typed struct and validated before anything is
// persisted.
func (sc *SettingsController) UpdateSection(w http.ResponseWriter, r *http.Request) {
	section := mux.Vars(r)["section"]

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	updated := sc.current
	if err := updated.ApplySection(section, raw); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	_, err := sc.Collection.UpdateOne(ctx, bson.M{"_id": updated.ID}, bson.M{"$set": bson.M{
		section:      sectionValue(&updated, section),
		"updated_at": updated.UpdatedAt,
	}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error saving settings")
		return
	}

	sc.current = updated
	utils.RespondData(w, http.StatusOK, updated)
}

// sectionValue picks the typed struct for a known section name. ApplySection
// has already rejected unknown names.
func sectionValue(s *models.Settings, section string) any {
	switch section {
	case models.SectionStore:
		return s.Store
	case models.SectionShipping:
		return s.Shipping
	case models.SectionCoins:
		return s.Coins
	}
	return nil
}
