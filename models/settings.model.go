package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings section names. Updates address one section at a time and are
// decoded into the matching typed struct, never into a free-form map.
const (
	SectionStore    = "store"
	SectionShipping = "shipping"
	SectionCoins    = "coins"
)

// StoreSection holds storefront identity and contact details.
type StoreSection struct {
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	Phone           string `bson:"phone,omitempty" json:"phone,omitempty"`
	Announcement    string `bson:"announcement,omitempty" json:"announcement,omitempty"`
	MaintenanceMode bool   `bson:"maintenance_mode" json:"maintenance_mode"`
}

// ShippingSection holds the flat fee and the free-shipping threshold.
type ShippingSection struct {
	FlatRate  float64 `bson:"flat_rate" json:"flat_rate"`
	FreeAbove float64 `bson:"free_above" json:"free_above"`
}

// CoinsSection controls the loyalty program.
type CoinsSection struct {
	Enabled         bool    `bson:"enabled" json:"enabled"`
	EarnRatePercent float64 `bson:"earn_rate_percent" json:"earn_rate_percent"`
}

// Settings is the singleton settings document. It is loaded once at startup
// and passed by reference to the controllers that need it.
type Settings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Store     StoreSection       `bson:"store" json:"store"`
	Shipping  ShippingSection    `bson:"shipping" json:"shipping"`
	Coins     CoinsSection       `bson:"coins" json:"coins"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultSettings seeds the document on first run.
func DefaultSettings() Settings {
	return Settings{
		Store: StoreSection{
			Name:  "BRELIS Streetwear",
			Email: "hello@brelis.in",
		},
		Shipping: ShippingSection{
			FlatRate:  150,
			FreeAbove: 2000,
		},
		Coins: CoinsSection{
			Enabled:         true,
			EarnRatePercent: 1,
		},
		UpdatedAt: time.Now(),
	}
}

// ApplySection decodes raw into the typed struct for the named section,
// validates it and assigns it. Unknown section names are rejected.
func (s *Settings) ApplySection(section string, raw json.RawMessage) error {
	switch section {
	case SectionStore:
		var store StoreSection
		if err := json.Unmarshal(raw, &store); err != nil {
			return fmt.Errorf("invalid store settings: %w", err)
		}
		if store.Name == "" || store.Email == "" {
			return fmt.Errorf("store name and email are required")
		}
		s.Store = store
	case SectionShipping:
		var shipping ShippingSection
		if err := json.Unmarshal(raw, &shipping); err != nil {
			return fmt.Errorf("invalid shipping settings: %w", err)
		}
		if shipping.FlatRate < 0 || shipping.FreeAbove < 0 {
			return fmt.Errorf("shipping rates must not be negative")
		}
		s.Shipping = shipping
	case SectionCoins:
		var coins CoinsSection
		if err := json.Unmarshal(raw, &coins); err != nil {
			return fmt.Errorf("invalid coins settings: %w", err)
		}
		if coins.EarnRatePercent < 0 || coins.EarnRatePercent > 100 {
			return fmt.Errorf("coin earn rate must be between 0 and 100")
		}
		s.Coins = coins
	default:
		return fmt.Errorf("unknown settings section %q", section)
	}
	s.UpdatedAt = time.Now()
	return nil
}
