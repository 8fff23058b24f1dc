package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LookbookEntry is an editorial image linking to the products it features.
type LookbookEntry struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string               `bson:"title" json:"title"`
	Image     string               `bson:"image" json:"image"`
	Season    string               `bson:"season,omitempty" json:"season,omitempty"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	Position  int                  `bson:"position" json:"position"`
	IsActive  bool                 `bson:"is_active" json:"is_active"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}

// LookbookRequest is the admin payload for creating or updating an entry.
type LookbookRequest struct {
	Title    string   `json:"title" validate:"required,max=120"`
	Image    string   `json:"image" validate:"required"`
	Season   string   `json:"season" validate:"max=40"`
	Products []string `json:"products"`
	Position int      `json:"position" validate:"min=0"`
	IsActive *bool    `json:"is_active"`
}
