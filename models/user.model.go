package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a delivery address
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Label     string             `bson:"label,omitempty" json:"label,omitempty"` // "home", "work"
	Name      string             `bson:"name" json:"name" validate:"required"`
	Phone     string             `bson:"phone" json:"phone" validate:"required"`
	Street    string             `bson:"street" json:"street" validate:"required"`
	City      string             `bson:"city" json:"city" validate:"required"`
	State     string             `bson:"state" json:"state" validate:"required"`
	ZipCode   string             `bson:"zipcode" json:"zipcode" validate:"required"`
	IsDefault bool               `bson:"is_default" json:"is_default"`
}

// User represents a customer or admin account. Coins is the loyalty balance
// in whole coins (1 coin = 1 rupee of discount); every mutation of it is
// mirrored by a CoinTransaction ledger entry in the same database
// transaction.
type User struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string               `bson:"name" json:"name"`
	Email             string               `bson:"email" json:"email"`
	Password          string               `bson:"password,omitempty" json:"-"`
	Phone             string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Role              string               `bson:"role" json:"role"` // "user" or "admin"
	Coins             int                  `bson:"coins" json:"coins"`
	Wishlist          []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	Addresses         []Address            `bson:"addresses" json:"addresses"`
	IsActive          bool                 `bson:"is_active" json:"is_active"`
	IsVerified        bool                 `bson:"is_verified" json:"is_verified"`
	VerificationToken string               `bson:"verification_token,omitempty" json:"-"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=15"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=80"`
	Phone string `json:"phone" validate:"omitempty,min=10,max=15"`
}

// UpdateUserRequest is the admin payload for managing an account.
type UpdateUserRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active"`
}
