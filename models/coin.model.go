package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInsufficientCoins is returned when a debit would take a user's coin
// balance below zero. No state is mutated when it is returned.
var ErrInsufficientCoins = errors.New("insufficient coins")

// CoinTransactionType is the direction of a ledger entry.
type CoinTransactionType string

const (
	CoinEarned   CoinTransactionType = "earned"
	CoinRedeemed CoinTransactionType = "redeemed"
)

// CoinTransaction is an append-only ledger entry. BalanceAfter snapshots the
// user's balance immediately after the mutation it records; entry and
// balance are written in the same database transaction.
type CoinTransaction struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	OrderID      primitive.ObjectID  `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Type         CoinTransactionType `bson:"type" json:"type"`
	Amount       int                 `bson:"amount" json:"amount"`
	Description  string              `bson:"description" json:"description"`
	BalanceAfter int                 `bson:"balance_after" json:"balance_after"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}
