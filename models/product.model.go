package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSize is a single size variant with its own stock count and an
// optional per-size price override.
type ProductSize struct {
	Size  string  `bson:"size" json:"size"`
	Stock int     `bson:"stock" json:"stock"`
	Price float64 `bson:"price,omitempty" json:"price,omitempty"` // 0 means "use product price"
}

// Product represents a catalog item
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Sizes       []ProductSize      `bson:"sizes" json:"sizes"`
	BasePrice   float64            `bson:"base_price" json:"base_price"`
	SalePrice   float64            `bson:"sale_price,omitempty" json:"sale_price,omitempty"` // 0 means no sale
	IsActive    bool               `bson:"is_active" json:"is_active"`
	Rating      float64            `bson:"rating" json:"rating"`
	ReviewCount int                `bson:"review_count" json:"review_count"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CurrentPrice is the price the storefront shows: the sale price when one is
// set below the base price, the base price otherwise.
func (p *Product) CurrentPrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.BasePrice {
		return p.SalePrice
	}
	return p.BasePrice
}

// SizeVariant returns the size entry matching name, if the product carries it.
func (p *Product) SizeVariant(name string) (*ProductSize, bool) {
	for i := range p.Sizes {
		if p.Sizes[i].Size == name {
			return &p.Sizes[i], true
		}
	}
	return nil, false
}

// PriceFor resolves the effective unit price for a size: the per-size
// override when set, the product's current price otherwise.
func (p *Product) PriceFor(size string) float64 {
	if v, ok := p.SizeVariant(size); ok && v.Price > 0 {
		return v.Price
	}
	return p.CurrentPrice()
}

// CreateProductRequest is the admin payload for creating a product.
type CreateProductRequest struct {
	Name        string        `json:"name" validate:"required,min=2,max=120"`
	Description string        `json:"description" validate:"max=5000"`
	Category    string        `json:"category" validate:"required"`
	Images      []string      `json:"images"`
	Sizes       []ProductSize `json:"sizes" validate:"required,min=1,dive"`
	BasePrice   float64       `json:"base_price" validate:"required,gt=0"`
	SalePrice   float64       `json:"sale_price" validate:"gte=0"`
	IsActive    *bool         `json:"is_active"`
}
