package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product line in a buyer's cart, keyed by (userId, productId).
// Variant is the weight chosen when the line was added; prices are re-read from
// the catalogue when the cart is shown.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Variant   Variant            `bson:"variant" json:"variant"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Subtotal prices the line at v, usually the product's current variant.
func (c CartItem) Subtotal(v Variant) float64 {
	return v.Price * float64(c.Quantity)
}
