package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Variant struct {
	Weight string  `bson:"weight" json:"weight"`
	Price  float64 `bson:"price" json:"price"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	MainCategory    string             `bson:"mainCategory,omitempty" json:"mainCategory,omitempty"`
	SubCategory     string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	MainIngredient  string             `bson:"mainIngredient,omitempty" json:"mainIngredient,omitempty"`
	Rating          float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	Stock           int                `bson:"stock" json:"stock"`
	Variants        []Variant          `bson:"variants" json:"variants"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	SellerID        string             `bson:"sellerId,omitempty" json:"sellerId,omitempty"`
	SellerName      string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	SellerEmail     string             `bson:"sellerEmail,omitempty" json:"sellerEmail,omitempty"`
	ApprovalStatus  string             `bson:"approvalStatus" json:"approvalStatus"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ApprovedBy      string             `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Listed reports whether buyers may see and order the product.
func (p Product) Listed() bool {
	return p.IsActive && p.ApprovalStatus == ApprovalApproved
}

// BasePrice is the cheapest positive variant price, or 0 when there is none.
func (p Product) BasePrice() float64 {
	var min float64
	for _, v := range p.Variants {
		if v.Price <= 0 {
			continue
		}
		if min == 0 || v.Price < min {
			min = v.Price
		}
	}
	return min
}

// FindVariant returns the variant with the given weight.
func (p Product) FindVariant(weight string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Weight == weight {
			return v, true
		}
	}
	return Variant{}, false
}
