package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationSubmitted   = "submitted"
	ApplicationUnderReview = "under_review"
	ApplicationApproved    = "approved"
	ApplicationRejected    = "rejected"
	ApplicationMoreInfo    = "more_info_required"

	DefaultBusinessType = "homemade"
)

var ApplicationStatuses = []string{
	ApplicationSubmitted, ApplicationUnderReview, ApplicationApproved,
	ApplicationRejected, ApplicationMoreInfo,
}

var BusinessTypes = []string{"individual", "partnership", "private_limited", "llp", "homemade", "other"}

type ApplicationDocument struct {
	Type string `bson:"type" json:"type"`
	URL  string `bson:"url" json:"url"`
}

// SellerApplication is a buyer's request to start selling. One per user.
type SellerApplication struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID          string                `bson:"userId" json:"userId"`
	Name            string                `bson:"name" json:"name"`
	Email           string                `bson:"email" json:"email"`
	Phone           string                `bson:"phone" json:"phone"`
	BusinessName    string                `bson:"businessName" json:"businessName"`
	BusinessType    string                `bson:"businessType" json:"businessType"`
	Description     string                `bson:"description,omitempty" json:"description,omitempty"`
	Address         Address               `bson:"address" json:"address"`
	District        string                `bson:"district" json:"district"`
	Coordinates     *Coordinates          `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Documents       []ApplicationDocument `bson:"documents,omitempty" json:"documents,omitempty"`
	Status          string                `bson:"status" json:"status"`
	AdminNotes      string                `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	RejectionReason string                `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ReviewedBy      string                `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time            `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ApprovedAt      *time.Time            `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt       time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// SellerLocation is where an approved applicant ships from.
func (a SellerApplication) SellerLocation() SellerLocation {
	return SellerLocation{Address: a.Address, District: a.District, Coordinates: a.Coordinates}
}

type ApplicationQuery struct {
	Status string
	Page   int64
	Limit  int64
}
