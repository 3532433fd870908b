package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleBuyer      = "buyer"
	RoleSeller     = "seller"
	RoleAdmin      = "admin"
	RoleHubManager = "hubmanager"
)

type Address struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode  string `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type SavedAddress struct {
	Label   string  `bson:"label,omitempty" json:"label,omitempty"`
	Address Address `bson:"address" json:"address"`
}

type SellerLocation struct {
	Address     Address      `bson:"address" json:"address"`
	District    string       `bson:"district" json:"district"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// User is a Firebase-authenticated account. Role decides buyer, seller or admin access.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID            string             `bson:"uid" json:"uid"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"`
	Addresses      []SavedAddress     `bson:"addresses,omitempty" json:"addresses,omitempty"`
	SellerLocation *SellerLocation    `bson:"sellerLocation,omitempty" json:"sellerLocation,omitempty"`
	Suspended      bool               `bson:"suspended,omitempty" json:"suspended,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AssignableRoles are the roles an admin may give a user. Hub managers are
// separate accounts.
var AssignableRoles = []string{RoleBuyer, RoleSeller, RoleAdmin}
