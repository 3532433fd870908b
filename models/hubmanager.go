package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ManagerActive   = "active"
	ManagerInactive = "inactive"
	ManagerPending  = "pending"
)

type HubManager struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ManagerID string             `bson:"managerId" json:"managerId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	HubID     string             `bson:"hubId,omitempty" json:"hubId,omitempty"`
	HubName   string             `bson:"hubName,omitempty" json:"hubName,omitempty"`
	District  string             `bson:"district,omitempty" json:"district,omitempty"`
	Status    string             `bson:"status" json:"status"`
	LastLogin *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedBy string             `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsCentral reports whether the manager oversees every hub.
func (m HubManager) IsCentral() bool {
	return m.HubID == AllHubs
}
