package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllHubs is the hubId carried by the central hub manager, who sees every district.
const AllHubs = "ALL_HUBS"

const (
	HubActive      = "active"
	HubInactive    = "inactive"
	HubMaintenance = "maintenance"
)

type HubLocation struct {
	Address     Address      `bson:"address" json:"address"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type HubContact struct {
	Phone          string `bson:"phone" json:"phone"`
	Email          string `bson:"email" json:"email"`
	AlternatePhone string `bson:"alternatePhone,omitempty" json:"alternatePhone,omitempty"`
}

type HubCapacity struct {
	MaxOrders     int `bson:"maxOrders" json:"maxOrders"`
	CurrentOrders int `bson:"currentOrders" json:"currentOrders"`
}

type HubStats struct {
	TotalOrdersProcessed int `bson:"totalOrdersProcessed" json:"totalOrdersProcessed"`
	OrdersInTransit      int `bson:"ordersInTransit" json:"ordersInTransit"`
	OrdersReadyForPickup int `bson:"ordersReadyForPickup" json:"ordersReadyForPickup"`
	OrdersDispatched     int `bson:"ordersDispatched" json:"ordersDispatched"`
}

type Hub struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID       string             `bson:"hubId" json:"hubId"`
	Name        string             `bson:"name" json:"name"`
	District    string             `bson:"district" json:"district"`
	Location    HubLocation        `bson:"location" json:"location"`
	ContactInfo HubContact         `bson:"contactInfo" json:"contactInfo"`
	ManagerID   string             `bson:"managerId,omitempty" json:"managerId,omitempty"`
	ManagerName string             `bson:"managerName,omitempty" json:"managerName,omitempty"`
	Capacity    HubCapacity        `bson:"capacity" json:"capacity"`
	Status      string             `bson:"status" json:"status"`
	Stats       HubStats           `bson:"stats" json:"stats"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (h Hub) IsAvailable() bool {
	return h.Status == HubActive && h.Capacity.CurrentOrders < h.Capacity.MaxOrders
}

// HubSummary is the public view of a hub attached to order tracking.
type HubSummary struct {
	HubID       string     `json:"hubId"`
	Name        string     `json:"name"`
	District    string     `json:"district"`
	Address     Address    `json:"address"`
	ContactInfo HubContact `json:"contactInfo"`
}

func (h Hub) Summary() *HubSummary {
	return &HubSummary{
		HubID:       h.HubID,
		Name:        h.Name,
		District:    h.District,
		Address:     h.Location.Address,
		ContactInfo: h.ContactInfo,
	}
}

// Hub counter fields, usable as $inc keys.
const (
	HubCurrentOrders        = "capacity.currentOrders"
	HubOrdersInTransit      = "stats.ordersInTransit"
	HubOrdersReadyForPickup = "stats.ordersReadyForPickup"
	HubOrdersDispatched     = "stats.ordersDispatched"
	HubTotalProcessed       = "stats.totalOrdersProcessed"
)
