package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotifyNewOrder                = "new_order"
	NotifyOrderMovedToHub         = "order_moved_to_hub"
	NotifyOrderApproved           = "order_approved"
	NotifyOrderShipped            = "order_shipped"
	NotifyOrderDelivered          = "order_delivered"
	NotifyOrderCancelled          = "order_cancelled"
	NotifyProductArrivedAtHub     = "product_arrived_at_hub"
	NotifyOrderArrivedSellerHub   = "order_arrived_seller_hub"
	NotifyDispatchedToCustomerHub = "order_dispatched_to_customer_hub"
	NotifyOrderArrivedCustomerHub = "order_arrived_customer_hub"
	NotifyAdminApprovalRequired   = "admin_approval_required"
	NotifyOrderDispatchedToHub    = "order_dispatched_to_hub"
	NotifyOrderArrivedAtHub       = "order_arrived_at_hub"
	NotifyOrderReadyForPickup     = "order_ready_for_pickup"
)

const (
	ActionMoveToHub          = "move_to_hub"
	ActionApproveOrder       = "approve_order"
	ActionShipOrder          = "ship_order"
	ActionApproveHubDelivery = "approve_hub_delivery"
	ActionPrepareForPickup   = "prepare_for_pickup"
	ActionNone               = "none"
)

// Notification is addressed to a (UserID, UserRole) pair.
type Notification struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID         string                 `bson:"userId" json:"userId"`
	UserRole       string                 `bson:"userRole" json:"userRole"`
	Type           string                 `bson:"type" json:"type"`
	Title          string                 `bson:"title" json:"title"`
	Message        string                 `bson:"message" json:"message"`
	OrderID        primitive.ObjectID     `bson:"orderId" json:"orderId"`
	OrderNumber    string                 `bson:"orderNumber" json:"orderNumber"`
	Read           bool                   `bson:"read" json:"read"`
	ReadAt         *time.Time             `bson:"readAt,omitempty" json:"readAt,omitempty"`
	ActionRequired bool                   `bson:"actionRequired" json:"actionRequired"`
	ActionType     string                 `bson:"actionType" json:"actionType"`
	Metadata       map[string]interface{} `bson:"metadata" json:"metadata"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
}

type NotificationQuery struct {
	UserID     string
	UserRole   string
	UnreadOnly bool
	Page       int64
	Limit      int64
}
