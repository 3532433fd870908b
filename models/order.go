package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentCOD    = "cod"
	PaymentOnline = "online"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	Items           []OrderItem        `bson:"items" json:"items"`
	BuyerDetails    BuyerDetails       `bson:"buyerDetails" json:"buyerDetails"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDetails  *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	OrderStatus     string             `bson:"orderStatus" json:"orderStatus"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingCharges float64            `bson:"shippingCharges" json:"shippingCharges"`
	FinalAmount     float64            `bson:"finalAmount" json:"finalAmount"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	HubTracking     *HubTracking       `bson:"hubTracking,omitempty" json:"hubTracking,omitempty"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	// Version counts saves; a write carries the version it was read at.
	Version int64 `bson:"version" json:"-"`
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Title     string             `bson:"title" json:"title"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Variant   Variant            `bson:"variant" json:"variant"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	SellerID  string             `bson:"sellerId,omitempty" json:"sellerId,omitempty"`
}

type BuyerDetails struct {
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Phone   string  `bson:"phone" json:"phone"`
	Address Address `bson:"address" json:"address"`
}

type PaymentDetails struct {
	TransactionID  string    `bson:"transactionId" json:"transactionId"`
	GatewayOrderID string    `bson:"gatewayOrderId,omitempty" json:"gatewayOrderId,omitempty"`
	PaymentGateway string    `bson:"paymentGateway" json:"paymentGateway"`
	PaidAt         time.Time `bson:"paidAt" json:"paidAt"`
}

// HubTracking follows an order through the seller hub and the customer hub.
// PickupOTP never leaves the server in JSON.
type HubTracking struct {
	SellerHubID          string     `bson:"sellerHubId,omitempty" json:"sellerHubId,omitempty"`
	SellerHubName        string     `bson:"sellerHubName,omitempty" json:"sellerHubName,omitempty"`
	SellerHubDistrict    string     `bson:"sellerHubDistrict,omitempty" json:"sellerHubDistrict,omitempty"`
	ArrivedAtSellerHub   *time.Time `bson:"arrivedAtSellerHub,omitempty" json:"arrivedAtSellerHub,omitempty"`
	ApprovedByAdmin      bool       `bson:"approvedByAdmin" json:"approvedByAdmin"`
	AdminApprovedAt      *time.Time `bson:"adminApprovedAt,omitempty" json:"adminApprovedAt,omitempty"`
	AdminApprovedBy      string     `bson:"adminApprovedBy,omitempty" json:"adminApprovedBy,omitempty"`
	CustomerHubID        string     `bson:"customerHubId,omitempty" json:"customerHubId,omitempty"`
	CustomerHubName      string     `bson:"customerHubName,omitempty" json:"customerHubName,omitempty"`
	CustomerHubDistrict  string     `bson:"customerHubDistrict,omitempty" json:"customerHubDistrict,omitempty"`
	DispatchedAt         *time.Time `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
	ArrivedAtCustomerHub *time.Time `bson:"arrivedAtCustomerHub,omitempty" json:"arrivedAtCustomerHub,omitempty"`
	CurrentLocation      string     `bson:"currentLocation,omitempty" json:"currentLocation,omitempty"`
	PickupOTP            string     `bson:"pickupOTP,omitempty" json:"-"`
	OTPGeneratedAt       *time.Time `bson:"otpGeneratedAt,omitempty" json:"otpGeneratedAt,omitempty"`
	OTPExpiresAt         *time.Time `bson:"otpExpiresAt,omitempty" json:"otpExpiresAt,omitempty"`
	OTPUsed              bool       `bson:"otpUsed" json:"otpUsed"`
	OTPUsedAt            *time.Time `bson:"otpUsedAt,omitempty" json:"otpUsedAt,omitempty"`
	DeliveredAt          *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
}

// SellerIDs returns the distinct sellers of the order's items, in item order.
func (o *Order) SellerIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, it := range o.Items {
		if it.SellerID == "" || seen[it.SellerID] {
			continue
		}
		seen[it.SellerID] = true
		ids = append(ids, it.SellerID)
	}
	return ids
}

func (o *Order) HasSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// Tracking returns the order's hub tracking, creating it when absent.
func (o *Order) Tracking() *HubTracking {
	if o.HubTracking == nil {
		o.HubTracking = &HubTracking{}
	}
	return o.HubTracking
}

// OrderFilter narrows order listings for admins and hub managers.
type OrderFilter struct {
	HubID    string
	Statuses []string
	Location string
	Page     int64
	Limit    int64
}

type HubOrderStats struct {
	AtSellerHub     int64 `json:"orders"`
	InboundDispatch int64 `json:"dispatch"`
	AtCustomerHub   int64 `json:"atHub"`
	Delivered       int64 `json:"delivered"`
	TotalOrders     int64 `json:"totalOrders"`
}
