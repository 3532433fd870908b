// Package workflow holds the order status machine that moves goods
// from the seller hub to the customer hub and on to OTP-verified pickup.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"craftedbyher/models"
)

const (
	StatusCreated       = "created"
	StatusAtSellerHub   = "at_seller_hub"
	StatusAdminApproved = "admin_approved"
	StatusInTransit     = "in_transit_to_customer_hub"
	StatusAtCustomerHub = "at_customer_hub"
	StatusDelivered     = "delivered"
	StatusCancelled     = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[string][]string{
	StatusCreated:       {StatusAtSellerHub, StatusCancelled},
	StatusAtSellerHub:   {StatusAdminApproved, StatusCancelled},
	StatusAdminApproved: {StatusInTransit, StatusCancelled},
	StatusInTransit:     {StatusAtCustomerHub},
	StatusAtCustomerHub: {StatusDelivered},
	StatusDelivered:     {},
	StatusCancelled:     {},
}

var locations = map[string]string{
	StatusAtSellerHub:   "seller_hub",
	StatusAdminApproved: "seller_hub",
	StatusInTransit:     "in_transit_to_customer_hub",
	StatusAtCustomerHub: "customer_hub",
	StatusDelivered:     "delivered",
	StatusCancelled:     "cancelled",
}

// Statuses lists every status in workflow order.
func Statuses() []string {
	return []string{
		StatusCreated, StatusAtSellerHub, StatusAdminApproved,
		StatusInTransit, StatusAtCustomerHub, StatusDelivered, StatusCancelled,
	}
}

func IsValid(status string) bool {
	_, ok := transitions[status]
	return ok
}

func IsTerminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether the order has not yet left the seller hub.
func Cancellable(status string) bool {
	return CanTransition(status, StatusCancelled)
}

// Transition moves o to status `to`, stamping the tracking location and updatedAt.
func Transition(o *models.Order, to string, now time.Time) error {
	if !CanTransition(o.OrderStatus, to) {
		return fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidTransition, o.OrderStatus, to)
	}
	o.OrderStatus = to
	o.UpdatedAt = now
	if loc, ok := locations[to]; ok && (o.HubTracking != nil || to != StatusCancelled) {
		o.Tracking().CurrentLocation = loc
	}
	return nil
}
