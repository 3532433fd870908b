package services

import (
	"context"
	"fmt"
	"time"

	"craftedbyher/logging"
	"craftedbyher/metrics"
	"craftedbyher/models"
	"craftedbyher/repository"
	"craftedbyher/workflow"

	"github.com/rs/zerolog"
)

type audience int

const (
	toSellers audience = iota
	toBuyer
	toAdmins
	toSellerHub
	toCustomerHub
	toCentral
)

type draft struct {
	to         audience
	kind       string
	title      string
	message    string
	actionType string
}

// fanOut lists the notifications each status change produces.
func fanOut(o *models.Order, status string) []draft {
	ht := o.HubTracking
	if ht == nil {
		ht = &models.HubTracking{}
	}
	num := o.OrderNumber
	switch status {
	case workflow.StatusCreated:
		return []draft{
			{toSellers, models.NotifyNewOrder, "New Order Received",
				fmt.Sprintf("Order %s is waiting for you. Move it to your nearest hub.", num), models.ActionMoveToHub},
		}
	case workflow.StatusAtSellerHub:
		where := fmt.Sprintf("%s (%s)", ht.SellerHubName, ht.SellerHubDistrict)
		return []draft{
			{toAdmins, models.NotifyAdminApprovalRequired, "Order Awaiting Approval",
				fmt.Sprintf("Order %s has reached %s and needs approval.", num, where), models.ActionApproveHubDelivery},
			{toSellerHub, models.NotifyOrderArrivedSellerHub, "Order Arrived at Your Hub",
				fmt.Sprintf("Order %s has arrived at %s from the seller.", num, ht.SellerHubName), models.ActionNone},
			{toCentral, models.NotifyProductArrivedAtHub, "Product Arrived at Hub",
				fmt.Sprintf("Order %s arrived at %s.", num, where), models.ActionNone},
			{toBuyer, models.NotifyOrderMovedToHub, "Order at Seller Hub",
				fmt.Sprintf("Your order %s has reached %s.", num, ht.SellerHubName), models.ActionNone},
		}
	case workflow.StatusAdminApproved:
		msg := fmt.Sprintf("Order %s has been approved and will be dispatched to %s.", num, ht.CustomerHubName)
		return []draft{
			{toBuyer, models.NotifyOrderApproved, "Order Approved", msg, models.ActionNone},
			{toSellers, models.NotifyOrderApproved, "Order Approved", msg, models.ActionNone},
		}
	case workflow.StatusInTransit:
		return []draft{
			{toAdmins, models.NotifyDispatchedToCustomerHub, "Order Dispatched",
				fmt.Sprintf("Order %s is in transit from %s to %s.", num, ht.SellerHubName, ht.CustomerHubName), models.ActionNone},
			{toCustomerHub, models.NotifyOrderDispatchedToHub, "Incoming Order",
				fmt.Sprintf("Order %s is on its way to your hub.", num), models.ActionNone},
			{toBuyer, models.NotifyOrderShipped, "Order Shipped",
				fmt.Sprintf("Your order %s is on its way to %s.", num, ht.CustomerHubName), models.ActionNone},
		}
	case workflow.StatusAtCustomerHub:
		return []draft{
			{toAdmins, models.NotifyOrderArrivedCustomerHub, "Order at Customer Hub",
				fmt.Sprintf("Order %s has arrived at %s.", num, ht.CustomerHubName), models.ActionNone},
			{toCustomerHub, models.NotifyOrderArrivedAtHub, "Order Ready for Pickup",
				fmt.Sprintf("Order %s has arrived. Prepare it for customer pickup.", num), models.ActionPrepareForPickup},
			{toBuyer, models.NotifyOrderReadyForPickup, "Ready for Pickup",
				fmt.Sprintf("Your order %s is ready for pickup at %s. Check your email for the OTP.", num, ht.CustomerHubName), models.ActionNone},
		}
	case workflow.StatusDelivered:
		msg := fmt.Sprintf("Order %s has been delivered.", num)
		return []draft{
			{toBuyer, models.NotifyOrderDelivered, "Order Delivered", msg, models.ActionNone},
			{toSellers, models.NotifyOrderDelivered, "Order Delivered", msg, models.ActionNone},
			{toCustomerHub, models.NotifyOrderDelivered, "Order Picked Up", msg, models.ActionNone},
		}
	case workflow.StatusCancelled:
		msg := fmt.Sprintf("Order %s has been cancelled.", num)
		return []draft{
			{toSellers, models.NotifyOrderCancelled, "Order Cancelled", msg, models.ActionNone},
			{toBuyer, models.NotifyOrderCancelled, "Order Cancelled", msg, models.ActionNone},
		}
	}
	return nil
}

type recipient struct {
	id   string
	role string
}

// Notifier writes order notifications. Its failures never reach the caller.
type Notifier struct {
	repo     repository.NotificationRepository
	users    repository.UserRepository
	managers repository.HubManagerRepository
	now      func() time.Time
	log      zerolog.Logger
}

func NewNotifier(repo repository.NotificationRepository, users repository.UserRepository, managers repository.HubManagerRepository) *Notifier {
	return &Notifier{
		repo:     repo,
		users:    users,
		managers: managers,
		now:      time.Now,
		log:      logging.NewPackageLogger("notify"),
	}
}

func (n *Notifier) resolve(ctx context.Context, o *models.Order, to audience) ([]recipient, error) {
	var out []recipient
	managersOf := func(hubID string) ([]recipient, error) {
		if hubID == "" {
			return nil, nil
		}
		ms, err := n.managers.FindActiveByHub(ctx, hubID)
		if err != nil {
			return nil, err
		}
		rs := make([]recipient, 0, len(ms))
		for _, m := range ms {
			rs = append(rs, recipient{m.ManagerID, models.RoleHubManager})
		}
		return rs, nil
	}
	switch to {
	case toBuyer:
		return []recipient{{o.UserID, models.RoleBuyer}}, nil
	case toSellers:
		for _, id := range o.SellerIDs() {
			out = append(out, recipient{id, models.RoleSeller})
		}
		return out, nil
	case toAdmins:
		admins, err := n.users.FindByRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		for _, a := range admins {
			out = append(out, recipient{a.UID, models.RoleAdmin})
		}
		return out, nil
	case toSellerHub:
		if o.HubTracking == nil {
			return nil, nil
		}
		return managersOf(o.HubTracking.SellerHubID)
	case toCustomerHub:
		if o.HubTracking == nil {
			return nil, nil
		}
		return managersOf(o.HubTracking.CustomerHubID)
	case toCentral:
		return managersOf(models.AllHubs)
	}
	return nil, nil
}

// OrderEvent notifies everyone concerned with o reaching status.
// It returns the number of notifications written.
func (n *Notifier) OrderEvent(ctx context.Context, o *models.Order, status string) int {
	written := 0
	for _, d := range fanOut(o, status) {
		recipients, err := n.resolve(ctx, o, d.to)
		if err != nil {
			metrics.NotificationFailures.Inc()
			n.log.Error().Err(err).Str(logging.ORDER, o.OrderNumber).Str("type", d.kind).Msg("resolve notification recipients")
			continue
		}
		for _, r := range recipients {
			note := &models.Notification{
				UserID:         r.id,
				UserRole:       r.role,
				Type:           d.kind,
				Title:          d.title,
				Message:        d.message,
				OrderID:        o.ID,
				OrderNumber:    o.OrderNumber,
				ActionRequired: d.actionType != models.ActionNone,
				ActionType:     d.actionType,
				Metadata:       metadata(o, status),
				CreatedAt:      n.now(),
			}
			if err := n.repo.Insert(ctx, note); err != nil {
				metrics.NotificationFailures.Inc()
				n.log.Error().Err(err).
					Str(logging.ORDER, o.OrderNumber).
					Str(logging.USER, r.id).
					Str("type", d.kind).
					Msg("write notification")
				continue
			}
			metrics.NotificationsCreated.WithLabelValues(r.role).Inc()
			written++
		}
	}
	return written
}

func metadata(o *models.Order, status string) map[string]interface{} {
	md := map[string]interface{}{
		"orderStatus": status,
		"finalAmount": o.FinalAmount,
		"itemCount":   len(o.Items),
	}
	if ht := o.HubTracking; ht != nil {
		if ht.SellerHubID != "" {
			md["sellerHubId"] = ht.SellerHubID
			md["sellerHubName"] = ht.SellerHubName
		}
		if ht.CustomerHubID != "" {
			md["customerHubId"] = ht.CustomerHubID
			md["customerHubName"] = ht.CustomerHubName
		}
	}
	return md
}

// Inbox serves a recipient's own notifications.
type Inbox struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewInbox(repo repository.NotificationRepository) *Inbox {
	return &Inbox{repo: repo, now: time.Now}
}

type InboxPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	UnreadCount   int64                 `json:"unreadCount"`
	Page          int64                 `json:"page"`
	Limit         int64                 `json:"limit"`
}

func (i *Inbox) List(ctx context.Context, q models.NotificationQuery) (*InboxPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	list, total, err := i.repo.List(ctx, q)
	if err != nil {
		return nil, storeErr(err, "notifications")
	}
	unread, err := i.repo.CountUnread(ctx, q.UserID, q.UserRole)
	if err != nil {
		return nil, storeErr(err, "notifications")
	}
	return &InboxPage{Notifications: list, Total: total, UnreadCount: unread, Page: q.Page, Limit: q.Limit}, nil
}

func (i *Inbox) UnreadCount(ctx context.Context, userID, role string) (int64, error) {
	n, err := i.repo.CountUnread(ctx, userID, role)
	return n, storeErr(err, "notifications")
}

func (i *Inbox) MarkRead(ctx context.Context, id, userID, role string) error {
	oid, err := parseID(id, "notification")
	if err != nil {
		return err
	}
	return storeErr(i.repo.MarkRead(ctx, oid, userID, role, i.now()), "Notification")
}

func (i *Inbox) MarkAllRead(ctx context.Context, userID, role string) (int64, error) {
	n, err := i.repo.MarkAllRead(ctx, userID, role, i.now())
	return n, storeErr(err, "notifications")
}

func (i *Inbox) Delete(ctx context.Context, id, userID, role string) error {
	oid, err := parseID(id, "notification")
	if err != nil {
		return err
	}
	return storeErr(i.repo.Delete(ctx, oid, userID, role), "Notification")
}
