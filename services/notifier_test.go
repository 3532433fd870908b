package services

import (
	"context"
	"errors"
	"testing"

	"craftedbyher/models"
	"craftedbyher/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFanOutAudiences(t *testing.T) {
	o := &models.Order{OrderNumber: "ORD1", HubTracking: &models.HubTracking{SellerHubName: "Kochi", CustomerHubName: "Capital"}}
	want := map[string]int{
		workflow.StatusCreated:       1,
		workflow.StatusAtSellerHub:   4,
		workflow.StatusAdminApproved: 2,
		workflow.StatusInTransit:     3,
		workflow.StatusAtCustomerHub: 3,
		workflow.StatusDelivered:     3,
		workflow.StatusCancelled:     2,
	}
	for status, n := range want {
		if got := len(fanOut(o, status)); got != n {
			t.Errorf("fanOut(%s) = %d drafts, want %d", status, got, n)
		}
	}
	if got := fanOut(o, "unknown"); got != nil {
		t.Errorf("fanOut(unknown) = %v", got)
	}
}

func TestOrderEventActionFlags(t *testing.T) {
	notes := &memNotifications{}
	users := newMemUsers()
	n := NewNotifier(notes, users, &memManagers{})
	o := &models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "ORD2",
		UserID:      "buyer-1",
		FinalAmount: 250,
		Items:       []models.OrderItem{{SellerID: "s1"}, {SellerID: "s2"}, {SellerID: "s1"}},
	}

	if got := n.OrderEvent(context.Background(), o, workflow.StatusCreated); got != 2 {
		t.Fatalf("OrderEvent() wrote %d, want one per seller", got)
	}
	first := notes.list[0]
	if !first.ActionRequired || first.ActionType != models.ActionMoveToHub || first.UserRole != models.RoleSeller {
		t.Errorf("notification = %+v", first)
	}
	if first.Metadata["orderStatus"] != workflow.StatusCreated || first.Metadata["itemCount"] != 3 {
		t.Errorf("metadata = %v", first.Metadata)
	}

	n.OrderEvent(context.Background(), o, workflow.StatusCancelled)
	last := notes.list[len(notes.list)-1]
	if last.ActionRequired || last.UserID != "buyer-1" {
		t.Errorf("cancel notification = %+v", last)
	}
}

func TestOrderEventSwallowsFailures(t *testing.T) {
	notes := &memNotifications{fails: true}
	n := NewNotifier(notes, newMemUsers(), &memManagers{})
	o := &models.Order{OrderNumber: "ORD3", UserID: "b", Items: []models.OrderItem{{SellerID: "s"}}}
	if got := n.OrderEvent(context.Background(), o, workflow.StatusCreated); got != 0 {
		t.Errorf("OrderEvent() = %d on failing store", got)
	}
}

func TestInbox(t *testing.T) {
	notes := &memNotifications{}
	ctx := context.Background()
	for _, kind := range []string{"a", "b", "c"} {
		notes.Insert(ctx, &models.Notification{UserID: "u1", UserRole: models.RoleSeller, Type: kind})
	}
	notes.Insert(ctx, &models.Notification{UserID: "u1", UserRole: models.RoleBuyer, Type: "other-role"})
	inbox := NewInbox(notes)

	page, err := inbox.List(ctx, models.NotificationQuery{UserID: "u1", UserRole: models.RoleSeller})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || page.UnreadCount != 3 || page.Page != 1 || page.Limit != 20 {
		t.Errorf("page = %+v", page)
	}
	if page.Notifications[0].Type != "c" {
		t.Errorf("newest first, got %s", page.Notifications[0].Type)
	}

	id := notes.list[0].ID.Hex()
	if err := inbox.MarkRead(ctx, id, "u1", models.RoleBuyer); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRead as wrong role error = %v", err)
	}
	if err := inbox.MarkRead(ctx, id, "u1", models.RoleSeller); err != nil {
		t.Fatal(err)
	}
	if n, _ := inbox.UnreadCount(ctx, "u1", models.RoleSeller); n != 2 {
		t.Errorf("unread = %d, want 2", n)
	}
	if n, _ := inbox.MarkAllRead(ctx, "u1", models.RoleSeller); n != 2 {
		t.Errorf("MarkAllRead() = %d, want 2", n)
	}
	if n, _ := inbox.UnreadCount(ctx, "u1", models.RoleBuyer); n != 1 {
		t.Errorf("other role unread = %d, want 1", n)
	}

	if err := inbox.Delete(ctx, "zzz", "u1", models.RoleSeller); !errors.Is(err, ErrValidation) {
		t.Errorf("bad id error = %v", err)
	}
	if err := inbox.Delete(ctx, id, "u2", models.RoleSeller); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete error = %v", err)
	}
	if err := inbox.Delete(ctx, id, "u1", models.RoleSeller); err != nil {
		t.Fatal(err)
	}
	page, _ = inbox.List(ctx, models.NotificationQuery{UserID: "u1", UserRole: models.RoleSeller})
	if page.Total != 2 {
		t.Errorf("after delete total = %d", page.Total)
	}
}
