package mailer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"craftedbyher/config"
	"craftedbyher/models"
)

func sampleOrder() *models.Order {
	exp := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &models.Order{
		OrderNumber:  "ORD123456789",
		FinalAmount:  550,
		Items:        []models.OrderItem{{Title: "Coir mat"}, {Title: "Banana chips"}},
		BuyerDetails: models.BuyerDetails{Name: "Anjali", Email: "anjali@example.com"},
		HubTracking: &models.HubTracking{
			CustomerHubName:     "Ernakulam Hub",
			CustomerHubDistrict: "Ernakulam",
			OTPExpiresAt:        &exp,
		},
	}
}

func TestBuildPickupMessage(t *testing.T) {
	p := NewPickupOTP(sampleOrder(), "482913")
	if p.ItemCount != 2 || p.HubName != "Ernakulam Hub" || p.ExpiresAt.IsZero() {
		t.Fatalf("unexpected fields %+v", p)
	}
	m, err := BuildPickupMessage("CraftedByHer <noreply@example.com>", p)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "anjali@example.com" {
		t.Errorf("To = %v", got)
	}
	if subj := m.GetHeader("Subject"); !strings.Contains(subj[0], "482913") {
		t.Errorf("Subject = %v", subj)
	}
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ORD123456789") {
		t.Error("body does not mention the order number")
	}
}

func TestBuildPickupMessageRejectsBadEmail(t *testing.T) {
	o := sampleOrder()
	o.BuyerDetails.Email = "not-an-email"
	if _, err := BuildPickupMessage("x", NewPickupOTP(o, "111111")); !errors.Is(err, ErrInvalidRecipient) {
		t.Errorf("err = %v", err)
	}
}

func TestNewFallsBackToNoop(t *testing.T) {
	if _, ok := New(config.SMTP{Host: "smtp.example.com"}).(Noop); !ok {
		t.Error("sender without user should be Noop")
	}
	if _, ok := New(config.SMTP{Host: "smtp.example.com", User: "u", Port: 587}).(*SMTPSender); !ok {
		t.Error("configured SMTP should give SMTPSender")
	}
}
