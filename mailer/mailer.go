// Package mailer delivers transactional email to buyers.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"craftedbyher/config"
	"craftedbyher/logging"
	"craftedbyher/models"

	"gopkg.in/gomail.v2"
)

var logger = logging.NewPackageLogger("mailer")

var ErrInvalidRecipient = errors.New("invalid customer email address")

// PickupOTP is everything the pickup email shows the buyer.
type PickupOTP struct {
	BuyerName   string
	BuyerEmail  string
	OrderNumber string
	FinalAmount float64
	ItemCount   int
	HubName     string
	HubDistrict string
	OTP         string
	ExpiresAt   time.Time
}

// NewPickupOTP collects the email fields from an order at its customer hub.
func NewPickupOTP(o *models.Order, otp string) PickupOTP {
	p := PickupOTP{
		BuyerName:   o.BuyerDetails.Name,
		BuyerEmail:  o.BuyerDetails.Email,
		OrderNumber: o.OrderNumber,
		FinalAmount: o.FinalAmount,
		ItemCount:   len(o.Items),
		OTP:         otp,
	}
	if ht := o.HubTracking; ht != nil {
		p.HubName = ht.CustomerHubName
		p.HubDistrict = ht.CustomerHubDistrict
		if ht.OTPExpiresAt != nil {
			p.ExpiresAt = *ht.OTPExpiresAt
		}
	}
	return p
}

type Sender interface {
	SendPickupOTP(ctx context.Context, p PickupOTP) error
}

var pickupTemplate = template.Must(template.New("pickup").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Your order is ready for pickup</h1>
  <p>Hi {{.BuyerName}},</p>
  <p>Your order <strong>{{.OrderNumber}}</strong> has reached <strong>{{.HubName}}</strong> ({{.HubDistrict}}).</p>
  <div style="border: 2px solid #28a745; padding: 20px; text-align: center;">
    <p>Your pickup OTP</p>
    <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">{{.OTP}}</div>
    {{if not .ExpiresAt.IsZero}}<p>Valid until {{.ExpiresAt.Format "02 Jan 2006 15:04 MST"}}</p>{{end}}
  </div>
  <p><strong>Total amount:</strong> &#8377;{{printf "%.2f" .FinalAmount}}<br>
     <strong>Items:</strong> {{.ItemCount}} item(s)</p>
  <p>Bring this OTP when collecting your order. Valid ID may be required.</p>
</body>
</html>`))

func pickupSubject(p PickupOTP) string {
	return fmt.Sprintf("Your Order is Ready for Pickup - OTP: %s", p.OTP)
}

// BuildPickupMessage renders the pickup email.
func BuildPickupMessage(from string, p PickupOTP) (*gomail.Message, error) {
	if !strings.Contains(p.BuyerEmail, "@") {
		return nil, ErrInvalidRecipient
	}
	var body bytes.Buffer
	if err := pickupTemplate.Execute(&body, p); err != nil {
		return nil, fmt.Errorf("render pickup email: %w", err)
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", p.BuyerEmail)
	m.SetHeader("Subject", pickupSubject(p))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s, your order %s is ready for pickup at %s. Your pickup OTP is %s.",
		p.BuyerName, p.OrderNumber, p.HubName, p.OTP))
	m.AddAlternative("text/html", body.String())
	return m, nil
}

// SMTPSender sends through an authenticated SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.User),
	}
}

func (s *SMTPSender) SendPickupOTP(ctx context.Context, p PickupOTP) error {
	m, err := BuildPickupMessage(s.from, p)
	if err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send pickup otp for %s: %w", p.OrderNumber, err)
		}
		logger.Info().Str(logging.ORDER, p.OrderNumber).Msg("pickup OTP emailed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Noop logs instead of sending. Used when SMTP is not configured.
type Noop struct{}

func (Noop) SendPickupOTP(_ context.Context, p PickupOTP) error {
	logger.Warn().Str(logging.ORDER, p.OrderNumber).Msg("SMTP not configured, pickup OTP email skipped")
	return nil
}

// New picks the SMTP sender when credentials are present.
func New(cfg config.SMTP) Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return Noop{}
}
