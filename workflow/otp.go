package workflow

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"craftedbyher/models"
)

// DefaultOTPTTL is how long a pickup code stays valid.
const DefaultOTPTTL = 24 * time.Hour

var (
	ErrOTPActive   = errors.New("an unused pickup OTP is still valid for this order")
	ErrOTPMissing  = errors.New("no OTP has been generated for this order yet")
	ErrOTPUsed     = errors.New("this order has already been delivered")
	ErrOTPExpired  = errors.New("pickup OTP has expired, generate a new one")
	ErrOTPMismatch = errors.New("invalid OTP, please check and try again")
	ErrOTPFormat   = errors.New("OTP must be 6 digits")
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

var otpSpan = big.NewInt(900000)

// GenerateOTP returns a 6-digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func ValidOTPFormat(otp string) bool {
	return otpPattern.MatchString(otp)
}

// IssueOTP stores a fresh pickup code on the order. The order must be at the
// customer hub, and any previous code must be used or expired.
func IssueOTP(o *models.Order, now time.Time, ttl time.Duration) (string, error) {
	if o.OrderStatus != StatusAtCustomerHub {
		return "", fmt.Errorf("%w: order is not at customer hub yet, current status: %s", ErrInvalidTransition, o.OrderStatus)
	}
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	ht := o.Tracking()
	if ht.PickupOTP != "" && !ht.OTPUsed && ht.OTPExpiresAt != nil && now.Before(*ht.OTPExpiresAt) {
		return "", ErrOTPActive
	}
	otp, err := GenerateOTP()
	if err != nil {
		return "", err
	}
	expires := now.Add(ttl)
	ht.PickupOTP = otp
	ht.OTPGeneratedAt = &now
	ht.OTPExpiresAt = &expires
	ht.OTPUsed = false
	ht.OTPUsedAt = nil
	o.UpdatedAt = now
	return otp, nil
}

// VerifyOTP checks the pickup code and, on success, marks the order delivered.
func VerifyOTP(o *models.Order, otp string, now time.Time) error {
	otp = strings.TrimSpace(otp)
	if !ValidOTPFormat(otp) {
		return ErrOTPFormat
	}
	ht := o.HubTracking
	if o.OrderStatus == StatusDelivered || (ht != nil && ht.OTPUsed) {
		return ErrOTPUsed
	}
	if ht == nil || ht.PickupOTP == "" {
		return ErrOTPMissing
	}
	if ht.OTPExpiresAt != nil && !now.Before(*ht.OTPExpiresAt) {
		return ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(ht.PickupOTP), []byte(otp)) != 1 {
		return ErrOTPMismatch
	}
	if err := Transition(o, StatusDelivered, now); err != nil {
		return err
	}
	ht.OTPUsed = true
	ht.OTPUsedAt = &now
	ht.DeliveredAt = &now
	o.DeliveredAt = &now
	return nil
}
