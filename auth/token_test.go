package auth

import (
	"errors"
	"testing"
	"time"

	"craftedbyher/models"

	"github.com/dgrijalva/jwt-go"
)

func manager() *models.HubManager {
	return &models.HubManager{ManagerID: "HM0002", Email: "hm@example.com", Name: "Latha", HubID: "HUB0007"}
}

func TestIssueAndParse(t *testing.T) {
	iss := NewTokenIssuer("secret", 0)
	tok, exp, err := iss.Issue(manager())
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Until(exp); d < 6*24*time.Hour || d > 7*24*time.Hour+time.Minute {
		t.Errorf("expiry %v not ~7 days out", d)
	}
	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ManagerID != "HM0002" || claims.HubID != "HUB0007" || claims.Role != models.RoleHubManager {
		t.Errorf("claims = %+v", claims)
	}
	if claims.IsCentral() {
		t.Error("district manager reported as central")
	}
}

func TestParseRejects(t *testing.T) {
	iss := NewTokenIssuer("secret", time.Hour)
	good, _, _ := iss.Issue(manager())

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue(manager())

	other, _, _ := NewTokenIssuer("other", time.Hour).Issue(manager())

	buyer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"managerId": "HM0002", "role": "buyer", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"managerId": "HM0002", "role": models.RoleHubManager,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"expired":    old,
		"wrong key":  other,
		"wrong role": buyer,
		"alg none":   none,
		"garbage":    "not.a.token",
		"tampered":   good + "x",
	} {
		if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
