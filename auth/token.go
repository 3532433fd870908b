// Package auth issues hub manager tokens and verifies Firebase identities.
package auth

import (
	"errors"
	"fmt"
	"time"

	"craftedbyher/models"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ManagerClaims is the payload of a hub manager token.
type ManagerClaims struct {
	ManagerID string `json:"managerId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	HubID     string `json:"hubId"`
	jwt.StandardClaims
}

func (c ManagerClaims) IsCentral() bool {
	return c.HubID == models.AllHubs
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for m.
func (t *TokenIssuer) Issue(m *models.HubManager) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := ManagerClaims{
		ManagerID: m.ManagerID,
		Email:     m.Email,
		Role:      models.RoleHubManager,
		Name:      m.Name,
		HubID:     m.HubID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
			Subject:   m.ManagerID,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign manager token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates signature, algorithm, expiry and role.
func (t *TokenIssuer) Parse(tokenString string) (*ManagerClaims, error) {
	claims := &ManagerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != models.RoleHubManager || claims.ManagerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
