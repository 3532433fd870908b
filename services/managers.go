package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"craftedbyher/auth"
	"craftedbyher/logging"
	"craftedbyher/models"
	"craftedbyher/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type ManagerService struct {
	managers  repository.HubManagerRepository
	hubs      repository.HubRepository
	blacklist repository.TokenBlacklist
	tokens    *auth.TokenIssuer
	now       func() time.Time
	log       zerolog.Logger
}

func NewManagerService(managers repository.HubManagerRepository, hubs repository.HubRepository, blacklist repository.TokenBlacklist, tokens *auth.TokenIssuer) *ManagerService {
	return &ManagerService{
		managers:  managers,
		hubs:      hubs,
		blacklist: blacklist,
		tokens:    tokens,
		now:       time.Now,
		log:       logging.NewPackageLogger("hubmanagers"),
	}
}

type CreateManagerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
	HubID    string `json:"hubId"`
}

// Create registers a hub manager. HubID may name a hub, be models.AllHubs for the
// central manager, or be empty to assign later.
func (s *ManagerService) Create(ctx context.Context, adminUID string, in CreateManagerInput) (*models.HubManager, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fail(ErrValidation, "Name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fail(ErrValidation, "Valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, fail(ErrValidation, "Password must be at least %d characters", minPasswordLen)
	}

	now := s.now()
	m := &models.HubManager{
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Username:  in.Username,
		Status:    models.ManagerActive,
		CreatedBy: adminUID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if m.Username == "" {
		m.Username = strings.SplitN(m.Email, "@", 2)[0]
	}

	var hub *models.Hub
	switch in.HubID {
	case "":
	case models.AllHubs:
		m.HubID = models.AllHubs
		m.HubName = "All Hubs"
	default:
		h, err := s.hubs.FindByHubID(ctx, in.HubID)
		if err != nil {
			return nil, storeErr(err, "Hub")
		}
		hub = h
		m.HubID, m.HubName, m.District = h.HubID, h.Name, h.District
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	m.Password = string(hashed)

	n, err := s.managers.Count(ctx)
	if err != nil {
		return nil, storeErr(err, "hub managers")
	}
	for attempt := int64(1); attempt <= 5; attempt++ {
		m.ManagerID = fmt.Sprintf("HM%04d", n+attempt)
		err = s.managers.Create(ctx, m)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
		// the email index also raises duplicates
		if existing, ferr := s.managers.FindByEmail(ctx, m.Email); ferr == nil && existing != nil {
			return nil, fail(ErrConflict, "A hub manager with this email already exists")
		}
	}
	if err != nil {
		return nil, storeErr(err, "Hub manager")
	}
	if hub != nil {
		if err := s.hubs.AssignManager(ctx, hub.HubID, m.ManagerID, m.Name); err != nil {
			s.log.Error().Err(err).Str(logging.HUB, hub.HubID).Str(logging.MANAGER, m.ManagerID).Msg("link manager to hub")
		}
	}
	s.log.Info().Str(logging.MANAGER, m.ManagerID).Str(logging.HUB, m.HubID).Msg("hub manager created")
	return m, nil
}

type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Manager   *models.HubManager `json:"manager"`
}

// Login checks credentials of an active manager and issues a token.
func (s *ManagerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fail(ErrValidation, "Email and password are required")
	}
	m, err := s.managers.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, storeErr(err, "Hub manager")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)); err != nil {
		return nil, fail(ErrUnauthorized, "Invalid email or password")
	}
	if m.Status != models.ManagerActive {
		return nil, fail(ErrForbidden, "Account is %s. Contact the administrator.", m.Status)
	}
	token, exp, err := s.tokens.Issue(m)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.managers.TouchLogin(ctx, m.ManagerID, now); err != nil {
		s.log.Warn().Err(err).Str(logging.MANAGER, m.ManagerID).Msg("record last login")
	}
	m.LastLogin = &now
	s.log.Info().Str(logging.MANAGER, m.ManagerID).Msg("hub manager logged in")
	return &LoginResult{Token: token, ExpiresAt: exp, Manager: m}, nil
}

// Logout revokes the token until its natural expiry.
func (s *ManagerService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return fail(ErrUnauthorized, "Invalid token")
	}
	exp := time.Unix(claims.ExpiresAt, 0)
	if err := s.blacklist.Add(ctx, token, exp); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// Authenticate validates signature and expiry, then checks the token has not been revoked.
func (s *ManagerService) Authenticate(ctx context.Context, token string) (*auth.ManagerClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fail(ErrUnauthorized, "Invalid or expired token")
	}
	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return nil, fail(ErrUnauthorized, "Token has been blacklisted")
	}
	return claims, nil
}

func (s *ManagerService) Profile(ctx context.Context, managerID string) (*models.HubManager, error) {
	m, err := s.managers.FindByManagerID(ctx, managerID)
	return m, storeErr(err, "Hub manager")
}

func (s *ManagerService) List(ctx context.Context) ([]models.HubManager, error) {
	list, err := s.managers.List(ctx)
	return list, storeErr(err, "hub managers")
}

func (s *ManagerService) SetStatus(ctx context.Context, managerID, status string) error {
	switch status {
	case models.ManagerActive, models.ManagerInactive, models.ManagerPending:
	default:
		return fail(ErrValidation, "Invalid manager status %q", status)
	}
	return storeErr(s.managers.SetStatus(ctx, managerID, status), "Hub manager")
}
