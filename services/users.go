package services

import (
	"context"
	"errors"
	"strings"

	"craftedbyher/auth"
	"craftedbyher/models"
	"craftedbyher/repository"
)

type AccountService struct {
	users repository.UserRepository
}

func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Resolve maps a verified Firebase identity to the stored user, creating a
// buyer account on first sign-in.
func (s *AccountService) Resolve(ctx context.Context, id *auth.Identity) (*models.User, error) {
	u, err := s.users.FindByUID(ctx, id.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr(err, "User")
	}
	fresh := &models.User{UID: id.UID, Name: id.Name, Email: id.Email, Role: models.RoleBuyer}
	if err := s.users.Upsert(ctx, fresh); err != nil {
		return nil, storeErr(err, "User")
	}
	u, err = s.users.FindByUID(ctx, id.UID)
	return u, storeErr(err, "User")
}

// SetRole changes a user's role. Admins cannot demote themselves.
func (s *AccountService) SetRole(ctx context.Context, adminUID, uid, role string) (*models.User, error) {
	if !contains(models.AssignableRoles, role) {
		return nil, fail(ErrValidation, "Invalid role. Must be one of: %s", strings.Join(models.AssignableRoles, ", "))
	}
	if uid == adminUID && role != models.RoleAdmin {
		return nil, fail(ErrValidation, "Cannot remove your own admin privileges")
	}
	if err := s.users.SetRole(ctx, uid, role); err != nil {
		return nil, storeErr(err, "User")
	}
	u, err := s.users.FindByUID(ctx, uid)
	return u, storeErr(err, "User")
}

// SetActive suspends or restores an account. A suspended user is refused at sign-in.
func (s *AccountService) SetActive(ctx context.Context, adminUID, uid string, active bool) (*models.User, error) {
	if uid == adminUID && !active {
		return nil, fail(ErrValidation, "Cannot deactivate your own account")
	}
	if err := s.users.SetSuspended(ctx, uid, !active); err != nil {
		return nil, storeErr(err, "User")
	}
	u, err := s.users.FindByUID(ctx, uid)
	return u, storeErr(err, "User")
}
