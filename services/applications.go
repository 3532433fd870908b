package services

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"craftedbyher/geo"
	"craftedbyher/logging"
	"craftedbyher/models"
	"craftedbyher/repository"

	"github.com/rs/zerolog"
)

var phoneFormat = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// SellerApplicationService takes buyers' requests to sell and lets admins review them.
// Approval promotes the applicant to seller and saves the pickup location.
type SellerApplicationService struct {
	apps     repository.SellerApplicationRepository
	users    repository.UserRepository
	fallback string
	now      func() time.Time
	log      zerolog.Logger
}

func NewSellerApplicationService(apps repository.SellerApplicationRepository, users repository.UserRepository, defaultDistrict string) *SellerApplicationService {
	if defaultDistrict == "" {
		defaultDistrict = geo.DefaultDistrict
	}
	return &SellerApplicationService{
		apps:     apps,
		users:    users,
		fallback: defaultDistrict,
		now:      time.Now,
		log:      logging.NewPackageLogger("applications"),
	}
}

type ApplicationInput struct {
	Name         string                       `json:"name"`
	Email        string                       `json:"email"`
	Phone        string                       `json:"phone"`
	BusinessName string                       `json:"businessName"`
	BusinessType string                       `json:"businessType"`
	Description  string                       `json:"description"`
	Address      models.Address               `json:"address"`
	District     string                       `json:"district"`
	Coordinates  *models.Coordinates          `json:"coordinates"`
	Documents    []models.ApplicationDocument `json:"documents"`
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// district picks the stated district, then the pincode's, then one named in the address.
func (s *SellerApplicationService) district(in ApplicationInput) (string, error) {
	if in.District != "" {
		d, ok := geo.CanonicalDistrict(in.District)
		if !ok {
			return "", fail(ErrValidation, "Unknown district %q", in.District)
		}
		return d, nil
	}
	if d, ok := geo.DistrictForPincode(in.Address.Pincode); ok {
		return d, nil
	}
	return geo.ExtractDistrict(in.Address, s.fallback), nil
}

func (s *SellerApplicationService) Apply(ctx context.Context, applicant models.User, in ApplicationInput) (*models.SellerApplication, error) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.ReplaceAll(strings.TrimSpace(in.Phone), " ", "")
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		in.Name = applicant.Name
	}
	if in.BusinessType == "" {
		in.BusinessType = models.DefaultBusinessType
	}
	switch {
	case in.BusinessName == "":
		return nil, fail(ErrValidation, "Business name is required")
	case !contains(models.BusinessTypes, in.BusinessType):
		return nil, fail(ErrValidation, "Invalid business type %q", in.BusinessType)
	case !phoneFormat.MatchString(in.Phone):
		return nil, fail(ErrValidation, "Valid phone number is required")
	case strings.TrimSpace(in.Address.City) == "" && in.Address.Pincode == "":
		return nil, fail(ErrValidation, "Address is required")
	case in.Address.Pincode != "" && !geo.ValidPincode(in.Address.Pincode):
		return nil, fail(ErrValidation, "Please provide a valid 6-digit pincode")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fail(ErrValidation, "Valid email is required")
	}
	if applicant.Role == models.RoleSeller {
		return nil, fail(ErrValidation, "You are already a seller")
	}
	district, err := s.district(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &models.SellerApplication{
		UserID:       applicant.UID,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		BusinessName: in.BusinessName,
		BusinessType: in.BusinessType,
		Description:  strings.TrimSpace(in.Description),
		Address:      in.Address,
		District:     district,
		Coordinates:  in.Coordinates,
		Documents:    in.Documents,
		Status:       models.ApplicationSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fail(ErrValidation, "You have already submitted an application")
		}
		return nil, storeErr(err, "Application")
	}
	s.log.Info().Str(logging.USER, applicant.UID).Str("district", district).Msg("seller application submitted")
	return a, nil
}

func (s *SellerApplicationService) Mine(ctx context.Context, userUID string) (*models.SellerApplication, error) {
	a, err := s.apps.FindByUser(ctx, userUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, "No application found")
	}
	return a, storeErr(err, "Application")
}

type ApplicationPage struct {
	Applications []models.SellerApplication `json:"applications"`
	Total        int64                      `json:"total"`
	Page         int64                      `json:"page"`
	Limit        int64                      `json:"limit"`
}

func (s *SellerApplicationService) List(ctx context.Context, q models.ApplicationQuery) (*ApplicationPage, error) {
	if q.Status != "" && !contains(models.ApplicationStatuses, q.Status) {
		return nil, fail(ErrValidation, "Unknown application status %q", q.Status)
	}
	list, total, err := s.apps.List(ctx, q)
	if err != nil {
		return nil, storeErr(err, "applications")
	}
	return &ApplicationPage{Applications: list, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *SellerApplicationService) Get(ctx context.Context, id string) (*models.SellerApplication, error) {
	oid, err := parseID(id, "application")
	if err != nil {
		return nil, err
	}
	a, err := s.apps.FindByID(ctx, oid)
	return a, storeErr(err, "Application")
}

type ReviewInput struct {
	Status          string `json:"status"`
	AdminNotes      string `json:"adminNotes"`
	RejectionReason string `json:"rejectionReason"`
}

// Review records an admin decision. Approving promotes the applicant to seller
// and copies the application's address into their seller location.
func (s *SellerApplicationService) Review(ctx context.Context, adminUID, id string, in ReviewInput) (*models.SellerApplication, error) {
	if !contains(models.ApplicationStatuses, in.Status) {
		return nil, fail(ErrValidation, "Invalid status %q", in.Status)
	}
	in.RejectionReason = strings.TrimSpace(in.RejectionReason)
	if in.Status == models.ApplicationRejected && in.RejectionReason == "" {
		return nil, fail(ErrValidation, "Rejection reason is required")
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == models.ApplicationApproved && in.Status != models.ApplicationApproved {
		return nil, fail(ErrConflict, "Application is already approved")
	}

	now := s.now()
	a.Status = in.Status
	a.ReviewedBy, a.ReviewedAt, a.UpdatedAt = adminUID, &now, now
	if notes := strings.TrimSpace(in.AdminNotes); notes != "" {
		a.AdminNotes = notes
	}
	switch in.Status {
	case models.ApplicationApproved:
		if a.ApprovedAt == nil {
			a.ApprovedAt = &now
		}
		a.RejectionReason = ""
	case models.ApplicationRejected:
		a.RejectionReason = in.RejectionReason
	}

	if in.Status == models.ApplicationApproved {
		if err := s.users.SetSellerLocation(ctx, a.UserID, a.SellerLocation()); err != nil {
			return nil, storeErr(err, "Applicant")
		}
		if err := s.users.SetRole(ctx, a.UserID, models.RoleSeller); err != nil {
			return nil, storeErr(err, "Applicant")
		}
	}
	if err := s.apps.Review(ctx, a); err != nil {
		return nil, storeErr(err, "Application")
	}
	s.log.Info().Str(logging.USER, a.UserID).Str(logging.STATUS, a.Status).Str("admin", adminUID).Msg("seller application reviewed")
	return a, nil
}
