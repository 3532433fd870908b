package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"craftedbyher/cache"
	"craftedbyher/geo"
	"craftedbyher/logging"
	"craftedbyher/models"
	"craftedbyher/repository"

	"github.com/rs/zerolog"
)

const activeHubsKey = "hubs:active"

type HubService struct {
	hubs     repository.HubRepository
	managers repository.HubManagerRepository
	users    repository.UserRepository
	cache    cache.Store
	cacheTTL time.Duration
	fallback string
	now      func() time.Time
	log      zerolog.Logger
}

func NewHubService(hubs repository.HubRepository, managers repository.HubManagerRepository, users repository.UserRepository, store cache.Store, cacheTTL time.Duration, defaultDistrict string) *HubService {
	if store == nil {
		store = cache.Noop{}
	}
	if defaultDistrict == "" {
		defaultDistrict = geo.DefaultDistrict
	}
	return &HubService{
		hubs:     hubs,
		managers: managers,
		users:    users,
		cache:    store,
		cacheTTL: cacheTTL,
		fallback: defaultDistrict,
		now:      time.Now,
		log:      logging.NewPackageLogger("hubs"),
	}
}

// ActiveHubs is cache-aside over the active hub list. Cache errors fall through to Mongo.
func (s *HubService) ActiveHubs(ctx context.Context) ([]models.Hub, error) {
	var hubs []models.Hub
	err := s.cache.GetJSON(ctx, activeHubsKey, &hubs)
	if err == nil {
		return hubs, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Msg("hub cache read")
	}
	hubs, err = s.hubs.List(ctx, models.HubActive, "")
	if err != nil {
		return nil, storeErr(err, "hubs")
	}
	if err := s.cache.SetJSON(ctx, activeHubsKey, hubs, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("hub cache write")
	}
	return hubs, nil
}

func (s *HubService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeHubsKey); err != nil {
		s.log.Warn().Err(err).Msg("hub cache invalidate")
	}
}

func (s *HubService) HubsInDistrict(ctx context.Context, district string) ([]models.Hub, error) {
	d, ok := geo.CanonicalDistrict(district)
	if !ok {
		return nil, fail(ErrValidation, "Unknown district %q", district)
	}
	hubs, err := s.hubs.List(ctx, models.HubActive, d)
	return hubs, storeErr(err, "hubs")
}

func (s *HubService) Get(ctx context.Context, hubID string) (*models.Hub, error) {
	h, err := s.hubs.FindByHubID(ctx, hubID)
	return h, storeErr(err, "Hub")
}

// All lists hubs for admins, optionally by status.
func (s *HubService) All(ctx context.Context, status string) ([]models.Hub, error) {
	hubs, err := s.hubs.List(ctx, status, "")
	return hubs, storeErr(err, "hubs")
}

// RouteToDistrict returns the first active hub in district.
func (s *HubService) RouteToDistrict(ctx context.Context, district string) (*models.Hub, error) {
	hubs, err := s.ActiveHubs(ctx)
	if err != nil {
		return nil, err
	}
	h, ok := geo.NearestByDistrict(hubs, district)
	if !ok {
		return nil, fail(ErrNotFound, "No active hub found in %s district", district)
	}
	return h, nil
}

// PincodeCheck answers whether a postal code is served by an active hub.
type PincodeCheck struct {
	Available bool        `json:"available"`
	Message   string      `json:"message"`
	Pincode   string      `json:"pincode"`
	District  string      `json:"district,omitempty"`
	Hub       *PincodeHub `json:"hub,omitempty"`
}

type PincodeHub struct {
	HubID    string         `json:"hubId"`
	Name     string         `json:"name"`
	District string         `json:"district"`
	Address  models.Address `json:"address"`
	Phone    string         `json:"phone,omitempty"`
	Email    string         `json:"email,omitempty"`
}

func (s *HubService) CheckPincode(ctx context.Context, pin string) (*PincodeCheck, error) {
	pin = strings.TrimSpace(pin)
	if !geo.ValidPincode(pin) {
		return nil, fail(ErrValidation, "Please provide a valid 6-digit pincode")
	}
	district, ok := geo.DistrictForPincode(pin)
	if !ok {
		return &PincodeCheck{
			Pincode: pin,
			Message: fmt.Sprintf("Sorry, we don't have a hub serving pincode %s yet. We're expanding soon!", pin),
		}, nil
	}
	h, err := s.RouteToDistrict(ctx, district)
	if errors.Is(err, ErrNotFound) {
		return &PincodeCheck{
			Pincode:  pin,
			District: district,
			Message:  fmt.Sprintf("Sorry, there is no active hub in %s district yet.", district),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &PincodeCheck{
		Available: true,
		Pincode:   pin,
		District:  district,
		Message:   fmt.Sprintf("Great! We deliver to %s through %s.", district, h.Name),
		Hub: &PincodeHub{
			HubID:    h.HubID,
			Name:     h.Name,
			District: h.District,
			Address:  h.Location.Address,
			Phone:    h.ContactInfo.Phone,
			Email:    h.ContactInfo.Email,
		},
	}, nil
}

// SellerDistrict resolves where a seller ships from: the saved seller location,
// then the first saved address, then the default district.
func (s *HubService) SellerDistrict(ctx context.Context, sellerUID string) (string, error) {
	u, err := s.users.FindByUID(ctx, sellerUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.fallback, nil
		}
		return "", storeErr(err, "Seller")
	}
	if loc := u.SellerLocation; loc != nil {
		if d, ok := geo.CanonicalDistrict(loc.District); ok {
			return d, nil
		}
		return geo.ExtractDistrict(loc.Address, s.fallback), nil
	}
	if len(u.Addresses) > 0 {
		return geo.ExtractDistrict(u.Addresses[0].Address, s.fallback), nil
	}
	return s.fallback, nil
}

func (s *HubService) BuyerDistrict(addr models.Address) string {
	return geo.ExtractDistrict(addr, s.fallback)
}

// Nearest ranks active hubs by distance from the given point.
func (s *HubService) Nearest(ctx context.Context, origin models.Coordinates) ([]geo.RankedHub, error) {
	if origin.Latitude < -90 || origin.Latitude > 90 || origin.Longitude < -180 || origin.Longitude > 180 {
		return nil, fail(ErrValidation, "Invalid coordinates")
	}
	hubs, err := s.ActiveHubs(ctx)
	if err != nil {
		return nil, err
	}
	return geo.RankByDistance(origin, hubs), nil
}

type SellerLocationInput struct {
	Address     models.Address      `json:"address"`
	District    string              `json:"district"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

// SaveSellerLocation stores the seller's pickup address, deriving the district when not given.
func (s *HubService) SaveSellerLocation(ctx context.Context, sellerUID string, in SellerLocationInput) (*models.SellerLocation, error) {
	district, ok := geo.CanonicalDistrict(in.District)
	if !ok {
		if in.District != "" {
			return nil, fail(ErrValidation, "Unknown district %q", in.District)
		}
		district = geo.ExtractDistrict(in.Address, s.fallback)
	}
	loc := models.SellerLocation{Address: in.Address, District: district, Coordinates: in.Coordinates}
	if err := s.users.SetSellerLocation(ctx, sellerUID, loc); err != nil {
		return nil, storeErr(err, "Seller")
	}
	return &loc, nil
}

type CreateHubInput struct {
	Name        string             `json:"name"`
	District    string             `json:"district"`
	Location    models.HubLocation `json:"location"`
	ContactInfo models.HubContact  `json:"contactInfo"`
	MaxOrders   int                `json:"maxOrders"`
}

const defaultHubCapacity = 1000

func (s *HubService) Create(ctx context.Context, adminUID string, in CreateHubInput) (*models.Hub, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fail(ErrValidation, "Hub name is required")
	}
	district, ok := geo.CanonicalDistrict(in.District)
	if !ok {
		return nil, fail(ErrValidation, "District must be one of the Kerala districts")
	}
	if in.MaxOrders <= 0 {
		in.MaxOrders = defaultHubCapacity
	}
	n, err := s.hubs.Count(ctx)
	if err != nil {
		return nil, storeErr(err, "hubs")
	}
	now := s.now()
	hub := &models.Hub{
		Name:        in.Name,
		District:    district,
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
		Capacity:    models.HubCapacity{MaxOrders: in.MaxOrders},
		Status:      models.HubActive,
		CreatedBy:   adminUID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Sequential ids can collide after deletions, so step past taken ones.
	for attempt := int64(1); attempt <= 5; attempt++ {
		hub.HubID = fmt.Sprintf("HUB%04d", n+attempt)
		err = s.hubs.Create(ctx, hub)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, storeErr(err, "Hub")
	}
	s.invalidate(ctx)
	s.log.Info().Str(logging.HUB, hub.HubID).Str("district", district).Msg("hub created")
	return hub, nil
}

func (s *HubService) SetStatus(ctx context.Context, hubID, status string) error {
	switch status {
	case models.HubActive, models.HubInactive, models.HubMaintenance:
	default:
		return fail(ErrValidation, "Invalid hub status %q", status)
	}
	if err := s.hubs.SetStatus(ctx, hubID, status); err != nil {
		return storeErr(err, "Hub")
	}
	s.invalidate(ctx)
	return nil
}

// AssignManager links a manager and a hub on both documents.
func (s *HubService) AssignManager(ctx context.Context, hubID, managerID string) error {
	hub, err := s.hubs.FindByHubID(ctx, hubID)
	if err != nil {
		return storeErr(err, "Hub")
	}
	m, err := s.managers.FindByManagerID(ctx, managerID)
	if err != nil {
		return storeErr(err, "Hub manager")
	}
	if m.IsCentral() {
		return fail(ErrConflict, "Central hub manager cannot be assigned to a single hub")
	}
	if err := s.managers.AssignHub(ctx, managerID, *hub); err != nil {
		return storeErr(err, "Hub manager")
	}
	if err := s.hubs.AssignManager(ctx, hubID, m.ManagerID, m.Name); err != nil {
		return storeErr(err, "Hub")
	}
	s.invalidate(ctx)
	return nil
}

// Adjust applies counter deltas to a hub. Failures are logged only; counters
// are bookkeeping and must not fail an order transition.
func (s *HubService) Adjust(ctx context.Context, hubID string, inc map[string]int) {
	if hubID == "" {
		return
	}
	if err := s.hubs.IncStats(ctx, hubID, inc); err != nil {
		s.log.Error().Err(err).Str(logging.HUB, hubID).Interface("inc", inc).Msg("adjust hub counters")
	}
}

// Seed creates a hub in every district that has none.
func (s *HubService) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, d := range geo.Districts {
		existing, err := s.hubs.List(ctx, "", d)
		if err != nil {
			return created, storeErr(err, "hubs")
		}
		if len(existing) > 0 {
			continue
		}
		_, err = s.Create(ctx, "seed", CreateHubInput{
			Name:     d + " Hub",
			District: d,
			Location: models.HubLocation{Address: models.Address{City: d, State: "Kerala"}},
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
