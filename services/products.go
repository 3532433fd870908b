package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"craftedbyher/cache"
	"craftedbyher/logging"
	"craftedbyher/metrics"
	"craftedbyher/models"
	"craftedbyher/recommend"
	"craftedbyher/repository"

	"github.com/rs/zerolog"
)

const publicProductsKey = "products:public"

type ProductService struct {
	products repository.ProductRepository
	ml       SimilarSource
	cache    cache.Store
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewProductService(products repository.ProductRepository, ml SimilarSource, store cache.Store, ttl time.Duration) *ProductService {
	if store == nil {
		store = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductService{
		products: products,
		ml:       ml,
		cache:    store,
		ttl:      ttl,
		now:      time.Now,
		log:      logging.NewPackageLogger("products"),
	}
}

// Public lists active, approved products through the cache.
func (s *ProductService) Public(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	err := s.cache.GetJSON(ctx, publicProductsKey, &list)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Msg("product cache read")
	}
	list, err = s.products.ListPublic(ctx)
	if err != nil {
		return nil, storeErr(err, "products")
	}
	if err := s.cache.SetJSON(ctx, publicProductsKey, list, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("product cache write")
	}
	return list, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, publicProductsKey); err != nil {
		s.log.Warn().Err(err).Msg("product cache invalidate")
	}
}

// Get returns a listed product. Pending, rejected and inactive products are not found.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id, "product")
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr(err, "Product")
	}
	if !p.Listed() {
		return nil, fail(ErrNotFound, "Product not found")
	}
	return p, nil
}

type ProductInput struct {
	Title          string           `json:"title"`
	Image          string           `json:"image"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	MainCategory   string           `json:"mainCategory"`
	SubCategory    string           `json:"subCategory"`
	MainIngredient string           `json:"mainIngredient"`
	Stock          int              `json:"stock"`
	Variants       []models.Variant `json:"variants"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fail(ErrValidation, "Product title is required")
	}
	if in.Stock < 0 {
		return fail(ErrValidation, "Stock cannot be negative")
	}
	if len(in.Variants) == 0 {
		return fail(ErrValidation, "At least one variant is required")
	}
	for _, v := range in.Variants {
		if v.Weight == "" || v.Price <= 0 {
			return fail(ErrValidation, "Each variant needs a weight and a positive price")
		}
	}
	return nil
}

// Create stores a seller's product pending admin approval.
func (s *ProductService) Create(ctx context.Context, seller models.User, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	p := &models.Product{
		Title:          strings.TrimSpace(in.Title),
		Image:          in.Image,
		Description:    in.Description,
		Category:       in.Category,
		MainCategory:   in.MainCategory,
		SubCategory:    in.SubCategory,
		MainIngredient: in.MainIngredient,
		Stock:          in.Stock,
		Variants:       in.Variants,
		IsActive:       true,
		SellerID:       seller.UID,
		SellerName:     seller.Name,
		SellerEmail:    seller.Email,
		ApprovalStatus: models.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, storeErr(err, "Product")
	}
	s.log.Info().Str("product", p.ID.Hex()).Str(logging.USER, seller.UID).Msg("product submitted for approval")
	return p, nil
}

func (s *ProductService) BySeller(ctx context.Context, sellerUID string) ([]models.Product, error) {
	list, err := s.products.ListBySeller(ctx, sellerUID)
	return list, storeErr(err, "products")
}

func (s *ProductService) ByApproval(ctx context.Context, status string) ([]models.Product, error) {
	switch status {
	case "", models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return nil, fail(ErrValidation, "Unknown approval status %q", status)
	}
	list, err := s.products.ListByApproval(ctx, status)
	return list, storeErr(err, "products")
}

func (s *ProductService) Approve(ctx context.Context, adminUID, id string) error {
	return s.review(ctx, adminUID, id, models.ApprovalApproved, "")
}

func (s *ProductService) Reject(ctx context.Context, adminUID, id, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fail(ErrValidation, "Rejection reason is required")
	}
	return s.review(ctx, adminUID, id, models.ApprovalRejected, reason)
}

func (s *ProductService) review(ctx context.Context, adminUID, id, status, reason string) error {
	oid, err := parseID(id, "product")
	if err != nil {
		return err
	}
	if err := s.products.SetApproval(ctx, oid, status, reason, adminUID, s.now()); err != nil {
		return storeErr(err, "Product")
	}
	s.invalidate(ctx)
	s.log.Info().Str("product", id).Str(logging.STATUS, status).Str(logging.USER, adminUID).Msg("product reviewed")
	return nil
}

// SimilarSource is the ML client as seen by the recommender.
type SimilarSource interface {
	Similar(ctx context.Context, productID string, n int) ([]recommend.Item, error)
}

type Recommendations struct {
	Target          recommend.Item   `json:"targetProduct"`
	Recommendations []recommend.Item `json:"recommendations"`
	Source          string           `json:"source"`
}

// Recommend asks the ML service first and falls back to the local scorer on any failure.
func (s *ProductService) Recommend(ctx context.Context, id string) (*Recommendations, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	target := recommend.FromProduct(*p)

	if s.ml != nil {
		items, err := s.ml.Similar(ctx, id, recommend.DefaultCount)
		if err == nil && len(items) > 0 {
			metrics.RecommendationSource.WithLabelValues("ml").Inc()
			return &Recommendations{Target: target, Recommendations: items, Source: "ml"}, nil
		}
		if err != nil {
			s.log.Warn().Err(err).Str("product", id).Msg("ml recommendations unavailable, using local scorer")
		}
	}

	catalogue, err := s.Public(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]recommend.Item, 0, len(catalogue))
	for _, c := range catalogue {
		candidates = append(candidates, recommend.FromProduct(c))
	}
	metrics.RecommendationSource.WithLabelValues("local").Inc()
	return &Recommendations{
		Target:          target,
		Recommendations: recommend.Recommend(target, candidates, recommend.DefaultCount),
		Source:          "local",
	}, nil
}

// AssignSellers gives every product without a seller one of the sellers, round robin by uid.
func (s *ProductService) AssignSellers(ctx context.Context, users repository.UserRepository) (int, error) {
	sellers, err := users.FindByRole(ctx, models.RoleSeller)
	if err != nil {
		return 0, storeErr(err, "sellers")
	}
	if len(sellers) == 0 {
		return 0, fail(ErrNotFound, "No sellers found")
	}
	orphans, err := s.products.ListWithoutSeller(ctx)
	if err != nil {
		return 0, storeErr(err, "products")
	}
	for i, p := range orphans {
		seller := sellers[i%len(sellers)]
		if err := s.products.AssignSeller(ctx, p.ID, seller); err != nil {
			return i, storeErr(err, "Product")
		}
		s.log.Info().Str("product", p.ID.Hex()).Str(logging.USER, seller.UID).Msg("seller assigned")
	}
	if len(orphans) > 0 {
		s.invalidate(ctx)
	}
	return len(orphans), nil
}
