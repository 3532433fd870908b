package services

import (
	"context"
	"errors"
	"time"

	"craftedbyher/models"
	"craftedbyher/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	now       func() time.Time
}

func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, now: time.Now}
}

// Get returns the wishlisted products, or an empty list when the user has none.
func (s *WishlistService) Get(ctx context.Context, userID string) ([]models.Product, error) {
	w, err := s.wishlists.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, storeErr(err, "Wishlist")
	}
	products, err := s.products.FindByIDs(ctx, w.Products)
	if err != nil {
		return nil, storeErr(err, "products")
	}
	// keep wishlist order
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(w.Products))
	for _, id := range w.Products {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	oid, err := parseID(productID, "product")
	if err != nil {
		return err
	}
	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return storeErr(err, "Product")
	}
	if !p.Listed() {
		return fail(ErrNotFound, "Product not found")
	}
	err = s.wishlists.Add(ctx, userID, oid, s.now())
	if errors.Is(err, repository.ErrDuplicate) {
		return fail(ErrValidation, "Product already in wishlist")
	}
	return storeErr(err, "Wishlist")
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	oid, err := parseID(productID, "product")
	if err != nil {
		return err
	}
	return storeErr(s.wishlists.Remove(ctx, userID, oid, s.now()), "Product in wishlist")
}

func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	oid, err := parseID(productID, "product")
	if err != nil {
		return false, err
	}
	w, err := s.wishlists.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr(err, "Wishlist")
	}
	return w.Contains(oid), nil
}

func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	return storeErr(s.wishlists.Clear(ctx, userID, s.now()), "Wishlist")
}
