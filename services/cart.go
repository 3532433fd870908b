package services

import (
	"context"
	"time"

	"craftedbyher/models"
	"craftedbyher/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products, now: time.Now}
}

type CartLine struct {
	ProductID primitive.ObjectID `json:"productId"`
	Title     string             `json:"title"`
	Image     string             `json:"image,omitempty"`
	Variant   models.Variant     `json:"variant"`
	Quantity  int                `json:"quantity"`
	Stock     int                `json:"stock"`
	Subtotal  float64            `json:"subtotal"`
}

type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

func (s *CartService) product(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id, "product")
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, oid)
	return p, storeErr(err, "Product")
}

func (s *CartService) Add(ctx context.Context, userID, productID, weight string, qty int) error {
	if qty <= 0 {
		return fail(ErrValidation, "Quantity must be positive")
	}
	p, err := s.product(ctx, productID)
	if err != nil {
		return err
	}
	if !p.Listed() {
		return fail(ErrValidation, "%s is not available", p.Title)
	}
	// the repository merges into an existing line
	inCart, err := s.quantity(ctx, userID, p.ID)
	if err != nil {
		return err
	}
	if inCart+qty > p.Stock {
		return fail(ErrValidation, "Quantity exceeds available stock")
	}
	variant, ok := p.FindVariant(weight)
	if !ok {
		if weight != "" || len(p.Variants) == 0 {
			return fail(ErrValidation, "Variant %q not found", weight)
		}
		variant = p.Variants[0]
	}
	return storeErr(s.carts.Add(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: p.ID,
		Variant:   variant,
		Quantity:  qty,
		CreatedAt: s.now(),
	}), "Cart")
}

func (s *CartService) quantity(ctx context.Context, userID string, productID primitive.ObjectID) (int, error) {
	items, err := s.carts.List(ctx, userID)
	if err != nil {
		return 0, storeErr(err, "Cart")
	}
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantity, nil
		}
	}
	return 0, nil
}

// Get returns the cart priced at current variant prices. Lines whose product
// has disappeared are skipped.
func (s *CartService) Get(ctx context.Context, userID string) (*Cart, error) {
	items, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "Cart")
	}
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err, "products")
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := &Cart{Items: []CartLine{}}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		variant := it.Variant
		if current, ok := p.FindVariant(variant.Weight); ok {
			variant = current
		}
		line := CartLine{
			ProductID: p.ID,
			Title:     p.Title,
			Image:     p.Image,
			Variant:   variant,
			Quantity:  it.Quantity,
			Stock:     p.Stock,
			Subtotal:  it.Subtotal(variant),
		}
		cart.Items = append(cart.Items, line)
		cart.Total += line.Subtotal
	}
	return cart, nil
}

// Update sets a line's quantity; zero removes the line.
func (s *CartService) Update(ctx context.Context, userID, productID string, qty int) error {
	if qty < 0 {
		return fail(ErrValidation, "Invalid quantity")
	}
	p, err := s.product(ctx, productID)
	if err != nil {
		return err
	}
	if qty == 0 {
		return storeErr(s.carts.Remove(ctx, userID, p.ID), "Product in cart")
	}
	if qty > p.Stock {
		return fail(ErrValidation, "Quantity exceeds available stock")
	}
	return storeErr(s.carts.SetQuantity(ctx, userID, p.ID, qty), "Product in cart")
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	oid, err := parseID(productID, "product")
	if err != nil {
		return err
	}
	return storeErr(s.carts.Remove(ctx, userID, oid), "Product in cart")
}
