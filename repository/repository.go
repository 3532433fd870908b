// Package repository persists the marketplace entities in MongoDB.
// Services depend on the interfaces; the mongo* types are the production implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
	// ErrStale is returned when a conditional write lost a race with another writer.
	ErrStale = errors.New("document changed concurrently")
)

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindBySeller(ctx context.Context, sellerID string) ([]models.Order, error)
	Find(ctx context.Context, f models.OrderFilter) ([]models.Order, int64, error)
	// Save replaces o only while the stored copy is still at fromStatus and
	// o.Version, then bumps o.Version. A lost race returns ErrStale.
	Save(ctx context.Context, o *models.Order, fromStatus string) error
	HubStats(ctx context.Context, hubID string) (models.HubOrderStats, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	ListPublic(ctx context.Context) ([]models.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	ListByApproval(ctx context.Context, status string) ([]models.Product, error)
	ListWithoutSeller(ctx context.Context) ([]models.Product, error)
	SetApproval(ctx context.Context, id primitive.ObjectID, status, reason, by string, at time.Time) error
	AssignSeller(ctx context.Context, id primitive.ObjectID, seller models.User) error
	// ReserveStock decrements stock when at least qty is available.
	ReserveStock(ctx context.Context, id primitive.ObjectID, qty int) error
	ReleaseStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type HubRepository interface {
	Create(ctx context.Context, h *models.Hub) error
	FindByHubID(ctx context.Context, hubID string) (*models.Hub, error)
	// List returns hubs in creation order; empty filters match everything.
	List(ctx context.Context, status, district string) ([]models.Hub, error)
	Count(ctx context.Context) (int64, error)
	IncStats(ctx context.Context, hubID string, inc map[string]int) error
	SetStatus(ctx context.Context, hubID, status string) error
	AssignManager(ctx context.Context, hubID, managerID, managerName string) error
}

type HubManagerRepository interface {
	Create(ctx context.Context, m *models.HubManager) error
	FindByEmail(ctx context.Context, email string) (*models.HubManager, error)
	FindByManagerID(ctx context.Context, managerID string) (*models.HubManager, error)
	// FindActiveByHub returns active managers of hubID; models.AllHubs finds the central managers.
	FindActiveByHub(ctx context.Context, hubID string) ([]models.HubManager, error)
	List(ctx context.Context) ([]models.HubManager, error)
	Count(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, managerID, status string) error
	AssignHub(ctx context.Context, managerID string, hub models.Hub) error
	TouchLogin(ctx context.Context, managerID string, at time.Time) error
}

type UserRepository interface {
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	// FindByRole returns users sorted by uid.
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	Upsert(ctx context.Context, u *models.User) error
	SetSellerLocation(ctx context.Context, uid string, loc models.SellerLocation) error
	SetRole(ctx context.Context, uid, role string) error
	SetSuspended(ctx context.Context, uid string, suspended bool) error
}

type SellerApplicationRepository interface {
	// Create returns ErrDuplicate when the user already applied.
	Create(ctx context.Context, a *models.SellerApplication) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SellerApplication, error)
	FindByUser(ctx context.Context, userID string) (*models.SellerApplication, error)
	// List returns the newest applications first.
	List(ctx context.Context, q models.ApplicationQuery) ([]models.SellerApplication, int64, error)
	Review(ctx context.Context, a *models.SellerApplication) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, q models.NotificationQuery) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID, role string) (int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, userID, role string, at time.Time) error
	MarkAllRead(ctx context.Context, userID, role string, at time.Time) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID, role string) error
}

type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	// Add returns ErrDuplicate when the product is already listed.
	Add(ctx context.Context, userID string, productID primitive.ObjectID, at time.Time) error
	Remove(ctx context.Context, userID string, productID primitive.ObjectID, at time.Time) error
	Clear(ctx context.Context, userID string, at time.Time) error
}

type CartRepository interface {
	Add(ctx context.Context, item *models.CartItem) error
	List(ctx context.Context, userID string) ([]models.CartItem, error)
	SetQuantity(ctx context.Context, userID string, productID primitive.ObjectID, qty int) error
	Remove(ctx context.Context, userID string, productID primitive.ObjectID) error
	Clear(ctx context.Context, userID string) error
}

type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func paginate(page, limit int64) (skip, lim int64) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return (page - 1) * limit, limit
}
