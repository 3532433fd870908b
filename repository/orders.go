package repository

import (
	"context"
	"fmt"

	"craftedbyher/models"
	"craftedbyher/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	coll *mongo.Collection
}

func NewOrderRepository(coll *mongo.Collection) OrderRepository {
	return &mongoOrders{coll: coll}
}

func (r *mongoOrders) Create(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", duplicate(err))
	}
	return nil
}

func (r *mongoOrders) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var o models.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *mongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoOrders) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": number})
}

func (r *mongoOrders) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func (r *mongoOrders) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
}

func (r *mongoOrders) FindBySeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"items.sellerId": sellerID}, options.Find().SetSort(newestFirst))
}

// hubFilter matches orders routed through hubID. The central hub id matches everything.
func hubFilter(hubID string) bson.M {
	if hubID == "" || hubID == models.AllHubs {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"hubTracking.sellerHubId": hubID},
		bson.M{"hubTracking.customerHubId": hubID},
	}}
}

func (r *mongoOrders) Find(ctx context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	filter := hubFilter(f.HubID)
	if len(f.Statuses) > 0 {
		filter["orderStatus"] = bson.M{"$in": f.Statuses}
	}
	if f.Location != "" {
		filter["hubTracking.currentLocation"] = f.Location
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	skip, limit := paginate(f.Page, f.Limit)
	orders, err := r.list(ctx, filter, options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *mongoOrders) Save(ctx context.Context, o *models.Order, fromStatus string) error {
	filter := bson.M{"_id": o.ID, "orderStatus": fromStatus, "version": o.Version}
	if o.Version == 0 {
		// documents written before versioning have no field
		filter["version"] = bson.M{"$in": bson.A{int64(0), nil}}
	}
	read := o.Version
	o.Version++
	res, err := r.coll.ReplaceOne(ctx, filter, o)
	if err != nil {
		o.Version = read
		return fmt.Errorf("replace order %s: %w", o.OrderNumber, err)
	}
	if res.MatchedCount == 0 {
		o.Version = read
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": o.ID})
		if err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrStale
	}
	return nil
}

func (r *mongoOrders) HubStats(ctx context.Context, hubID string) (models.HubOrderStats, error) {
	var stats models.HubOrderStats
	scoped := func(field, status string) bson.M {
		f := bson.M{"orderStatus": status}
		if hubID != "" && hubID != models.AllHubs {
			f[field] = hubID
		}
		return f
	}
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.AtSellerHub, scoped("hubTracking.sellerHubId", workflow.StatusAtSellerHub)},
		{&stats.InboundDispatch, scoped("hubTracking.customerHubId", workflow.StatusInTransit)},
		{&stats.AtCustomerHub, scoped("hubTracking.customerHubId", workflow.StatusAtCustomerHub)},
		{&stats.Delivered, scoped("hubTracking.customerHubId", workflow.StatusDelivered)},
		{&stats.TotalOrders, hubFilter(hubID)},
	}
	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return stats, fmt.Errorf("count hub orders: %w", err)
		}
		*c.dst = n
	}
	return stats, nil
}
