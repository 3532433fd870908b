package repository

import (
	"context"
	"fmt"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProducts struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) ProductRepository {
	return &mongoProducts{coll: coll}
}

func (r *mongoProducts) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *mongoProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *mongoProducts) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProducts) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoProducts) ListPublic(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx,
		bson.M{"isActive": true, "approvalStatus": models.ApprovalApproved},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoProducts) ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"sellerId": sellerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoProducts) ListByApproval(ctx context.Context, status string) ([]models.Product, error) {
	filter := bson.M{}
	if status != "" {
		filter["approvalStatus"] = status
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoProducts) ListWithoutSeller(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"sellerId": bson.M{"$exists": false}},
		bson.M{"sellerId": ""},
		bson.M{"sellerId": nil},
	}}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *mongoProducts) update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProducts) SetApproval(ctx context.Context, id primitive.ObjectID, status, reason, by string, at time.Time) error {
	set := bson.M{
		"approvalStatus":  status,
		"rejectionReason": reason,
		"updatedAt":       at,
	}
	if status == models.ApprovalApproved {
		set["approvedBy"] = by
		set["approvedAt"] = at
	}
	return r.update(ctx, id, set)
}

func (r *mongoProducts) AssignSeller(ctx context.Context, id primitive.ObjectID, seller models.User) error {
	return r.update(ctx, id, bson.M{
		"sellerId":    seller.UID,
		"sellerName":  seller.Name,
		"sellerEmail": seller.Email,
		"updatedAt":   time.Now(),
	})
}

func (r *mongoProducts) ReserveStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

func (r *mongoProducts) ReleaseStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": qty}})
	return err
}
