package repository

import (
	"context"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCarts struct {
	coll *mongo.Collection
}

func NewCartRepository(coll *mongo.Collection) CartRepository {
	return &mongoCarts{coll: coll}
}

// Add merges into an existing line for the same product, summing quantities.
func (r *mongoCarts) Add(ctx context.Context, item *models.CartItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": item.UserID, "productId": item.ProductID},
		bson.M{
			"$inc":         bson.M{"quantity": item.Quantity},
			"$set":         bson.M{"variant": item.Variant, "updatedAt": item.CreatedAt},
			"$setOnInsert": bson.M{"createdAt": item.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoCarts) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoCarts) SetQuantity(ctx context.Context, userID string, productID primitive.ObjectID, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "productId": productID},
		bson.M{"$set": bson.M{"quantity": qty, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCarts) Remove(ctx context.Context, userID string, productID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCarts) Clear(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
