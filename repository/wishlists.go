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

type mongoWishlists struct {
	coll *mongo.Collection
}

func NewWishlistRepository(coll *mongo.Collection) WishlistRepository {
	return &mongoWishlists{coll: coll}
}

func (r *mongoWishlists) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&w); err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

// Add pushes productID onto the user's list, creating the list on first use.
// The filter skips lists that already hold the product, so the upsert then
// collides with the unique userId index; the retry without upsert tells a
// repeat add apart from a list created concurrently.
func (r *mongoWishlists) Add(ctx context.Context, userID string, productID primitive.ObjectID, at time.Time) error {
	filter := bson.M{"userId": userID, "products": bson.M{"$ne": productID}}
	update := bson.M{
		"$push":        bson.M{"products": productID},
		"$set":         bson.M{"updatedAt": at},
		"$setOnInsert": bson.M{"createdAt": at},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *mongoWishlists) Remove(ctx context.Context, userID string, productID primitive.ObjectID, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "products": productID},
		bson.M{"$pull": bson.M{"products": productID}, "$set": bson.M{"updatedAt": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoWishlists) Clear(ctx context.Context, userID string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"products": bson.A{}, "updatedAt": at}},
	)
	return err
}
