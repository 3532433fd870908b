package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoBlacklist struct {
	coll *mongo.Collection
}

// NewTokenBlacklist stores revoked manager tokens until they would have expired anyway.
func NewTokenBlacklist(coll *mongo.Collection) TokenBlacklist {
	return &mongoBlacklist{coll: coll}
}

func (r *mongoBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.coll.InsertOne(ctx, bson.M{"token": token, "expiresAt": expiresAt})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *mongoBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Err()
	switch {
	case err == nil:
		return true, nil
	case err == mongo.ErrNoDocuments:
		return false, nil
	default:
		return false, err
	}
}
