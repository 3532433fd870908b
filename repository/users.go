package repository

import (
	"context"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUsers struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &mongoUsers{coll: coll}
}

func (r *mongoUsers) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUsers) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"role": role}, options.Find().SetSort(bson.D{{Key: "uid", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert creates the user on first sight and refreshes name and email afterwards.
// The stored role is never overwritten.
func (r *mongoUsers) Upsert(ctx context.Context, u *models.User) error {
	now := time.Now()
	role := u.Role
	if role == "" {
		role = models.RoleBuyer
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"uid": u.UID},
		bson.M{
			"$set":         bson.M{"name": u.Name, "email": u.Email, "updatedAt": now},
			"$setOnInsert": bson.M{"role": role, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoUsers) set(ctx context.Context, uid string, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUsers) SetSellerLocation(ctx context.Context, uid string, loc models.SellerLocation) error {
	return r.set(ctx, uid, bson.M{"sellerLocation": loc})
}

func (r *mongoUsers) SetRole(ctx context.Context, uid, role string) error {
	return r.set(ctx, uid, bson.M{"role": role})
}

func (r *mongoUsers) SetSuspended(ctx context.Context, uid string, suspended bool) error {
	return r.set(ctx, uid, bson.M{"suspended": suspended})
}
