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

type mongoNotifications struct {
	coll *mongo.Collection
}

func NewNotificationRepository(coll *mongo.Collection) NotificationRepository {
	return &mongoNotifications{coll: coll}
}

func (r *mongoNotifications) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func recipient(userID, role string) bson.M {
	return bson.M{"userId": userID, "userRole": role}
}

func (r *mongoNotifications) List(ctx context.Context, q models.NotificationQuery) ([]models.Notification, int64, error) {
	filter := recipient(q.UserID, q.UserRole)
	if q.UnreadOnly {
		filter["read"] = false
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	skip, limit := paginate(q.Page, q.Limit)
	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	list := []models.Notification{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *mongoNotifications) CountUnread(ctx context.Context, userID, role string) (int64, error) {
	filter := recipient(userID, role)
	filter["read"] = false
	return r.coll.CountDocuments(ctx, filter)
}

func (r *mongoNotifications) MarkRead(ctx context.Context, id primitive.ObjectID, userID, role string, at time.Time) error {
	filter := recipient(userID, role)
	filter["_id"] = id
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true, "readAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoNotifications) MarkAllRead(ctx context.Context, userID, role string, at time.Time) (int64, error) {
	filter := recipient(userID, role)
	filter["read"] = false
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true, "readAt": at}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoNotifications) Delete(ctx context.Context, id primitive.ObjectID, userID, role string) error {
	filter := recipient(userID, role)
	filter["_id"] = id
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
