package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoHubs struct {
	coll *mongo.Collection
}

func NewHubRepository(coll *mongo.Collection) HubRepository {
	return &mongoHubs{coll: coll}
}

func (r *mongoHubs) Create(ctx context.Context, h *models.Hub) error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert hub %s: %w", h.HubID, duplicate(err))
	}
	return nil
}

func (r *mongoHubs) FindByHubID(ctx context.Context, hubID string) (*models.Hub, error) {
	var h models.Hub
	if err := r.coll.FindOne(ctx, bson.M{"hubId": hubID}).Decode(&h); err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *mongoHubs) List(ctx context.Context, status, district string) ([]models.Hub, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if district != "" {
		filter["district"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(district) + "$", Options: "i"}
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "hubId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	hubs := []models.Hub{}
	if err := cursor.All(ctx, &hubs); err != nil {
		return nil, err
	}
	return hubs, nil
}

func (r *mongoHubs) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoHubs) IncStats(ctx context.Context, hubID string, inc map[string]int) error {
	if len(inc) == 0 {
		return nil
	}
	fields := bson.M{}
	for k, v := range inc {
		fields[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"hubId": hubID}, bson.M{
		"$inc": fields,
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("update hub %s stats: %w", hubID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoHubs) set(ctx context.Context, hubID string, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"hubId": hubID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoHubs) SetStatus(ctx context.Context, hubID, status string) error {
	return r.set(ctx, hubID, bson.M{"status": status})
}

func (r *mongoHubs) AssignManager(ctx context.Context, hubID, managerID, managerName string) error {
	return r.set(ctx, hubID, bson.M{"managerId": managerID, "managerName": managerName})
}
