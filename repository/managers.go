package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoManagers struct {
	coll *mongo.Collection
}

func NewHubManagerRepository(coll *mongo.Collection) HubManagerRepository {
	return &mongoManagers{coll: coll}
}

func (r *mongoManagers) Create(ctx context.Context, m *models.HubManager) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert hub manager: %w", duplicate(err))
	}
	return nil
}

func (r *mongoManagers) findOne(ctx context.Context, filter bson.M) (*models.HubManager, error) {
	var m models.HubManager
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *mongoManagers) FindByEmail(ctx context.Context, email string) (*models.HubManager, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *mongoManagers) FindByManagerID(ctx context.Context, managerID string) (*models.HubManager, error) {
	return r.findOne(ctx, bson.M{"managerId": managerID})
}

func (r *mongoManagers) find(ctx context.Context, filter bson.M) ([]models.HubManager, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "managerId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	managers := []models.HubManager{}
	if err := cursor.All(ctx, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}

func (r *mongoManagers) FindActiveByHub(ctx context.Context, hubID string) ([]models.HubManager, error) {
	return r.find(ctx, bson.M{"hubId": hubID, "status": models.ManagerActive})
}

func (r *mongoManagers) List(ctx context.Context) ([]models.HubManager, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoManagers) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoManagers) set(ctx context.Context, managerID string, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"managerId": managerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoManagers) SetStatus(ctx context.Context, managerID, status string) error {
	return r.set(ctx, managerID, bson.M{"status": status, "updatedAt": time.Now()})
}

func (r *mongoManagers) AssignHub(ctx context.Context, managerID string, hub models.Hub) error {
	return r.set(ctx, managerID, bson.M{
		"hubId":     hub.HubID,
		"hubName":   hub.Name,
		"district":  hub.District,
		"updatedAt": time.Now(),
	})
}

func (r *mongoManagers) TouchLogin(ctx context.Context, managerID string, at time.Time) error {
	return r.set(ctx, managerID, bson.M{"lastLogin": at})
}
