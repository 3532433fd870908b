package repository

import (
	"context"
	"fmt"

	"craftedbyher/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoApplications struct {
	coll *mongo.Collection
}

func NewSellerApplicationRepository(coll *mongo.Collection) SellerApplicationRepository {
	return &mongoApplications{coll: coll}
}

func (r *mongoApplications) Create(ctx context.Context, a *models.SellerApplication) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert seller application: %w", duplicate(err))
	}
	return nil
}

func (r *mongoApplications) findOne(ctx context.Context, filter bson.M) (*models.SellerApplication, error) {
	var a models.SellerApplication
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *mongoApplications) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SellerApplication, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoApplications) FindByUser(ctx context.Context, userID string) (*models.SellerApplication, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoApplications) List(ctx context.Context, q models.ApplicationQuery) ([]models.SellerApplication, int64, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	skip, limit := paginate(q.Page, q.Limit)
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	list := []models.SellerApplication{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Review writes the status and review fields of a.
func (r *mongoApplications) Review(ctx context.Context, a *models.SellerApplication) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"status":          a.Status,
		"adminNotes":      a.AdminNotes,
		"rejectionReason": a.RejectionReason,
		"reviewedBy":      a.ReviewedBy,
		"reviewedAt":      a.ReviewedAt,
		"approvedAt":      a.ApprovedAt,
		"updatedAt":       a.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
