package database

import (
	"context"
	"fmt"
	"time"

	"craftedbyher/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var logger = logging.NewPackageLogger("database")

var Client *mongo.Client
var DB *mongo.Database

// ConnectMongo opens the client and pings the primary before returning.
func ConnectMongo(ctx context.Context, uri, dbName string) error {
	if uri == "" || dbName == "" {
		return fmt.Errorf("MONGO_URI or DB_NAME not set in environment variables")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}

	Client = client
	DB = client.Database(dbName)

	logger.Info().Str("db", dbName).Msg("connected to MongoDB")
	return nil
}

func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		logger.Warn().Err(err).Msg("mongo disconnect")
	}
}

const (
	Users              = "users"
	Products           = "products"
	Orders             = "orders"
	Carts              = "carts"
	Wishlists          = "wishlists"
	Notifications      = "notifications"
	Hubs               = "hubs"
	HubManagers        = "hubmanagers"
	BlacklistTokens    = "blacklist_tokens"
	SellerApplications = "seller_applications"
)

var UserCollection *mongo.Collection
var ProductCollection *mongo.Collection
var OrderCollection *mongo.Collection
var CartCollection *mongo.Collection
var WishlistCollection *mongo.Collection
var NotificationCollection *mongo.Collection
var HubCollection *mongo.Collection
var HubManagerCollection *mongo.Collection
var BlacklistCollection *mongo.Collection
var SellerApplicationCollection *mongo.Collection

func InitCollections() {
	UserCollection = DB.Collection(Users)
	ProductCollection = DB.Collection(Products)
	OrderCollection = DB.Collection(Orders)
	CartCollection = DB.Collection(Carts)
	WishlistCollection = DB.Collection(Wishlists)
	NotificationCollection = DB.Collection(Notifications)
	HubCollection = DB.Collection(Hubs)
	HubManagerCollection = DB.Collection(HubManagers)
	BlacklistCollection = DB.Collection(BlacklistTokens)
	SellerApplicationCollection = DB.Collection(SellerApplications)
}

// Indexes lists every index the service relies on, by collection.
func Indexes() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		Users: {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		Orders: {
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "items.sellerId", Value: 1}}},
			{Keys: bson.D{{Key: "hubTracking.sellerHubId", Value: 1}, {Key: "orderStatus", Value: 1}}},
			{Keys: bson.D{{Key: "hubTracking.customerHubId", Value: 1}, {Key: "orderStatus", Value: 1}}},
		},
		Wishlists: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		},
		Notifications: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userRole", Value: 1}, {Key: "read", Value: 1}}},
		},
		Hubs: {
			{Keys: bson.D{{Key: "hubId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "district", Value: 1}, {Key: "status", Value: 1}}},
		},
		HubManagers: {
			{Keys: bson.D{{Key: "managerId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		Carts: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}},
		},
		SellerApplications: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		BlacklistTokens: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}
}

// EnsureIndexes creates all indexes. Existing identical indexes are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.Debug().Str("collection", coll).Strs("indexes", names).Msg("indexes ensured")
	}
	return nil
}
