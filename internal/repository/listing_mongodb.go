package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"toy-marketplace-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBListingRepository implements ListingRepository using MongoDB.
type MongoDBListingRepository struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// MongoOptions holds the connection settings for the hosted cluster.
// Credentials are passed structurally, never interpolated into the URI, so
// values containing URI-reserved characters cannot break the connection.
type MongoOptions struct {
	URI        string
	Username   string
	Password   string
	Database   string
	Collection string
}

// NewMongoDBListingRepository connects to the cluster, verifies the
// connection with a ping and returns the repository. A failed ping is an
// error: the caller is expected to abort startup rather than run with a
// non-functional store.
func NewMongoDBListingRepository(opts MongoOptions) (*MongoDBListingRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	if opts.Username != "" {
		clientOpts = clientOpts.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(opts.Database)
	coll := db.Collection(opts.Collection)

	log.Printf("[MongoDB] Connected to %s/%s", opts.Database, opts.Collection)
	return &MongoDBListingRepository{
		client:     client,
		db:         db,
		collection: coll,
	}, nil
}

// ListAll returns every listing in insertion order.
func (r *MongoDBListingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

// ListBySeller returns listings whose sellerEmail matches exactly.
func (r *MongoDBListingRepository) ListBySeller(ctx context.Context, email string) ([]model.Listing, error) {
	return r.find(ctx, bson.M{model.FieldSellerEmail: email}, options.Find())
}

// ListLimited returns the first limit listings in store-default order.
func (r *MongoDBListingRepository) ListLimited(ctx context.Context, limit int64) ([]model.Listing, error) {
	return r.find(ctx, bson.M{}, options.Find().SetLimit(limit))
}

// ListSortedByPrice returns all listings ordered by price.
func (r *MongoDBListingRepository) ListSortedByPrice(ctx context.Context, ascending bool) ([]model.Listing, error) {
	direction := -1
	if ascending {
		direction = 1
	}
	sort := bson.D{{Key: model.FieldPrice, Value: direction}}
	return r.find(ctx, bson.M{}, options.Find().SetSort(sort))
}

func (r *MongoDBListingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []model.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}

// GetByID returns the listing matching id, or ErrNotFound.
func (r *MongoDBListingRepository) GetByID(ctx context.Context, id string) (model.Listing, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var listing model.Listing
	err = r.collection.FindOne(ctx, bson.M{model.FieldID: oid}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// Insert persists doc verbatim and returns the assigned identifier.
func (r *MongoDBListingRepository) Insert(ctx context.Context, doc model.Listing) (string, error) {
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return oid.Hex(), nil
}

// ReplaceFields overwrites the seven business fields on the matching
// document. A zero matched count is not an error.
func (r *MongoDBListingRepository) ReplaceFields(ctx context.Context, id string, patch model.ListingPatch) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	update := bson.M{"$set": patch}
	result, err := r.collection.UpdateOne(ctx, bson.M{model.FieldID: oid}, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update listing: %w", err)
	}
	return result.MatchedCount, nil
}

// Delete removes the matching document. A zero deleted count is not an error.
func (r *MongoDBListingRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{model.FieldID: oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete listing: %w", err)
	}
	return result.DeletedCount, nil
}

// Ping verifies store connectivity.
func (r *MongoDBListingRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Stats returns statistics about the listing collection.
func (r *MongoDBListingRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	stats["status"] = "connected"

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats["total_listings"] = count

	result := r.db.RunCommand(ctx, bson.D{{Key: "collStats", Value: r.collection.Name()}})
	var collStats bson.M
	if err := result.Decode(&collStats); err == nil {
		if size, ok := collStats["size"].(int64); ok {
			stats["db_size_bytes"] = size
		} else if size, ok := collStats["size"].(int32); ok {
			stats["db_size_bytes"] = int64(size)
		}
	}

	return stats, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBListingRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// parseObjectID validates and parses a store identifier. Malformed
// identifiers yield ErrInvalidID so callers can surface a client error.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// Ensure MongoDBListingRepository implements ListingRepository
var _ ListingRepository = (*MongoDBListingRepository)(nil)
