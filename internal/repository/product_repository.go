package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
	Create(ctx context.Context, input models.ProductInput) (*models.InsertResult, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.UpdateResult, error)
	DeleteAll(ctx context.Context) (*models.DeleteResult, error)
	InsertMany(ctx context.Context, inputs []models.ProductInput) (inserted, duplicates int, err error)
}

const duplicateKeyCode = 11000

// MongoProductRepository implements ProductRepository on a MongoDB collection
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a repository backed by coll
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{coll: coll}
}

// List runs pipeline against the products collection. Documents are returned
// as loose maps because projections change their shape.
func (r *MongoProductRepository) List(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate products: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs, nil
}

// Create inserts a product if no other product has the same name
func (r *MongoProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.InsertResult, error) {
	err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: input.Name}}).Err()
	switch {
	case err == nil:
		return nil, ErrDuplicateName
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("failed to look up product name: %w", err)
	}

	res, err := r.coll.InsertOne(ctx, input)
	if err != nil {
		// the unique index catches concurrent inserts that passed the lookup
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &models.InsertResult{Acknowledged: true, InsertedID: insertedHex(res.InsertedID)}, nil
}

// Update sets fields on the product with the given id
func (r *MongoProductRepository) Update(ctx context.Context, id string, fields bson.M) (*models.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrProductNotFound
	}

	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteAll removes every product
func (r *MongoProductRepository) DeleteAll(ctx context.Context) (*models.DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to delete products: %w", err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// InsertMany bulk inserts products without stopping at the first failure.
// Rows rejected by the unique name index are counted as duplicates.
func (r *MongoProductRepository) InsertMany(ctx context.Context, inputs []models.ProductInput) (int, int, error) {
	if len(inputs) == 0 {
		return 0, 0, nil
	}

	docs := make([]interface{}, len(inputs))
	for i := range inputs {
		docs[i] = inputs[i]
	}

	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(res.InsertedIDs), 0, nil
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError == nil {
		for _, we := range bwe.WriteErrors {
			if we.Code != duplicateKeyCode {
				return 0, 0, fmt.Errorf("failed to insert products: %w", err)
			}
		}
		dup := len(bwe.WriteErrors)
		return len(inputs) - dup, dup, nil
	}

	return 0, 0, fmt.Errorf("failed to insert products: %w", err)
}
