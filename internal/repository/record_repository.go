package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordRepository defines the interface for employee record data access
type RecordRepository interface {
	List(ctx context.Context) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (*models.Record, error)
	Create(ctx context.Context, input models.RecordInput) (*models.InsertResult, error)
	Update(ctx context.Context, id string, input models.RecordInput) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// MongoRecordRepository implements RecordRepository on a MongoDB collection
type MongoRecordRepository struct {
	coll *mongo.Collection
}

// NewMongoRecordRepository creates a repository backed by coll
func NewMongoRecordRepository(coll *mongo.Collection) *MongoRecordRepository {
	return &MongoRecordRepository{coll: coll}
}

// List returns every record
func (r *MongoRecordRepository) List(ctx context.Context) ([]models.Record, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.Record, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// GetByID returns a record by its ObjectID hex string
func (r *MongoRecordRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record models.Record
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return &record, nil
}

// Create inserts a new record
func (r *MongoRecordRepository) Create(ctx context.Context, input models.RecordInput) (*models.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: insertedHex(res.InsertedID)}, nil
}

// Update replaces the name, position and level of a record
func (r *MongoRecordRepository) Update(ctx context.Context, id string, input models.RecordInput) (*models.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: input}})
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrRecordNotFound
	}

	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete removes a record
func (r *MongoRecordRepository) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, ErrRecordNotFound
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
