// Package fake provides in-memory repository doubles for tests.
package fake

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository records the calls it receives and returns canned data
type ProductRepository struct {
	mu sync.Mutex

	Docs      []bson.M
	Err       error
	Names     map[string]bool
	Pipelines []mongo.Pipeline
	Updates   map[string]bson.M
	Inserted  []models.ProductInput
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository returns a fake seeded with docs
func NewProductRepository(docs ...bson.M) *ProductRepository {
	names := make(map[string]bool)
	for _, d := range docs {
		if n, ok := d["name"].(string); ok {
			names[n] = true
		}
	}
	return &ProductRepository{Docs: docs, Names: names, Updates: make(map[string]bson.M)}
}

// LastPipeline returns the most recent pipeline passed to List
func (r *ProductRepository) LastPipeline() mongo.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Pipelines) == 0 {
		return nil
	}
	return r.Pipelines[len(r.Pipelines)-1]
}

func (r *ProductRepository) List(ctx context.Context, p mongo.Pipeline) ([]bson.M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pipelines = append(r.Pipelines, p)
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]bson.M, len(r.Docs))
	copy(out, r.Docs)
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, input models.ProductInput) (*models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Names[input.Name] {
		return nil, repository.ErrDuplicateName
	}
	r.Names[input.Name] = true
	r.Inserted = append(r.Inserted, input)
	return &models.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID().Hex()}, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, fields bson.M) (*models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	r.Updates[id] = fields
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (*models.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	n := int64(len(r.Docs))
	r.Docs = nil
	r.Names = make(map[string]bool)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, inputs []models.ProductInput) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, 0, r.Err
	}
	inserted, dup := 0, 0
	for _, in := range inputs {
		if r.Names[in.Name] {
			dup++
			continue
		}
		r.Names[in.Name] = true
		r.Inserted = append(r.Inserted, in)
		inserted++
	}
	return inserted, dup, nil
}

// RecordRepository keeps records in a map keyed by ObjectID hex
type RecordRepository struct {
	mu      sync.Mutex
	records map[string]models.Record
	order   []string

	Err error
}

var _ repository.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository returns a fake seeded with records
func NewRecordRepository(records ...models.Record) *RecordRepository {
	r := &RecordRepository{records: make(map[string]models.Record)}
	for _, rec := range records {
		if rec.ID.IsZero() {
			rec.ID = primitive.NewObjectID()
		}
		r.records[rec.ID.Hex()] = rec
		r.order = append(r.order, rec.ID.Hex())
	}
	return r
}

func (r *RecordRepository) List(ctx context.Context) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Record, 0, len(r.order))
	for _, id := range r.order {
		if rec, ok := r.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &rec, nil
}

func (r *RecordRepository) Create(ctx context.Context, input models.RecordInput) (*models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rec := models.Record{ID: primitive.NewObjectID(), Name: input.Name, Position: input.Position, Level: input.Level}
	r.records[rec.ID.Hex()] = rec
	r.order = append(r.order, rec.ID.Hex())
	return &models.InsertResult{Acknowledged: true, InsertedID: rec.ID.Hex()}, nil
}

func (r *RecordRepository) Update(ctx context.Context, id string, input models.RecordInput) (*models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	updated := models.Record{ID: rec.ID, Name: input.Name, Position: input.Position, Level: input.Level}
	var modified int64
	if updated != rec {
		modified = 1
	}
	r.records[id] = updated
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	if _, ok := r.records[id]; !ok {
		return nil, repository.ErrRecordNotFound
	}
	delete(r.records, id)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
