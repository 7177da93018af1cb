package service

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/pipeline"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/spreadsheet"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ProductService handles business logic for products
type ProductService struct {
	repo     repository.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: newValidator(),
	}
}

// ListProducts returns products shaped and ordered by the per-field
// show/hide/asc/desc parameters
func (s *ProductService) ListProducts(ctx context.Context, params map[string]string) ([]bson.M, error) {
	return s.repo.List(ctx, pipeline.BuildListPipeline(params))
}

// Report returns the stock value report
func (s *ProductService) Report(ctx context.Context) ([]bson.M, error) {
	return s.repo.List(ctx, pipeline.ReportPipeline())
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.InsertResult, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// UpdateProduct applies a partial update. Each recognized field present in
// body must hold a value of its kind; unknown keys are ignored.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, body map[string]interface{}) (*models.UpdateResult, error) {
	set := bson.M{}
	fieldErrs := FieldErrors{}

	for _, f := range pipeline.Fields {
		value, ok := body[f.Name]
		if !ok {
			continue
		}
		if !matchesKind(value, f.Kind) {
			fieldErrs[f.Name] = "not a " + f.Kind.String()
			continue
		}
		set[f.Name] = value
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	if len(set) == 0 {
		return nil, ErrNoFields
	}

	return s.repo.Update(ctx, id, set)
}

// DeleteAll removes every product
func (s *ProductService) DeleteAll(ctx context.Context) (*models.DeleteResult, error) {
	return s.repo.DeleteAll(ctx)
}

// Import parses a spreadsheet and bulk inserts its rows. Invalid rows and
// rows whose name already exists are skipped and counted.
func (s *ProductService) Import(ctx context.Context, filename string, data []byte) (*models.ImportSummary, error) {
	products, rowErrors, err := spreadsheet.ReadProducts(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	valid := make([]models.ProductInput, 0, len(products))
	for _, row := range products {
		if err := validateStruct(s.validate, row.Product); err != nil {
			rowErrors = append(rowErrors, models.RowError{Row: row.Line, Message: err.Error()})
			continue
		}
		valid = append(valid, row.Product)
	}

	inserted, duplicates, err := s.repo.InsertMany(ctx, valid)
	if err != nil {
		return nil, err
	}

	return &models.ImportSummary{
		BatchID:  uuid.NewString(),
		File:     filename,
		Inserted: inserted,
		Skipped:  duplicates + len(rowErrors),
		Errors:   rowErrors,
	}, nil
}

func matchesKind(value interface{}, kind pipeline.Kind) bool {
	switch kind {
	case pipeline.KindNumeric:
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	default:
		_, ok := value.(string)
		return ok
	}
}
