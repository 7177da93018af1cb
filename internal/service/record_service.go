package service

import (
	"context"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/go-playground/validator/v10"
)

// RecordService handles employee record operations
type RecordService struct {
	repo     repository.RecordRepository
	validate *validator.Validate
}

// NewRecordService creates a new record service
func NewRecordService(repo repository.RecordRepository) *RecordService {
	return &RecordService{
		repo:     repo,
		validate: newValidator(),
	}
}

func (s *RecordService) ListRecords(ctx context.Context) ([]models.Record, error) {
	return s.repo.List(ctx)
}

func (s *RecordService) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RecordService) CreateRecord(ctx context.Context, input models.RecordInput) (*models.InsertResult, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// UpdateRecord overwrites name, position and level of an existing record
func (s *RecordService) UpdateRecord(ctx context.Context, id string, input models.RecordInput) (*models.UpdateResult, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) (*models.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
