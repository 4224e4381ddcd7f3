//go:generate mockery --name LLMFailureRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LLMFailureRepository interface {
	Create(ctx context.Context, db *gorm.DB, failure *model.LLMFailure) error
	FindByID(ctx context.Context, db *gorm.DB, failureID uuid.UUID) (*model.LLMFailure, error)
	List(ctx context.Context, db *gorm.DB, filter model.LLMFailureFilter) ([]*model.LLMFailure, error)
	Update(ctx context.Context, db *gorm.DB, failureID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, failureID uuid.UUID) error
	DeleteAll(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormLLMFailureRepository struct{}

func NewGormLLMFailureRepository() LLMFailureRepository {
	return &gormLLMFailureRepository{}
}

func (r *gormLLMFailureRepository) Create(ctx context.Context, db *gorm.DB, failure *model.LLMFailure) error {
	logger := middleware.GetLogger(ctx)
	if failure.FailureID == uuid.Nil {
		failure.FailureID = uuid.New()
	}
	result := db.WithContext(ctx).Omit("Prompt").Create(failure)
	if result.Error != nil {
		logger.Error("Error creating llm failure in DB", "error", result.Error)
		return fmt.Errorf("gormLLMFailureRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLLMFailureRepository) FindByID(ctx context.Context, db *gorm.DB, failureID uuid.UUID) (*model.LLMFailure, error) {
	logger := middleware.GetLogger(ctx)
	var failure model.LLMFailure
	result := db.WithContext(ctx).Where("failure_id = ?", failureID).First(&failure)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding llm failure by ID in DB", "error", result.Error, "failure_id", failureID.String())
		return nil, fmt.Errorf("gormLLMFailureRepository.FindByID: %w", result.Error)
	}
	return &failure, nil
}

// List returns failures newest first. DrumType matches either the recorded
// drum type or the free-text one.
func (r *gormLLMFailureRepository) List(ctx context.Context, db *gorm.DB, filter model.LLMFailureFilter) ([]*model.LLMFailure, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.LLMFailure{})
	if filter.DrumType != "" {
		query = query.Where("drum_type = ? OR free_text_drum_type = ?", filter.DrumType, filter.DrumType)
	}
	if filter.ModelVersion != "" {
		query = query.Where("model_version = ?", filter.ModelVersion)
	}
	if filter.Viewed != nil {
		query = query.Where("viewed = ?", *filter.Viewed)
	}

	var failures []*model.LLMFailure
	result := query.Order("created_at DESC").Scopes(paginate(filter.Limit, filter.Offset)).Find(&failures)
	if result.Error != nil {
		logger.Error("Error listing llm failures in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLLMFailureRepository.List: %w", result.Error)
	}
	return failures, nil
}

func (r *gormLLMFailureRepository) Update(ctx context.Context, db *gorm.DB, failureID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.LLMFailure{}).Where("failure_id = ?", failureID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating llm failure in DB", "error", result.Error, "failure_id", failureID.String())
		return fmt.Errorf("gormLLMFailureRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLLMFailureRepository) Delete(ctx context.Context, db *gorm.DB, failureID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("failure_id = ?", failureID).Delete(&model.LLMFailure{})
	if result.Error != nil {
		logger.Error("Error deleting llm failure in DB", "error", result.Error, "failure_id", failureID.String())
		return fmt.Errorf("gormLLMFailureRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLLMFailureRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.LLMFailure{})
	if result.Error != nil {
		return 0, fmt.Errorf("gormLLMFailureRepository.DeleteAll: %w", result.Error)
	}
	return result.RowsAffected, nil
}
