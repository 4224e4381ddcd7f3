//go:generate mockery --name ResultRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(ctx context.Context, db *gorm.DB, result *model.TestResult) error
	FindByID(ctx context.Context, db *gorm.DB, resultID uuid.UUID) (*model.TestResult, error)
	List(ctx context.Context, db *gorm.DB, filter model.ResultFilter) ([]*model.TestResult, error)
	Update(ctx context.Context, db *gorm.DB, resultID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, resultID uuid.UUID) error
	DeleteByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context, db *gorm.DB) (int64, error)
	CountByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error)
	FindRows(ctx context.Context, db *gorm.DB, drumType, modelVersion string) ([]model.ResultRow, error)
}

type gormResultRepository struct{}

func NewGormResultRepository() ResultRepository {
	return &gormResultRepository{}
}

func (r *gormResultRepository) Create(ctx context.Context, db *gorm.DB, result *model.TestResult) error {
	logger := middleware.GetLogger(ctx)
	if result.ResultID == uuid.Nil {
		result.ResultID = uuid.New()
	}
	res := db.WithContext(ctx).Omit("Prompt").Create(result)
	if res.Error != nil {
		logger.Error("Error creating test result in DB", "error", res.Error, "prompt_id", result.PromptID.String())
		return fmt.Errorf("gormResultRepository.Create: %w", res.Error)
	}
	return nil
}

func (r *gormResultRepository) FindByID(ctx context.Context, db *gorm.DB, resultID uuid.UUID) (*model.TestResult, error) {
	logger := middleware.GetLogger(ctx)
	var result model.TestResult
	res := db.WithContext(ctx).Preload("Prompt").Where("result_id = ?", resultID).First(&result)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding test result by ID in DB", "error", res.Error, "result_id", resultID.String())
		return nil, fmt.Errorf("gormResultRepository.FindByID: %w", res.Error)
	}
	return &result, nil
}

// List returns results joined to their prompt, newest first. DrumTypeKey
// takes precedence over DrumType when both are set.
func (r *gormResultRepository) List(ctx context.Context, db *gorm.DB, filter model.ResultFilter) ([]*model.TestResult, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.TestResult{}).
		Joins("JOIN prompts ON prompts.prompt_id = test_results.prompt_id").
		Preload("Prompt")

	switch {
	case filter.DrumTypeKey != "":
		labels, err := r.labelsForKey(ctx, db, filter.DrumTypeKey)
		if err != nil {
			return nil, err
		}
		if len(labels) == 0 {
			return []*model.TestResult{}, nil
		}
		query = query.Where("prompts.drum_type IN ?", labels)
	case filter.DrumType != "":
		query = query.Where("prompts.drum_type = ?", filter.DrumType)
	}
	if filter.Difficulty != nil {
		query = query.Where("prompts.difficulty = ?", *filter.Difficulty)
	}
	if filter.ModelVersion != "" {
		query = query.Where("test_results.model_version = ?", filter.ModelVersion)
	}
	if filter.AudioQualityScore != nil {
		query = query.Where("test_results.audio_quality_score = ?", *filter.AudioQualityScore)
	}
	if filter.HasNotes != nil {
		hasNotes := "((test_results.notes IS NOT NULL AND test_results.notes <> '') OR test_results.notes_audio_path IS NOT NULL)"
		if *filter.HasNotes {
			query = query.Where(hasNotes)
		} else {
			query = query.Where("NOT " + hasNotes)
		}
	}

	var results []*model.TestResult
	res := query.Order("test_results.tested_at DESC").Scopes(paginate(filter.Limit, filter.Offset)).Find(&results)
	if res.Error != nil {
		logger.Error("Error listing test results in DB", "error", res.Error)
		return nil, fmt.Errorf("gormResultRepository.List: %w", res.Error)
	}
	return results, nil
}

// labelsForKey resolves a normalized drum-type key to the raw labels stored
// on prompts that normalize to it.
func (r *gormResultRepository) labelsForKey(ctx context.Context, db *gorm.DB, key string) ([]string, error) {
	want := scoring.NormalizeDrumType(key)
	if want == "" {
		return nil, nil
	}
	var raw []string
	err := db.WithContext(ctx).Model(&model.Prompt{}).
		Where("drum_type IS NOT NULL").
		Distinct("drum_type").
		Pluck("drum_type", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("gormResultRepository.labelsForKey: %w", err)
	}
	var labels []string
	for _, label := range raw {
		if scoring.NormalizeDrumType(label) == want {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

func (r *gormResultRepository) Update(ctx context.Context, db *gorm.DB, resultID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(&model.TestResult{}).Where("result_id = ?", resultID).Updates(updates)
	if res.Error != nil {
		logger.Error("Error updating test result in DB", "error", res.Error, "result_id", resultID.String())
		return fmt.Errorf("gormResultRepository.Update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormResultRepository) Delete(ctx context.Context, db *gorm.DB, resultID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	res := db.WithContext(ctx).Where("result_id = ?", resultID).Delete(&model.TestResult{})
	if res.Error != nil {
		logger.Error("Error deleting test result in DB", "error", res.Error, "result_id", resultID.String())
		return fmt.Errorf("gormResultRepository.Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormResultRepository) DeleteByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error) {
	res := db.WithContext(ctx).Where("prompt_id = ?", promptID).Delete(&model.TestResult{})
	if res.Error != nil {
		return 0, fmt.Errorf("gormResultRepository.DeleteByPrompt: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormResultRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.TestResult{})
	if res.Error != nil {
		return 0, fmt.Errorf("gormResultRepository.DeleteAll: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormResultRepository) CountByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.TestResult{}).Where("prompt_id = ?", promptID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormResultRepository.CountByPrompt: %w", err)
	}
	return count, nil
}

// FindRows scans every result joined to its prompt for aggregation. Empty
// filters match everything.
func (r *gormResultRepository) FindRows(ctx context.Context, db *gorm.DB, drumType, modelVersion string) ([]model.ResultRow, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Table("test_results").
		Select(`test_results.result_id, test_results.prompt_id,
			test_results.audio_quality_score, test_results.llm_accuracy_score, test_results.generation_score,
			test_results.generated_json, test_results.llm_response, test_results.model_version,
			test_results.notes, test_results.notes_audio_path, test_results.tested_at,
			prompts.text AS prompt_text, prompts.category AS prompt_category,
			prompts.difficulty, prompts.drum_type`).
		Joins("JOIN prompts ON prompts.prompt_id = test_results.prompt_id")
	if drumType != "" {
		query = query.Where("prompts.drum_type = ?", drumType)
	}
	if modelVersion != "" {
		query = query.Where("test_results.model_version = ?", modelVersion)
	}

	var rows []model.ResultRow
	if err := query.Order("test_results.tested_at").Scan(&rows).Error; err != nil {
		logger.Error("Error scanning result rows in DB", "error", err)
		return nil, fmt.Errorf("gormResultRepository.FindRows: %w", err)
	}
	return rows, nil
}
