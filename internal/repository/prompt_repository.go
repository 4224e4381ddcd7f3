//go:generate mockery --name PromptRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptRepository interface {
	Create(ctx context.Context, db *gorm.DB, prompt *model.Prompt) error
	CreateBatch(ctx context.Context, db *gorm.DB, prompts []*model.Prompt) error
	FindByID(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (*model.Prompt, error)
	List(ctx context.Context, db *gorm.DB, filter model.PromptFilter) ([]*model.Prompt, error)
	Update(ctx context.Context, db *gorm.DB, promptID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error
	DeleteAll(ctx context.Context, db *gorm.DB) (int64, error)
	IncrementUsedCount(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error
	TextExists(ctx context.Context, db *gorm.DB, text string) (bool, error)
	LowerTexts(ctx context.Context, db *gorm.DB) (map[string]struct{}, error)

	// Rotation pool queries. All of them only see non-user-generated prompts.
	DistinctDrumTypes(ctx context.Context, db *gorm.DB) ([]string, error)
	MinUsedCount(ctx context.Context, db *gorm.DB) (int, error)
	FindCell(ctx context.Context, db *gorm.DB, drumType string, difficulty, usedCount int, excludeID *uuid.UUID) ([]*model.Prompt, error)
	FindLeastUsed(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) ([]*model.Prompt, error)
	CountEligible(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) (int64, error)
	FindEligibleAt(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID, offset int) (*model.Prompt, error)
}

type gormPromptRepository struct{}

func NewGormPromptRepository() PromptRepository {
	return &gormPromptRepository{}
}

// eligible scopes a query to the curated pool, optionally without one id.
func eligible(excludeID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_user_generated = ?", false)
		if excludeID != nil {
			db = db.Where("prompt_id <> ?", *excludeID)
		}
		return db
	}
}

func (r *gormPromptRepository) Create(ctx context.Context, db *gorm.DB, prompt *model.Prompt) error {
	logger := middleware.GetLogger(ctx)
	if prompt.PromptID == uuid.Nil {
		prompt.PromptID = uuid.New()
	}
	result := db.WithContext(ctx).Create(prompt)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate key error on create prompt", "error", result.Error, "prompt_id", prompt.PromptID.String())
			return model.ErrConflict
		}
		logger.Error("Error creating prompt in DB", "error", result.Error, "difficulty", prompt.Difficulty)
		return fmt.Errorf("gormPromptRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormPromptRepository) CreateBatch(ctx context.Context, db *gorm.DB, prompts []*model.Prompt) error {
	logger := middleware.GetLogger(ctx)
	if len(prompts) == 0 {
		return nil
	}
	for _, p := range prompts {
		if p.PromptID == uuid.Nil {
			p.PromptID = uuid.New()
		}
	}
	result := db.WithContext(ctx).CreateInBatches(prompts, 200)
	if result.Error != nil {
		logger.Error("Error batch creating prompts in DB", "error", result.Error, "count", len(prompts))
		return fmt.Errorf("gormPromptRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormPromptRepository) FindByID(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	var prompt model.Prompt
	result := db.WithContext(ctx).Where("prompt_id = ?", promptID).First(&prompt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding prompt by ID in DB", "error", result.Error, "prompt_id", promptID.String())
		return nil, fmt.Errorf("gormPromptRepository.FindByID: %w", result.Error)
	}
	return &prompt, nil
}

func (r *gormPromptRepository) List(ctx context.Context, db *gorm.DB, filter model.PromptFilter) ([]*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.Prompt{}).
		Where("difficulty BETWEEN ? AND ?", filter.DifficultyMin, filter.DifficultyMax)
	if filter.DrumType != "" {
		query = query.Where("drum_type = ?", filter.DrumType)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var prompts []*model.Prompt
	result := query.Order("created_at DESC").Scopes(paginate(filter.Limit, filter.Offset)).Find(&prompts)
	if result.Error != nil {
		logger.Error("Error listing prompts in DB", "error", result.Error)
		return nil, fmt.Errorf("gormPromptRepository.List: %w", result.Error)
	}
	return prompts, nil
}

func (r *gormPromptRepository) Update(ctx context.Context, db *gorm.DB, promptID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.Prompt{}).Where("prompt_id = ?", promptID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating prompt in DB", "error", result.Error, "prompt_id", promptID.String())
		return fmt.Errorf("gormPromptRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPromptRepository) Delete(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("prompt_id = ?", promptID).Delete(&model.Prompt{})
	if result.Error != nil {
		logger.Error("Error deleting prompt in DB", "error", result.Error, "prompt_id", promptID.String())
		return fmt.Errorf("gormPromptRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPromptRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Prompt{})
	if result.Error != nil {
		return 0, fmt.Errorf("gormPromptRepository.DeleteAll: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// IncrementUsedCount bumps used_count in a single statement. Concurrent
// dispatches are not serialized; the counter is advisory.
func (r *gormPromptRepository) IncrementUsedCount(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.Prompt{}).
		Where("prompt_id = ?", promptID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		logger.Error("Error incrementing used_count in DB", "error", result.Error, "prompt_id", promptID.String())
		return fmt.Errorf("gormPromptRepository.IncrementUsedCount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// TextExists reports whether a curated prompt already has this text,
// compared case-insensitively.
func (r *gormPromptRepository) TextExists(ctx context.Context, db *gorm.DB, text string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Prompt{}).
		Scopes(eligible(nil)).
		Where("LOWER(text) = ?", strings.ToLower(text)).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking prompt text existence in DB", "error", result.Error)
		return false, fmt.Errorf("gormPromptRepository.TextExists: %w", result.Error)
	}
	return count > 0, nil
}

// LowerTexts returns the lower-cased text of every prompt, for bulk dedupe.
func (r *gormPromptRepository) LowerTexts(ctx context.Context, db *gorm.DB) (map[string]struct{}, error) {
	var texts []string
	if err := db.WithContext(ctx).Model(&model.Prompt{}).Pluck("text", &texts).Error; err != nil {
		return nil, fmt.Errorf("gormPromptRepository.LowerTexts: %w", err)
	}
	set := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return set, nil
}

// DistinctDrumTypes returns the non-empty drum types of the curated pool in
// ascending byte order, independent of database collation.
func (r *gormPromptRepository) DistinctDrumTypes(ctx context.Context, db *gorm.DB) ([]string, error) {
	logger := middleware.GetLogger(ctx)
	var drumTypes []string
	result := db.WithContext(ctx).Model(&model.Prompt{}).
		Scopes(eligible(nil)).
		Where("drum_type IS NOT NULL AND drum_type <> ''").
		Distinct("drum_type").
		Pluck("drum_type", &drumTypes)
	if result.Error != nil {
		logger.Error("Error listing drum types in DB", "error", result.Error)
		return nil, fmt.Errorf("gormPromptRepository.DistinctDrumTypes: %w", result.Error)
	}
	slices.Sort(drumTypes)
	return drumTypes, nil
}

// MinUsedCount returns the lowest used_count of the curated pool, or 0 when
// the pool is empty.
func (r *gormPromptRepository) MinUsedCount(ctx context.Context, db *gorm.DB) (int, error) {
	logger := middleware.GetLogger(ctx)
	var minUsed sql.NullInt64
	err := db.WithContext(ctx).Model(&model.Prompt{}).
		Scopes(eligible(nil)).
		Select("MIN(used_count)").
		Row().
		Scan(&minUsed)
	if err != nil {
		logger.Error("Error reading minimum used_count in DB", "error", err)
		return 0, fmt.Errorf("gormPromptRepository.MinUsedCount: %w", err)
	}
	return int(minUsed.Int64), nil
}

// FindCell returns every curated prompt at one grid cell with exactly
// usedCount uses.
func (r *gormPromptRepository) FindCell(ctx context.Context, db *gorm.DB, drumType string, difficulty, usedCount int, excludeID *uuid.UUID) ([]*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	var prompts []*model.Prompt
	result := db.WithContext(ctx).
		Scopes(eligible(excludeID)).
		Where("drum_type = ? AND difficulty = ? AND used_count = ?", drumType, difficulty, usedCount).
		Order("prompt_id").
		Find(&prompts)
	if result.Error != nil {
		logger.Error("Error finding rotation cell in DB", "error", result.Error, "drum_type", drumType, "difficulty", difficulty)
		return nil, fmt.Errorf("gormPromptRepository.FindCell: %w", result.Error)
	}
	return prompts, nil
}

// FindLeastUsed returns the curated prompts sharing the lowest used_count
// once excludeID is left out. Drum type and difficulty are ignored.
func (r *gormPromptRepository) FindLeastUsed(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) ([]*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	minQuery := db.WithContext(ctx).Model(&model.Prompt{}).Scopes(eligible(excludeID)).Select("MIN(used_count)")

	var prompts []*model.Prompt
	result := db.WithContext(ctx).
		Scopes(eligible(excludeID)).
		Where("used_count = (?)", minQuery).
		Order("prompt_id").
		Find(&prompts)
	if result.Error != nil {
		logger.Error("Error finding least used prompts in DB", "error", result.Error)
		return nil, fmt.Errorf("gormPromptRepository.FindLeastUsed: %w", result.Error)
	}
	return prompts, nil
}

func (r *gormPromptRepository) CountEligible(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Prompt{}).Scopes(eligible(excludeID)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormPromptRepository.CountEligible: %w", err)
	}
	return count, nil
}

// FindEligibleAt returns the curated prompt at offset in a stable id order.
func (r *gormPromptRepository) FindEligibleAt(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID, offset int) (*model.Prompt, error) {
	var prompt model.Prompt
	result := db.WithContext(ctx).
		Scopes(eligible(excludeID)).
		Order("prompt_id").
		Offset(offset).
		Limit(1).
		Find(&prompt)
	if result.Error != nil {
		return nil, fmt.Errorf("gormPromptRepository.FindEligibleAt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return &prompt, nil
}
