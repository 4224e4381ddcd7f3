// internal/service/prompt_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptService interface {
	ListPrompts(ctx context.Context, filter model.PromptFilter) ([]*model.Prompt, error)
	GetPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error)
	CreatePrompt(ctx context.Context, req *model.PostPromptRequest) (*model.Prompt, error)
	UpdatePrompt(ctx context.Context, promptID uuid.UUID, req *model.PutPromptRequest) (*model.Prompt, error)
	DeletePrompt(ctx context.Context, promptID uuid.UUID) error
	DispatchPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error)
	ImportPrompts(ctx context.Context, req *model.ImportPromptsRequest) (*model.ImportPromptsResponse, error)
	SeedPrompts(ctx context.Context, texts []string) (*model.SeedSummary, error)
}

type promptService struct {
	db          *gorm.DB
	promptRepo  repository.PromptRepository
	resultRepo  repository.ResultRepository
	failureRepo repository.LLMFailureRepository
}

func NewPromptService(db *gorm.DB, promptRepo repository.PromptRepository, resultRepo repository.ResultRepository, failureRepo repository.LLMFailureRepository) PromptService {
	return &promptService{
		db:          db,
		promptRepo:  promptRepo,
		resultRepo:  resultRepo,
		failureRepo: failureRepo,
	}
}

func (s *promptService) ListPrompts(ctx context.Context, filter model.PromptFilter) ([]*model.Prompt, error) {
	prompts, err := s.promptRepo.List(ctx, s.db, filter)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing prompts", "error", err)
		return nil, model.ErrInternalServer
	}
	return prompts, nil
}

func (s *promptService) GetPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error) {
	prompt, err := s.promptRepo.FindByID(ctx, s.db, promptID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return prompt, nil
}

func (s *promptService) CreatePrompt(ctx context.Context, req *model.PostPromptRequest) (*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "text is required.", "text", model.ErrInvalidInput)
	}

	var created *model.Prompt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Only the curated pool is kept free of duplicates.
		if !req.IsUserGenerated {
			exists, err := s.promptRepo.TextExists(ctx, tx, text)
			if err != nil {
				logger.Error("Error checking prompt text existence", "error", err)
				return model.ErrInternalServer
			}
			if exists {
				return model.NewAppError("DUPLICATE_PROMPT", "A prompt with this text already exists.", "text", model.ErrConflict)
			}
		}

		prompt := &model.Prompt{
			PromptID:           uuid.New(),
			Text:               text,
			Difficulty:         req.Difficulty,
			Category:           req.Category,
			DrumType:           req.DrumType,
			IsUserGenerated:    req.IsUserGenerated,
			ExpectedParameters: req.ExpectedParameters,
		}
		if err := s.promptRepo.Create(ctx, tx, prompt); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return err
			}
			logger.Error("Error creating prompt", "error", err)
			return model.ErrInternalServer
		}
		created = prompt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *promptService) UpdatePrompt(ctx context.Context, promptID uuid.UUID, req *model.PutPromptRequest) (*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Prompt

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.promptRepo.FindByID(ctx, tx, promptID); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"text":                strings.TrimSpace(req.Text),
			"difficulty":          req.Difficulty,
			"category":            req.Category,
			"drum_type":           req.DrumType,
			"expected_parameters": req.ExpectedParameters,
		}
		if err := s.promptRepo.Update(ctx, tx, promptID, updates); err != nil {
			return err
		}
		var err error
		updated, err = s.promptRepo.FindByID(ctx, tx, promptID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
		}
		logger.Error("Transaction failed for UpdatePrompt", "error", err)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

// DeletePrompt removes a prompt and every result recorded against it.
// Failures keep their copy of the prompt text.
func (s *promptService) DeletePrompt(ctx context.Context, promptID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prompt, err := s.promptRepo.FindByID(ctx, tx, promptID)
		if err != nil {
			return err
		}
		removed, err := s.resultRepo.DeleteByPrompt(ctx, tx, promptID)
		if err != nil {
			return err
		}
		logger.Info("Deleting prompt",
			"prompt_id", promptID.String(),
			"is_user_generated", prompt.IsUserGenerated,
			"used_count", prompt.UsedCount,
			"linked_results", removed,
		)
		return s.promptRepo.Delete(ctx, tx, promptID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
		}
		logger.Error("Transaction failed for DeletePrompt", "error", err)
		return model.ErrInternalServer
	}
	return nil
}

// DispatchPrompt records that a prompt was handed to the generation pipeline.
func (s *promptService) DispatchPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error) {
	if err := s.promptRepo.IncrementUsedCount(ctx, s.db, promptID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return s.GetPrompt(ctx, promptID)
}

// ImportPrompts adds curated prompts in bulk, skipping blanks and texts that
// already exist (case-insensitive), including repeats within the batch.
func (s *promptService) ImportPrompts(ctx context.Context, req *model.ImportPromptsRequest) (*model.ImportPromptsResponse, error) {
	logger := middleware.GetLogger(ctx)

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = model.DefaultImportDifficulty
	}
	category := req.Category
	if category == nil {
		c := model.DefaultImportCategory
		category = &c
	}

	resp := &model.ImportPromptsResponse{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.promptRepo.LowerTexts(ctx, tx)
		if err != nil {
			return err
		}
		var batch []*model.Prompt
		for _, raw := range req.Prompts {
			text := strings.TrimSpace(raw)
			key := strings.ToLower(text)
			if text == "" {
				resp.Skipped++
				continue
			}
			if _, dup := existing[key]; dup {
				resp.Skipped++
				continue
			}
			existing[key] = struct{}{}
			batch = append(batch, &model.Prompt{
				PromptID:   uuid.New(),
				Text:       text,
				Difficulty: difficulty,
				Category:   category,
				DrumType:   req.DrumType,
			})
		}
		if err := s.promptRepo.CreateBatch(ctx, tx, batch); err != nil {
			return err
		}
		resp.Added = len(batch)
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for ImportPrompts", "error", err)
		return nil, model.ErrInternalServer
	}
	logger.Info("Prompts imported", "added", resp.Added, "skipped", resp.Skipped)
	return resp, nil
}

// SeedPrompts wipes results, failures and prompts, then inserts texts as
// curated prompts at the default difficulty.
func (s *promptService) SeedPrompts(ctx context.Context, texts []string) (*model.SeedSummary, error) {
	logger := middleware.GetLogger(ctx)
	summary := &model.SeedSummary{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.ClearedResults, err = s.resultRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if summary.ClearedFailures, err = s.failureRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if summary.ClearedPrompts, err = s.promptRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		var batch []*model.Prompt
		for _, raw := range texts {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			batch = append(batch, &model.Prompt{
				PromptID:   uuid.New(),
				Text:       text,
				Difficulty: model.DefaultImportDifficulty,
			})
		}
		if err := s.promptRepo.CreateBatch(ctx, tx, batch); err != nil {
			return err
		}
		summary.Seeded = len(batch)
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for SeedPrompts", "error", err)
		return nil, model.ErrInternalServer
	}
	return summary, nil
}
