// internal/service/result_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"
	"drumgen_testbench/internal/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const noLLMResponse = "No LLM response available"

type ResultService interface {
	SubmitScore(ctx context.Context, req *model.SubmitScoreRequest) (*model.TestResult, error)
	ListResults(ctx context.Context, filter model.ResultFilter) ([]*model.TestResult, error)
	GetResult(ctx context.Context, resultID uuid.UUID) (*model.TestResult, error)
	UpdateResult(ctx context.Context, resultID uuid.UUID, req *model.PatchResultRequest) (*model.TestResult, error)
	DeleteResult(ctx context.Context, resultID uuid.UUID) error
	ConvertToFailure(ctx context.Context, resultID uuid.UUID) (*model.ConvertToFailureResponse, error)
}

type resultService struct {
	db          *gorm.DB
	promptRepo  repository.PromptRepository
	resultRepo  repository.ResultRepository
	failureRepo repository.LLMFailureRepository
	now         func() time.Time
}

func NewResultService(db *gorm.DB, promptRepo repository.PromptRepository, resultRepo repository.ResultRepository, failureRepo repository.LLMFailureRepository) ResultService {
	return &resultService{
		db:          db,
		promptRepo:  promptRepo,
		resultRepo:  resultRepo,
		failureRepo: failureRepo,
		now:         time.Now,
	}
}

func resultNotFound() error {
	return model.NewAppError("RESULT_NOT_FOUND", "Result not found.", "result_id", model.ErrNotFound)
}

// SubmitScore records a tester's evaluation. In free-text mode (no prompt id)
// the prompt is created as user-generated in the same transaction. The
// generation score is computed from the prompt's difficulty and captured.
func (s *resultService) SubmitScore(ctx context.Context, req *model.SubmitScoreRequest) (*model.TestResult, error) {
	logger := middleware.GetLogger(ctx)

	freeText := ""
	if req.FreeTextPrompt != nil {
		freeText = strings.TrimSpace(*req.FreeTextPrompt)
	}
	if req.PromptID == nil && freeText == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Either prompt_id or free_text_prompt is required.", "prompt_id", model.ErrInvalidInput)
	}

	var created *model.TestResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt *model.Prompt
		if req.PromptID == nil {
			prompt = newFreeTextPrompt(freeText, req)
			if err := s.promptRepo.Create(ctx, tx, prompt); err != nil {
				return err
			}
		} else {
			var err error
			prompt, err = s.promptRepo.FindByID(ctx, tx, *req.PromptID)
			if err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
				}
				return err
			}
		}

		genScore := scoring.Round(scoring.GenerationScore(prompt.Difficulty, float64(req.AudioQualityScore)))
		result := &model.TestResult{
			ResultID:          uuid.New(),
			PromptID:          prompt.PromptID,
			AudioQualityScore: req.AudioQualityScore,
			LLMAccuracyScore:  req.LLMAccuracyScore,
			GenerationScore:   &genScore,
			GeneratedJSON:     req.GeneratedJSON,
			LLMResponse:       req.LLMResponse,
			AudioID:           req.AudioID,
			ModelVersion:      req.ModelVersion,
			Notes:             req.Notes,
			NotesAudioPath:    req.NotesAudioPath,
			TestedAt:          s.now().UTC(),
		}
		if err := s.resultRepo.Create(ctx, tx, result); err != nil {
			return err
		}
		result.Prompt = prompt
		created = result
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for SubmitScore", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Score submitted",
		"result_id", created.ResultID.String(),
		"prompt_id", created.PromptID.String(),
		"generation_score", *created.GenerationScore,
	)
	return created, nil
}

func newFreeTextPrompt(text string, req *model.SubmitScoreRequest) *model.Prompt {
	difficulty := model.DefaultFreeTextDifficulty
	if req.FreeTextDifficulty != nil && *req.FreeTextDifficulty != 0 {
		difficulty = *req.FreeTextDifficulty
	}
	category := model.DefaultFreeTextCategory
	if req.FreeTextCategory != nil && strings.TrimSpace(*req.FreeTextCategory) != "" {
		category = *req.FreeTextCategory
	}
	return &model.Prompt{
		PromptID:           uuid.New(),
		Text:               text,
		Difficulty:         difficulty,
		Category:           &category,
		DrumType:           req.FreeTextDrumType,
		IsUserGenerated:    true,
		UsedCount:          1,
		ExpectedParameters: req.GeneratedJSON,
	}
}

func (s *resultService) ListResults(ctx context.Context, filter model.ResultFilter) ([]*model.TestResult, error) {
	results, err := s.resultRepo.List(ctx, s.db, filter)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing results", "error", err)
		return nil, model.ErrInternalServer
	}
	return results, nil
}

func (s *resultService) GetResult(ctx context.Context, resultID uuid.UUID) (*model.TestResult, error) {
	result, err := s.resultRepo.FindByID(ctx, s.db, resultID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, resultNotFound()
		}
		return nil, model.ErrInternalServer
	}
	return result, nil
}

// UpdateResult changes scores or notes. The captured generation score is
// left as it was.
func (s *resultService) UpdateResult(ctx context.Context, resultID uuid.UUID, req *model.PatchResultRequest) (*model.TestResult, error) {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{}
	if req.AudioQualityScore != nil {
		updates["audio_quality_score"] = *req.AudioQualityScore
	}
	if req.LLMAccuracyScore != nil {
		updates["llm_accuracy_score"] = *req.LLMAccuracyScore
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.NotesAudioPath != nil {
		if *req.NotesAudioPath == "" {
			updates["notes_audio_path"] = nil
		} else {
			updates["notes_audio_path"] = *req.NotesAudioPath
		}
	}

	var updated *model.TestResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.resultRepo.FindByID(ctx, tx, resultID); err != nil {
			return err
		}
		if err := s.resultRepo.Update(ctx, tx, resultID, updates); err != nil {
			return err
		}
		var err error
		updated, err = s.resultRepo.FindByID(ctx, tx, resultID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, resultNotFound()
		}
		logger.Error("Transaction failed for UpdateResult", "error", err)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *resultService) DeleteResult(ctx context.Context, resultID uuid.UUID) error {
	if err := s.resultRepo.Delete(ctx, s.db, resultID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return resultNotFound()
		}
		return model.ErrInternalServer
	}
	middleware.GetLogger(ctx).Info("Result deleted", "result_id", resultID.String())
	return nil
}

// ConvertToFailure moves a result into the failure log: a failure is created
// from it and the result is deleted, both or neither.
func (s *resultService) ConvertToFailure(ctx context.Context, resultID uuid.UUID) (*model.ConvertToFailureResponse, error) {
	logger := middleware.GetLogger(ctx)

	var failure *model.LLMFailure
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result, err := s.resultRepo.FindByID(ctx, tx, resultID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return resultNotFound()
			}
			return err
		}
		prompt := result.Prompt
		if prompt == nil {
			if prompt, err = s.promptRepo.FindByID(ctx, tx, result.PromptID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)
				}
				return err
			}
		}

		failure = &model.LLMFailure{
			FailureID:      uuid.New(),
			PromptID:       &result.PromptID,
			PromptText:     prompt.Text,
			LLMResponse:    failureResponseText(result),
			ModelVersion:   result.ModelVersion,
			DrumType:       failureDrumType(result, prompt),
			Notes:          result.Notes,
			NotesAudioPath: result.NotesAudioPath,
			AudioID:        result.AudioID,
			CreatedAt:      s.now().UTC(),
		}
		if err := s.failureRepo.Create(ctx, tx, failure); err != nil {
			return err
		}
		return s.resultRepo.Delete(ctx, tx, resultID)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for ConvertToFailure", "error", err, "result_id", resultID.String())
		return nil, model.ErrInternalServer
	}

	logger.Info("Result converted to LLM failure", "result_id", resultID.String(), "llm_failure_id", failure.FailureID.String())
	return &model.ConvertToFailureResponse{
		LLMFailureID: failure.FailureID,
		Message:      "Result converted to LLM failure.",
	}, nil
}

func failureDrumType(result *model.TestResult, prompt *model.Prompt) *string {
	if result.LLMResponse != nil {
		if kind, ok := model.KindFromResponse(*result.LLMResponse); ok {
			return &kind
		}
	}
	return prompt.DrumType
}

func failureResponseText(result *model.TestResult) string {
	if result.LLMResponse != nil && *result.LLMResponse != "" {
		return *result.LLMResponse
	}
	if len(result.GeneratedJSON) > 0 {
		return string(result.GeneratedJSON)
	}
	return noLLMResponse
}
