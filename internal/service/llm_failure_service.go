// internal/service/llm_failure_service.go
package service

import (
	"context"
	"errors"
	"time"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LLMFailureService interface {
	CreateFailure(ctx context.Context, req *model.PostLLMFailureRequest) (*model.LLMFailure, error)
	ListFailures(ctx context.Context, filter model.LLMFailureFilter) ([]*model.LLMFailure, error)
	GetFailure(ctx context.Context, failureID uuid.UUID) (*model.LLMFailure, error)
	MarkViewed(ctx context.Context, failureID uuid.UUID, req *model.PatchLLMFailureRequest) (*model.LLMFailure, error)
	DeleteFailure(ctx context.Context, failureID uuid.UUID) error
}

type llmFailureService struct {
	db          *gorm.DB
	failureRepo repository.LLMFailureRepository
	now         func() time.Time
}

func NewLLMFailureService(db *gorm.DB, failureRepo repository.LLMFailureRepository) LLMFailureService {
	return &llmFailureService{db: db, failureRepo: failureRepo, now: time.Now}
}

func failureNotFound() error {
	return model.NewAppError("LLM_FAILURE_NOT_FOUND", "LLM failure not found.", "failure_id", model.ErrNotFound)
}

// CreateFailure logs a model response that could not be used. The drum type
// comes from the request, else from the response's controls.
func (s *llmFailureService) CreateFailure(ctx context.Context, req *model.PostLLMFailureRequest) (*model.LLMFailure, error) {
	logger := middleware.GetLogger(ctx)

	drumType := req.DrumType
	if drumType == nil || *drumType == "" {
		drumType = nil
		if kind, ok := model.KindFromResponse(req.LLMResponse); ok {
			drumType = &kind
		}
	}

	failure := &model.LLMFailure{
		FailureID:          uuid.New(),
		PromptID:           req.PromptID,
		PromptText:         req.PromptText,
		LLMResponse:        req.LLMResponse,
		ModelVersion:       req.ModelVersion,
		DrumType:           drumType,
		FreeTextPrompt:     req.FreeTextPrompt,
		FreeTextDrumType:   req.FreeTextDrumType,
		FreeTextDifficulty: req.FreeTextDifficulty,
		FreeTextCategory:   req.FreeTextCategory,
		Notes:              req.Notes,
		NotesAudioPath:     req.NotesAudioPath,
		AudioID:            req.AudioID,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.failureRepo.Create(ctx, s.db, failure); err != nil {
		logger.Error("Error creating llm failure", "error", err)
		return nil, model.ErrInternalServer
	}
	logger.Info("LLM failure recorded", "failure_id", failure.FailureID.String())
	return failure, nil
}

func (s *llmFailureService) ListFailures(ctx context.Context, filter model.LLMFailureFilter) ([]*model.LLMFailure, error) {
	failures, err := s.failureRepo.List(ctx, s.db, filter)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return failures, nil
}

func (s *llmFailureService) GetFailure(ctx context.Context, failureID uuid.UUID) (*model.LLMFailure, error) {
	failure, err := s.failureRepo.FindByID(ctx, s.db, failureID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, failureNotFound()
		}
		return nil, model.ErrInternalServer
	}
	return failure, nil
}

func (s *llmFailureService) MarkViewed(ctx context.Context, failureID uuid.UUID, req *model.PatchLLMFailureRequest) (*model.LLMFailure, error) {
	var updated *model.LLMFailure
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.failureRepo.FindByID(ctx, tx, failureID); err != nil {
			return err
		}
		if req.Viewed != nil {
			if err := s.failureRepo.Update(ctx, tx, failureID, map[string]interface{}{"viewed": *req.Viewed}); err != nil {
				return err
			}
		}
		var err error
		updated, err = s.failureRepo.FindByID(ctx, tx, failureID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, failureNotFound()
		}
		middleware.GetLogger(ctx).Error("Transaction failed for MarkViewed", "error", err)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *llmFailureService) DeleteFailure(ctx context.Context, failureID uuid.UUID) error {
	if err := s.failureRepo.Delete(ctx, s.db, failureID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return failureNotFound()
		}
		return model.ErrInternalServer
	}
	return nil
}
