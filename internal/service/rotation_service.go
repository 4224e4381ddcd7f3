// internal/service/rotation_service.go
package service

import (
	"context"
	"errors"
	"math/rand"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Randomizer is the source of every random choice the scheduler makes.
type Randomizer interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

type defaultRandomizer struct{}

func (defaultRandomizer) IntN(n int) int { return rand.Intn(n) }

// RotationService picks the next prompt a tester should evaluate.
type RotationService interface {
	NextInRotation(ctx context.Context, req model.RotationRequest) (*model.RotationResult, error)
	RandomPrompt(ctx context.Context, excludeID *uuid.UUID) (*model.Prompt, error)
}

type rotationService struct {
	db         *gorm.DB
	promptRepo repository.PromptRepository
	rnd        Randomizer
}

// NewRotationService builds the scheduler. A nil rnd uses math/rand/v2.
func NewRotationService(db *gorm.DB, promptRepo repository.PromptRepository, rnd Randomizer) RotationService {
	if rnd == nil {
		rnd = defaultRandomizer{}
	}
	return &rotationService{
		db:         db,
		promptRepo: promptRepo,
		rnd:        rnd,
	}
}

// NextInRotation walks the (drum type x difficulty) grid from the position
// after the caller's current one and returns a least-used prompt from the
// first non-empty cell. If every cell is empty at the global minimum usage it
// falls back to any least-used prompt, ignoring the grid.
func (s *rotationService) NextInRotation(ctx context.Context, req model.RotationRequest) (*model.RotationResult, error) {
	logger := middleware.GetLogger(ctx)

	drumTypes, err := s.promptRepo.DistinctDrumTypes(ctx, s.db)
	if err != nil {
		logger.Error("Error loading drum types for rotation", "error", err)
		return nil, model.ErrInternalServer
	}
	if len(drumTypes) == 0 {
		return nil, model.ErrNoPromptsAvailable
	}

	minUsed, err := s.promptRepo.MinUsedCount(ctx, s.db)
	if err != nil {
		logger.Error("Error loading minimum used_count for rotation", "error", err)
		return nil, model.ErrInternalServer
	}

	idx, difficulty := s.startPosition(req, drumTypes)
	maxAttempts := len(drumTypes) * model.MaxDifficulty
	for attempt := 0; attempt < maxAttempts; attempt++ {
		drumType := drumTypes[idx]
		cell, err := s.promptRepo.FindCell(ctx, s.db, drumType, difficulty, minUsed, req.ExcludeID)
		if err != nil {
			logger.Error("Error loading rotation cell", "error", err, "drum_type", drumType, "difficulty", difficulty)
			return nil, model.ErrInternalServer
		}
		if len(cell) > 0 {
			prompt := cell[s.rnd.IntN(len(cell))]
			logger.Debug("Rotation cell hit", "drum_type", drumType, "difficulty", difficulty, "attempt", attempt, "candidates", len(cell))
			return newRotationResult(prompt, drumType, difficulty), nil
		}
		idx, difficulty = advance(idx, difficulty, len(drumTypes))
	}

	least, err := s.promptRepo.FindLeastUsed(ctx, s.db, req.ExcludeID)
	if err != nil {
		logger.Error("Error loading least used prompts", "error", err)
		return nil, model.ErrInternalServer
	}
	if len(least) == 0 {
		return nil, model.ErrNoPromptsAvailable
	}
	prompt := least[s.rnd.IntN(len(least))]
	logger.Info("Rotation grid exhausted, using least-used fallback", "prompt_id", prompt.PromptID.String(), "min_used", minUsed)

	drumType := ""
	if prompt.DrumType != nil {
		drumType = *prompt.DrumType
	}
	return newRotationResult(prompt, drumType, prompt.Difficulty), nil
}

// startPosition resolves where the grid walk begins.
func (s *rotationService) startPosition(req model.RotationRequest, drumTypes []string) (int, int) {
	if req.StartFromBeginning {
		return 0, model.MinDifficulty
	}
	if req.CurrentDrumType != nil && *req.CurrentDrumType != "" && req.CurrentDifficulty != nil && *req.CurrentDifficulty != 0 {
		idx := 0
		for i, dt := range drumTypes {
			if dt == *req.CurrentDrumType {
				idx = i
				break
			}
		}
		return advance(idx, *req.CurrentDifficulty, len(drumTypes))
	}
	return s.rnd.IntN(len(drumTypes)), s.rnd.IntN(model.MaxDifficulty) + model.MinDifficulty
}

// advance moves one cell forward: up a difficulty, or to difficulty 1 of the
// next drum type (wrapping) after the last difficulty.
func advance(idx, difficulty, drumTypeCount int) (int, int) {
	if difficulty < model.MaxDifficulty {
		return idx, difficulty + 1
	}
	return (idx + 1) % drumTypeCount, model.MinDifficulty
}

func newRotationResult(prompt *model.Prompt, drumType string, difficulty int) *model.RotationResult {
	id := prompt.PromptID
	return &model.RotationResult{
		Prompt: prompt,
		Position: model.RotationPosition{
			DrumType:   drumType,
			Difficulty: difficulty,
			ExcludeID:  &id,
		},
	}
}

// RandomPrompt returns a uniformly random curated prompt, ignoring usage.
func (s *rotationService) RandomPrompt(ctx context.Context, excludeID *uuid.UUID) (*model.Prompt, error) {
	logger := middleware.GetLogger(ctx)

	count, err := s.promptRepo.CountEligible(ctx, s.db, excludeID)
	if err != nil {
		logger.Error("Error counting eligible prompts", "error", err)
		return nil, model.ErrInternalServer
	}
	if count == 0 {
		return nil, model.ErrNoPromptsAvailable
	}

	prompt, err := s.promptRepo.FindEligibleAt(ctx, s.db, excludeID, s.rnd.IntN(int(count)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// The pool shrank between the count and the fetch.
			return nil, model.ErrNoPromptsAvailable
		}
		logger.Error("Error loading random prompt", "error", err)
		return nil, model.ErrInternalServer
	}
	return prompt, nil
}
