package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"
	"drumgen_testbench/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRotationService_VisitsEveryCellOnce(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	for _, drum := range []string{"Snare", "Kick"} {
		for d := model.MinDifficulty; d <= model.MaxDifficulty; d++ {
			insertPrompt(t, db, fmt.Sprintf("%s %d", drum, d), drum, d, 0, false)
		}
	}
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	res, err := svc.NextInRotation(ctx, model.RotationRequest{StartFromBeginning: true})
	require.NoError(t, err)
	assert.Equal(t, "Kick", res.Position.DrumType, "sorted drum types start with Kick")
	assert.Equal(t, 1, res.Position.Difficulty)

	seen := map[uuid.UUID]bool{res.Prompt.PromptID: true}
	cells := map[string]bool{fmt.Sprintf("%s/%d", res.Position.DrumType, res.Position.Difficulty): true}
	for i := 1; i < 20; i++ {
		pos := res.Position
		res, err = svc.NextInRotation(ctx, model.RotationRequest{
			CurrentDrumType:   &pos.DrumType,
			CurrentDifficulty: &pos.Difficulty,
			ExcludeID:         pos.ExcludeID,
		})
		require.NoError(t, err)
		require.False(t, seen[res.Prompt.PromptID], "prompt repeated at step %d", i)
		seen[res.Prompt.PromptID] = true
		cells[fmt.Sprintf("%s/%d", res.Position.DrumType, res.Position.Difficulty)] = true
	}
	assert.Len(t, seen, 20)
	assert.Len(t, cells, 20)
}

func TestRotationService_WrapsToNextDrumType(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	kick := insertPrompt(t, db, "kick 1", "Kick", 1, 0, false)
	insertPrompt(t, db, "snare 1", "Snare", 1, 0, false)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	res, err := svc.NextInRotation(ctx, model.RotationRequest{
		CurrentDrumType:   strPtr("Snare"),
		CurrentDifficulty: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, kick.PromptID, res.Prompt.PromptID)
	assert.Equal(t, model.RotationPosition{DrumType: "Kick", Difficulty: 1, ExcludeID: &kick.PromptID}, res.Position)
}

func TestRotationService_PrefersLeastUsedInCell(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	fresh := insertPrompt(t, db, "tight snare", "Snare", 5, 0, false)
	insertPrompt(t, db, "loose snare", "Snare", 5, 3, false)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), &scriptedRandomizer{values: []int{1, 1, 1}})

	for i := 0; i < 5; i++ {
		res, err := svc.NextInRotation(ctx, model.RotationRequest{
			CurrentDrumType:   strPtr("Snare"),
			CurrentDifficulty: intPtr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, fresh.PromptID, res.Prompt.PromptID)
		assert.Equal(t, 5, res.Position.Difficulty)
	}
}

func TestRotationService_ExclusionFallsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	only := insertPrompt(t, db, "clap at min", "Clap", 3, 0, false)
	other := insertPrompt(t, db, "clap used", "Clap", 7, 2, false)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	res, err := svc.NextInRotation(ctx, model.RotationRequest{ExcludeID: &only.PromptID})
	require.NoError(t, err)
	assert.Equal(t, other.PromptID, res.Prompt.PromptID)
	assert.Equal(t, "Clap", res.Position.DrumType)
	assert.Equal(t, 7, res.Position.Difficulty)
}

func TestRotationService_FallbackReachesUntypedPrompts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	typed := insertPrompt(t, db, "typed", "Tom", 2, 0, false)
	untyped := insertPrompt(t, db, "untyped", "", 4, 1, false)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	res, err := svc.NextInRotation(ctx, model.RotationRequest{ExcludeID: &typed.PromptID})
	require.NoError(t, err)
	assert.Equal(t, untyped.PromptID, res.Prompt.PromptID)
	assert.Equal(t, "", res.Position.DrumType)
}

func TestRotationService_IgnoresUserGenerated(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	insertPrompt(t, db, "free text", "Kick", 1, 0, true)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	_, err := svc.NextInRotation(ctx, model.RotationRequest{StartFromBeginning: true})
	assert.ErrorIs(t, err, model.ErrNoPromptsAvailable)
	_, err = svc.RandomPrompt(ctx, nil)
	assert.ErrorIs(t, err, model.ErrNoPromptsAvailable)
}

func TestRotationService_EmptyPool(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), nil)

	_, err := svc.NextInRotation(ctx, model.RotationRequest{})
	assert.ErrorIs(t, err, model.ErrNoPromptsAvailable)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.RandomPrompt(ctx, nil)
	assert.ErrorIs(t, err, model.ErrNoPromptsAvailable)
}

func TestRotationService_RandomStartUsesRandomizer(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	insertPrompt(t, db, "hat 3", "Hat", 3, 0, false)
	target := insertPrompt(t, db, "ride 8", "Ride", 8, 0, false)
	// drum index 1 (Ride), difficulty index 7 (difficulty 8), then the in-cell pick.
	svc := NewRotationService(db, repository.NewGormPromptRepository(), &scriptedRandomizer{values: []int{1, 7}})

	res, err := svc.NextInRotation(ctx, model.RotationRequest{})
	require.NoError(t, err)
	assert.Equal(t, target.PromptID, res.Prompt.PromptID)
}

func TestRotationService_RandomPrompt(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	a := insertPrompt(t, db, "a", "Kick", 1, 9, false)
	b := insertPrompt(t, db, "b", "Kick", 2, 0, false)
	svc := NewRotationService(db, repository.NewGormPromptRepository(), firstRandomizer{})

	for i := 0; i < 3; i++ {
		got, err := svc.RandomPrompt(ctx, &a.PromptID)
		require.NoError(t, err)
		assert.Equal(t, b.PromptID, got.PromptID)
	}

	_, err := svc.RandomPrompt(ctx, nil)
	require.NoError(t, err)
}

func TestRotationService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	dbErr := errors.New("connection reset")

	tests := []struct {
		name      string
		setupMock func(repo *mocks.PromptRepository)
		call      func(svc RotationService) error
	}{
		{
			name: "drum types",
			setupMock: func(repo *mocks.PromptRepository) {
				repo.On("DistinctDrumTypes", mock.Anything, mock.Anything).Return(nil, dbErr).Once()
			},
			call: func(svc RotationService) error {
				_, err := svc.NextInRotation(ctx, model.RotationRequest{})
				return err
			},
		},
		{
			name: "min used",
			setupMock: func(repo *mocks.PromptRepository) {
				repo.On("DistinctDrumTypes", mock.Anything, mock.Anything).Return([]string{"Kick"}, nil).Once()
				repo.On("MinUsedCount", mock.Anything, mock.Anything).Return(0, dbErr).Once()
			},
			call: func(svc RotationService) error {
				_, err := svc.NextInRotation(ctx, model.RotationRequest{})
				return err
			},
		},
		{
			name: "cell lookup",
			setupMock: func(repo *mocks.PromptRepository) {
				repo.On("DistinctDrumTypes", mock.Anything, mock.Anything).Return([]string{"Kick"}, nil).Once()
				repo.On("MinUsedCount", mock.Anything, mock.Anything).Return(0, nil).Once()
				repo.On("FindCell", mock.Anything, mock.Anything, "Kick", 1, 0, (*uuid.UUID)(nil)).Return(nil, dbErr).Once()
			},
			call: func(svc RotationService) error {
				_, err := svc.NextInRotation(ctx, model.RotationRequest{StartFromBeginning: true})
				return err
			},
		},
		{
			name: "random count",
			setupMock: func(repo *mocks.PromptRepository) {
				repo.On("CountEligible", mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(int64(0), dbErr).Once()
			},
			call: func(svc RotationService) error {
				_, err := svc.RandomPrompt(ctx, nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewPromptRepository(t)
			tt.setupMock(repo)
			svc := NewRotationService(db, repo, firstRandomizer{})
			assert.ErrorIs(t, tt.call(svc), model.ErrInternalServer)
		})
	}
}
