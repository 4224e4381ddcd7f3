package service

import (
	"context"
	"testing"

	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_llmFailureService_CreateFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *model.PostLLMFailureRequest
		wantDrum *string
	}{
		{
			name:     "request drum type wins",
			req:      &model.PostLLMFailureRequest{PromptText: "p", LLMResponse: `{"controls":{"Kind":"Kick"}}`, DrumType: strPtr("Snare")},
			wantDrum: strPtr("Snare"),
		},
		{
			name:     "kind from controls",
			req:      &model.PostLLMFailureRequest{PromptText: "p", LLMResponse: `{"controls":{"KIND":"Tom"}}`},
			wantDrum: strPtr("Tom"),
		},
		{
			name: "unparseable response",
			req:  &model.PostLLMFailureRequest{PromptText: "p", LLMResponse: "timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			svc := NewLLMFailureService(db, repository.NewGormLLMFailureRepository())

			got, err := svc.CreateFailure(ctx, tt.req)
			require.NoError(t, err)
			stored, err := svc.GetFailure(ctx, got.FailureID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDrum, stored.DrumType)
			assert.False(t, stored.Viewed)
		})
	}
}

func Test_llmFailureService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewLLMFailureService(db, repository.NewGormLLMFailureRepository())

	a, err := svc.CreateFailure(ctx, &model.PostLLMFailureRequest{PromptText: "a", LLMResponse: "x", DrumType: strPtr("Kick"), ModelVersion: strPtr("v1")})
	require.NoError(t, err)
	_, err = svc.CreateFailure(ctx, &model.PostLLMFailureRequest{PromptText: "b", LLMResponse: "y", FreeTextDrumType: strPtr("Kick")})
	require.NoError(t, err)
	_, err = svc.CreateFailure(ctx, &model.PostLLMFailureRequest{PromptText: "c", LLMResponse: "z", DrumType: strPtr("Snare")})
	require.NoError(t, err)

	kicks, err := svc.ListFailures(ctx, model.LLMFailureFilter{DrumType: "Kick"})
	require.NoError(t, err)
	assert.Len(t, kicks, 2)

	viewed, err := svc.MarkViewed(ctx, a.FailureID, &model.PatchLLMFailureRequest{Viewed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, viewed.Viewed)

	unviewed, err := svc.ListFailures(ctx, model.LLMFailureFilter{Viewed: boolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, unviewed, 2)

	require.NoError(t, svc.DeleteFailure(ctx, a.FailureID))
	_, err = svc.GetFailure(ctx, a.FailureID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteFailure(ctx, a.FailureID), model.ErrNotFound)
	_, err = svc.MarkViewed(ctx, uuid.New(), &model.PatchLLMFailureRequest{Viewed: boolPtr(true)})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
