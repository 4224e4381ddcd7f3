package repository

import (
	"context"
	"testing"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMFailureRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLLMFailureRepository()
	ctx := context.Background()

	a := &model.LLMFailure{PromptText: "a", LLMResponse: "{}", DrumType: strPtr("Kick"), ModelVersion: strPtr("v1")}
	b := &model.LLMFailure{PromptText: "b", LLMResponse: "{}", FreeTextDrumType: strPtr("Kick")}
	c := &model.LLMFailure{PromptText: "c", LLMResponse: "{}", DrumType: strPtr("Snare")}
	for _, f := range []*model.LLMFailure{a, b, c} {
		require.NoError(t, repo.Create(ctx, db, f))
		assert.NotEqual(t, uuid.Nil, f.FailureID)
	}

	got, err := repo.List(ctx, db, model.LLMFailureFilter{DrumType: "Kick", Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 2, "drum type matches the free-text drum type too")

	got, err = repo.List(ctx, db, model.LLMFailureFilter{ModelVersion: "v1", Limit: 100})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.FailureID, got[0].FailureID)

	require.NoError(t, repo.Update(ctx, db, c.FailureID, map[string]interface{}{"viewed": true}))
	got, err = repo.List(ctx, db, model.LLMFailureFilter{Viewed: boolPtr(true), Limit: 100})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.FailureID, got[0].FailureID)

	got, err = repo.List(ctx, db, model.LLMFailureFilter{Viewed: boolPtr(false), Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	found, err := repo.FindByID(ctx, db, a.FailureID)
	require.NoError(t, err)
	assert.Equal(t, "a", found.PromptText)

	require.NoError(t, repo.Delete(ctx, db, a.FailureID))
	_, err = repo.FindByID(ctx, db, a.FailureID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, db, a.FailureID, map[string]interface{}{"viewed": true}), model.ErrNotFound)

	n, err := repo.DeleteAll(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
