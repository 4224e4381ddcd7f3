package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// PromptRepository is a mock type for the PromptRepository type
type PromptRepository struct {
	mock.Mock
}

func (_m *PromptRepository) Create(ctx context.Context, db *gorm.DB, prompt *model.Prompt) error {
	ret := _m.Called(ctx, db, prompt)
	return ret.Error(0)
}

func (_m *PromptRepository) CreateBatch(ctx context.Context, db *gorm.DB, prompts []*model.Prompt) error {
	ret := _m.Called(ctx, db, prompts)
	return ret.Error(0)
}

func (_m *PromptRepository) FindByID(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (*model.Prompt, error) {
	ret := _m.Called(ctx, db, promptID)
	var r0 *model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) List(ctx context.Context, db *gorm.DB, filter model.PromptFilter) ([]*model.Prompt, error) {
	ret := _m.Called(ctx, db, filter)
	var r0 []*model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) Update(ctx context.Context, db *gorm.DB, promptID uuid.UUID, updates map[string]interface{}) error {
	ret := _m.Called(ctx, db, promptID, updates)
	return ret.Error(0)
}

func (_m *PromptRepository) Delete(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error {
	ret := _m.Called(ctx, db, promptID)
	return ret.Error(0)
}

func (_m *PromptRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	ret := _m.Called(ctx, db)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *PromptRepository) IncrementUsedCount(ctx context.Context, db *gorm.DB, promptID uuid.UUID) error {
	ret := _m.Called(ctx, db, promptID)
	return ret.Error(0)
}

func (_m *PromptRepository) TextExists(ctx context.Context, db *gorm.DB, text string) (bool, error) {
	ret := _m.Called(ctx, db, text)
	return ret.Bool(0), ret.Error(1)
}

func (_m *PromptRepository) LowerTexts(ctx context.Context, db *gorm.DB) (map[string]struct{}, error) {
	ret := _m.Called(ctx, db)
	var r0 map[string]struct{}
	if v := ret.Get(0); v != nil {
		r0 = v.(map[string]struct{})
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) DistinctDrumTypes(ctx context.Context, db *gorm.DB) ([]string, error) {
	ret := _m.Called(ctx, db)
	var r0 []string
	if v := ret.Get(0); v != nil {
		r0 = v.([]string)
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) MinUsedCount(ctx context.Context, db *gorm.DB) (int, error) {
	ret := _m.Called(ctx, db)
	return ret.Int(0), ret.Error(1)
}

func (_m *PromptRepository) FindCell(ctx context.Context, db *gorm.DB, drumType string, difficulty, usedCount int, excludeID *uuid.UUID) ([]*model.Prompt, error) {
	ret := _m.Called(ctx, db, drumType, difficulty, usedCount, excludeID)
	var r0 []*model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) FindLeastUsed(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) ([]*model.Prompt, error) {
	ret := _m.Called(ctx, db, excludeID)
	var r0 []*model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *PromptRepository) CountEligible(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, excludeID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *PromptRepository) FindEligibleAt(ctx context.Context, db *gorm.DB, excludeID *uuid.UUID, offset int) (*model.Prompt, error) {
	ret := _m.Called(ctx, db, excludeID, offset)
	var r0 *model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.Prompt)
	}
	return r0, ret.Error(1)
}

// NewPromptRepository creates a new instance of PromptRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPromptRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PromptRepository {
	m := &PromptRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
