package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// LLMFailureRepository is a mock type for the LLMFailureRepository type
type LLMFailureRepository struct {
	mock.Mock
}

func (_m *LLMFailureRepository) Create(ctx context.Context, db *gorm.DB, failure *model.LLMFailure) error {
	ret := _m.Called(ctx, db, failure)
	return ret.Error(0)
}

func (_m *LLMFailureRepository) FindByID(ctx context.Context, db *gorm.DB, failureID uuid.UUID) (*model.LLMFailure, error) {
	ret := _m.Called(ctx, db, failureID)
	var r0 *model.LLMFailure
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.LLMFailure)
	}
	return r0, ret.Error(1)
}

func (_m *LLMFailureRepository) List(ctx context.Context, db *gorm.DB, filter model.LLMFailureFilter) ([]*model.LLMFailure, error) {
	ret := _m.Called(ctx, db, filter)
	var r0 []*model.LLMFailure
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.LLMFailure)
	}
	return r0, ret.Error(1)
}

func (_m *LLMFailureRepository) Update(ctx context.Context, db *gorm.DB, failureID uuid.UUID, updates map[string]interface{}) error {
	ret := _m.Called(ctx, db, failureID, updates)
	return ret.Error(0)
}

func (_m *LLMFailureRepository) Delete(ctx context.Context, db *gorm.DB, failureID uuid.UUID) error {
	ret := _m.Called(ctx, db, failureID)
	return ret.Error(0)
}

func (_m *LLMFailureRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	ret := _m.Called(ctx, db)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewLLMFailureRepository creates a new instance of LLMFailureRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLLMFailureRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *LLMFailureRepository {
	m := &LLMFailureRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
