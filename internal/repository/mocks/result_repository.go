package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ResultRepository is a mock type for the ResultRepository type
type ResultRepository struct {
	mock.Mock
}

func (_m *ResultRepository) Create(ctx context.Context, db *gorm.DB, result *model.TestResult) error {
	ret := _m.Called(ctx, db, result)
	return ret.Error(0)
}

func (_m *ResultRepository) FindByID(ctx context.Context, db *gorm.DB, resultID uuid.UUID) (*model.TestResult, error) {
	ret := _m.Called(ctx, db, resultID)
	var r0 *model.TestResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.TestResult)
	}
	return r0, ret.Error(1)
}

func (_m *ResultRepository) List(ctx context.Context, db *gorm.DB, filter model.ResultFilter) ([]*model.TestResult, error) {
	ret := _m.Called(ctx, db, filter)
	var r0 []*model.TestResult
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.TestResult)
	}
	return r0, ret.Error(1)
}

func (_m *ResultRepository) Update(ctx context.Context, db *gorm.DB, resultID uuid.UUID, updates map[string]interface{}) error {
	ret := _m.Called(ctx, db, resultID, updates)
	return ret.Error(0)
}

func (_m *ResultRepository) Delete(ctx context.Context, db *gorm.DB, resultID uuid.UUID) error {
	ret := _m.Called(ctx, db, resultID)
	return ret.Error(0)
}

func (_m *ResultRepository) DeleteByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, promptID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ResultRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	ret := _m.Called(ctx, db)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ResultRepository) CountByPrompt(ctx context.Context, db *gorm.DB, promptID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, promptID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ResultRepository) FindRows(ctx context.Context, db *gorm.DB, drumType, modelVersion string) ([]model.ResultRow, error) {
	ret := _m.Called(ctx, db, drumType, modelVersion)
	var r0 []model.ResultRow
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.ResultRow)
	}
	return r0, ret.Error(1)
}

// NewResultRepository creates a new instance of ResultRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewResultRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ResultRepository {
	m := &ResultRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
