package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockResultService is a mock type for the ResultService type
type MockResultService struct {
	mock.Mock
}

func (_m *MockResultService) resultOf(ret mock.Arguments) (*model.TestResult, error) {
	var r0 *model.TestResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.TestResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockResultService) SubmitScore(ctx context.Context, req *model.SubmitScoreRequest) (*model.TestResult, error) {
	return _m.resultOf(_m.Called(ctx, req))
}

func (_m *MockResultService) ListResults(ctx context.Context, filter model.ResultFilter) ([]*model.TestResult, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*model.TestResult
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.TestResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockResultService) GetResult(ctx context.Context, resultID uuid.UUID) (*model.TestResult, error) {
	return _m.resultOf(_m.Called(ctx, resultID))
}

func (_m *MockResultService) UpdateResult(ctx context.Context, resultID uuid.UUID, req *model.PatchResultRequest) (*model.TestResult, error) {
	return _m.resultOf(_m.Called(ctx, resultID, req))
}

func (_m *MockResultService) DeleteResult(ctx context.Context, resultID uuid.UUID) error {
	ret := _m.Called(ctx, resultID)
	return ret.Error(0)
}

func (_m *MockResultService) ConvertToFailure(ctx context.Context, resultID uuid.UUID) (*model.ConvertToFailureResponse, error) {
	ret := _m.Called(ctx, resultID)
	var r0 *model.ConvertToFailureResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.ConvertToFailureResponse)
	}
	return r0, ret.Error(1)
}

// NewMockResultService creates a new instance of MockResultService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockResultService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResultService {
	m := &MockResultService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
