package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLLMFailureService is a mock type for the LLMFailureService type
type MockLLMFailureService struct {
	mock.Mock
}

func (_m *MockLLMFailureService) failureOf(ret mock.Arguments) (*model.LLMFailure, error) {
	var r0 *model.LLMFailure
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.LLMFailure)
	}
	return r0, ret.Error(1)
}

func (_m *MockLLMFailureService) CreateFailure(ctx context.Context, req *model.PostLLMFailureRequest) (*model.LLMFailure, error) {
	return _m.failureOf(_m.Called(ctx, req))
}

func (_m *MockLLMFailureService) ListFailures(ctx context.Context, filter model.LLMFailureFilter) ([]*model.LLMFailure, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*model.LLMFailure
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.LLMFailure)
	}
	return r0, ret.Error(1)
}

func (_m *MockLLMFailureService) GetFailure(ctx context.Context, failureID uuid.UUID) (*model.LLMFailure, error) {
	return _m.failureOf(_m.Called(ctx, failureID))
}

func (_m *MockLLMFailureService) MarkViewed(ctx context.Context, failureID uuid.UUID, req *model.PatchLLMFailureRequest) (*model.LLMFailure, error) {
	return _m.failureOf(_m.Called(ctx, failureID, req))
}

func (_m *MockLLMFailureService) DeleteFailure(ctx context.Context, failureID uuid.UUID) error {
	ret := _m.Called(ctx, failureID)
	return ret.Error(0)
}

// NewMockLLMFailureService creates a new instance of MockLLMFailureService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLLMFailureService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLLMFailureService {
	m := &MockLLMFailureService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
