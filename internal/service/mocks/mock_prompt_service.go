package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPromptService is a mock type for the PromptService type
type MockPromptService struct {
	mock.Mock
}

func (_m *MockPromptService) promptResult(ret mock.Arguments) (*model.Prompt, error) {
	var r0 *model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptService) ListPrompts(ctx context.Context, filter model.PromptFilter) ([]*model.Prompt, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.([]*model.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptService) GetPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error) {
	return _m.promptResult(_m.Called(ctx, promptID))
}

func (_m *MockPromptService) CreatePrompt(ctx context.Context, req *model.PostPromptRequest) (*model.Prompt, error) {
	return _m.promptResult(_m.Called(ctx, req))
}

func (_m *MockPromptService) UpdatePrompt(ctx context.Context, promptID uuid.UUID, req *model.PutPromptRequest) (*model.Prompt, error) {
	return _m.promptResult(_m.Called(ctx, promptID, req))
}

func (_m *MockPromptService) DeletePrompt(ctx context.Context, promptID uuid.UUID) error {
	ret := _m.Called(ctx, promptID)
	return ret.Error(0)
}

func (_m *MockPromptService) DispatchPrompt(ctx context.Context, promptID uuid.UUID) (*model.Prompt, error) {
	return _m.promptResult(_m.Called(ctx, promptID))
}

func (_m *MockPromptService) ImportPrompts(ctx context.Context, req *model.ImportPromptsRequest) (*model.ImportPromptsResponse, error) {
	ret := _m.Called(ctx, req)
	var r0 *model.ImportPromptsResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.ImportPromptsResponse)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptService) SeedPrompts(ctx context.Context, texts []string) (*model.SeedSummary, error) {
	ret := _m.Called(ctx, texts)
	var r0 *model.SeedSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.SeedSummary)
	}
	return r0, ret.Error(1)
}

// NewMockPromptService creates a new instance of MockPromptService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPromptService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPromptService {
	m := &MockPromptService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
