package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRotationService is a mock type for the RotationService type
type MockRotationService struct {
	mock.Mock
}

func (_m *MockRotationService) NextInRotation(ctx context.Context, req model.RotationRequest) (*model.RotationResult, error) {
	ret := _m.Called(ctx, req)
	var r0 *model.RotationResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.RotationResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockRotationService) RandomPrompt(ctx context.Context, excludeID *uuid.UUID) (*model.Prompt, error) {
	ret := _m.Called(ctx, excludeID)
	var r0 *model.Prompt
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.Prompt)
	}
	return r0, ret.Error(1)
}

// NewMockRotationService creates a new instance of MockRotationService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRotationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRotationService {
	m := &MockRotationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
