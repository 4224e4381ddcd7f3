package mocks

import (
	"context"

	"drumgen_testbench/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockAnalyticsService is a mock type for the AnalyticsService type
type MockAnalyticsService struct {
	mock.Mock
}

func (_m *MockAnalyticsService) Dashboard(ctx context.Context, drumType, modelVersion string) (*model.DashboardSummary, error) {
	ret := _m.Called(ctx, drumType, modelVersion)
	var r0 *model.DashboardSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.DashboardSummary)
	}
	return r0, ret.Error(1)
}

func (_m *MockAnalyticsService) Export(ctx context.Context) (*model.ExportDocument, error) {
	ret := _m.Called(ctx)
	var r0 *model.ExportDocument
	if v := ret.Get(0); v != nil {
		r0 = v.(*model.ExportDocument)
	}
	return r0, ret.Error(1)
}

func (_m *MockAnalyticsService) CollectNotes(ctx context.Context) ([]model.NoteRecord, error) {
	ret := _m.Called(ctx)
	var r0 []model.NoteRecord
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.NoteRecord)
	}
	return r0, ret.Error(1)
}

// NewMockAnalyticsService creates a new instance of MockAnalyticsService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAnalyticsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAnalyticsService {
	m := &MockAnalyticsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
