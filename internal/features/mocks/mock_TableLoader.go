// Package mocks provides test doubles for the features package.
package mocks

import (
	"context"

	features "github.com/sells-group/gbr-features/internal/features"
	mock "github.com/stretchr/testify/mock"
)

// MockTableLoader is a mock type for the TableLoader interface.
type MockTableLoader struct {
	mock.Mock
}

// LoadAll provides a mock function with given fields: ctx
func (_m *MockTableLoader) LoadAll(ctx context.Context) (features.Table, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for LoadAll")
	}

	var r0 features.Table
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (features.Table, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) features.Table); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(features.Table)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockTableLoader creates a new instance of MockTableLoader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTableLoader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTableLoader {
	m := &MockTableLoader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
