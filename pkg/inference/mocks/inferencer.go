package mocks

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/mock"

	"plotlines/pkg/inference"
)

// MockInferencer is a mock type for the Inferencer type.
type MockInferencer struct {
	mock.Mock
}

// Infer provides a mock function with given fields: ctx, params, system, user
func (_m *MockInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	ret := _m.Called(ctx, params, system, user)
	return ret.String(0), ret.Error(1)
}

// Verify reports false with inference.ErrEmptyCompletion for an empty result,
// mirroring the real providers.
func (_m *MockInferencer) Verify(ctx context.Context, result string) (bool, error) {
	if result == "" {
		return false, inference.ErrEmptyCompletion
	}
	return true, nil
}

func (_m *MockInferencer) Name() string { return "mock" }

// NewMockInferencer creates a new instance of MockInferencer. It registers a
// cleanup function to assert the mock's expectations.
func NewMockInferencer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInferencer {
	m := &MockInferencer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ inference.Inferencer = (*MockInferencer)(nil)
