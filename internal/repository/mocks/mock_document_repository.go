package mocks

import (
	"context"

	"corpusapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Exists(ctx context.Context, fingerprint string) (bool, error) {
	args := m.Called(ctx, fingerprint)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Insert(ctx context.Context, fingerprint, content string) error {
	args := m.Called(ctx, fingerprint, content)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetContent(ctx context.Context, fingerprint string) (string, error) {
	args := m.Called(ctx, fingerprint)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) ListAll(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}
