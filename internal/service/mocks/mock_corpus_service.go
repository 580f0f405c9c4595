package mocks

import (
	"context"

	"corpusapi/internal/model"
	"corpusapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCorpusService struct {
	mock.Mock
}

func (m *MockCorpusService) Exists(ctx context.Context, fingerprint string) (*service.ExistsResult, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExistsResult), args.Error(1)
}

func (m *MockCorpusService) Upload(ctx context.Context, fingerprint, content string) (*service.UploadResult, error) {
	args := m.Called(ctx, fingerprint, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockCorpusService) Download(ctx context.Context, fingerprint string) (*service.DownloadResult, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockCorpusService) Compare(ctx context.Context, fingerprint1, fingerprint2 string) (*model.ComparisonResult, error) {
	args := m.Called(ctx, fingerprint1, fingerprint2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ComparisonResult), args.Error(1)
}

func (m *MockCorpusService) List(ctx context.Context) (*service.ListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}
