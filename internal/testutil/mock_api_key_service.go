package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/irfanbayu/keydash/internal/service"
	"github.com/irfanbayu/keydash/internal/store"
)

type MockAPIKeyService struct {
	mock.Mock
}

func (m *MockAPIKeyService) CreateAPIKey(
	ctx context.Context,
	name, value string,
) (*store.APIKey, error) {
	args := m.Called(ctx, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKey), nil
}

func (m *MockAPIKeyService) GetAPIKeyByID(ctx context.Context, id int64) (*store.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKey), nil
}

func (m *MockAPIKeyService) GetAPIKeyByValue(
	ctx context.Context,
	value string,
) (*store.APIKey, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKey), nil
}

func (m *MockAPIKeyService) UpdateAPIKey(
	ctx context.Context,
	id int64,
	update store.APIKeyUpdate,
) (*store.APIKey, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKey), nil
}

func (m *MockAPIKeyService) DeleteAPIKey(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPIKeyService) IncrementUsage(ctx context.Context, id int64) (*store.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.APIKey), nil
}

func (m *MockAPIKeyService) ListAPIKeys(ctx context.Context) ([]*store.APIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.APIKey), nil
}

func (m *MockAPIKeyService) ValidateAPIKey(
	ctx context.Context,
	candidate string,
) (*service.ValidationResult, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ValidationResult), args.Error(1)
}
