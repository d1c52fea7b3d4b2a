package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/irfanbayu/keydash/internal/store"
)

const maxKeyGenerationAttempts = 3

type APIKeyServicer interface {
	CreateAPIKey(ctx context.Context, name, value string) (*store.APIKey, error)
	GetAPIKeyByID(ctx context.Context, id int64) (*store.APIKey, error)
	GetAPIKeyByValue(ctx context.Context, value string) (*store.APIKey, error)
	UpdateAPIKey(ctx context.Context, id int64, update store.APIKeyUpdate) (*store.APIKey, error)
	DeleteAPIKey(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, id int64) (*store.APIKey, error)
	ListAPIKeys(ctx context.Context) ([]*store.APIKey, error)
	ValidateAPIKey(ctx context.Context, candidate string) (*ValidationResult, error)
}

type APIKeyService struct {
	store        store.APIKeyStore
	keyGenerator KeyGenerator
}

func NewAPIKeyService(store store.APIKeyStore, keyGenerator KeyGenerator) *APIKeyService {
	return &APIKeyService{store, keyGenerator}
}

// CreateAPIKey stores a new key under the given name. A blank value means
// "generate one"; generated values that collide are regenerated up to
// maxKeyGenerationAttempts times, while a caller-supplied collision is
// surfaced immediately.
func (s *APIKeyService) CreateAPIKey(
	ctx context.Context,
	name, value string,
) (*store.APIKey, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewInvalidInputError("api key name must not be blank")
	}

	if strings.TrimSpace(value) != "" {
		ak, err := s.store.CreateAPIKey(ctx, name, value)
		if err != nil {
			if errors.Is(err, store.ErrValueExists) {
				return nil, NewConflictError("api key value is already in use")
			}
			return nil, fmt.Errorf("creating api key %q: %w", name, err)
		}
		return ak, nil
	}

	for range maxKeyGenerationAttempts {
		ak, err := s.store.CreateAPIKey(ctx, name, s.keyGenerator.GenerateKey())
		if err == nil {
			return ak, nil
		}
		if !errors.Is(err, store.ErrValueExists) {
			return nil, fmt.Errorf("creating api key %q: %w", name, err)
		}
	}
	return nil, NewKeyAllocationError(maxKeyGenerationAttempts)
}

func (s *APIKeyService) GetAPIKeyByID(ctx context.Context, id int64) (*store.APIKey, error) {
	ak, err := s.store.ReadAPIKeyByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError("api key")
		}
		return nil, fmt.Errorf("getting api key %d: %w", id, err)
	}
	return ak, nil
}

func (s *APIKeyService) GetAPIKeyByValue(ctx context.Context, value string) (*store.APIKey, error) {
	ak, err := s.store.ReadAPIKeyByValue(ctx, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError("api key")
		}
		return nil, fmt.Errorf("getting api key by value: %w", err)
	}
	return ak, nil
}

func (s *APIKeyService) UpdateAPIKey(
	ctx context.Context,
	id int64,
	update store.APIKeyUpdate,
) (*store.APIKey, error) {
	ak, err := s.store.UpdateAPIKey(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError("api key")
		}
		if errors.Is(err, store.ErrValueExists) {
			return nil, NewConflictError("api key value is already in use")
		}
		return nil, fmt.Errorf("updating api key %d: %w", id, err)
	}
	return ak, nil
}

func (s *APIKeyService) DeleteAPIKey(ctx context.Context, id int64) error {
	if err := s.store.DeleteAPIKey(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("api key")
		}
		return fmt.Errorf("deleting api key %d: %w", id, err)
	}
	return nil
}

func (s *APIKeyService) IncrementUsage(ctx context.Context, id int64) (*store.APIKey, error) {
	ak, err := s.store.IncrementAPIKeyUsage(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError("api key")
		}
		return nil, fmt.Errorf("incrementing api key %d usage: %w", id, err)
	}
	return ak, nil
}

func (s *APIKeyService) ListAPIKeys(ctx context.Context) ([]*store.APIKey, error) {
	keys, err := s.store.ListAPIKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing api keys: %w", err)
	}
	return keys, nil
}
