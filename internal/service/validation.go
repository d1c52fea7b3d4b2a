package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/irfanbayu/keydash/internal/store"
)

// Client-facing validation messages. Rejected candidates never learn whether
// the key was unknown or the store failed; the distinction lives in the
// returned error and the logs.
const (
	MessageMissingAPIKey     = "API key is required"
	MessageInvalidAPIKey     = "Invalid API Key"
	MessageValidAPIKey       = "Valid API key"
	MessageValidationFailure = "Error validating API key"
)

type ValidationResult struct {
	Valid   bool          `json:"isValid"`
	Message string        `json:"message"`
	Key     *ValidatedKey `json:"apiKey,omitempty"`
}

// ValidatedKey carries the metadata returned on a successful validation.
// Usage reflects the post-increment value.
type ValidatedKey struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Usage int64  `json:"usage"`
}

// ValidateAPIKey checks whether candidate corresponds to a live key and, on
// success, counts one use against it. The result is always non-nil; a non-nil
// error accompanies an invalid result only for store failures, so callers can
// report those as transient instead of as a rejected key.
func (s *APIKeyService) ValidateAPIKey(
	ctx context.Context,
	candidate string,
) (*ValidationResult, error) {
	if candidate == "" {
		return &ValidationResult{Message: MessageMissingAPIKey}, nil
	}

	ak, err := s.store.ReadAPIKeyByValue(ctx, candidate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ValidationResult{Message: MessageInvalidAPIKey}, nil
		}
		return &ValidationResult{Message: MessageValidationFailure},
			fmt.Errorf("validating api key: %w", err)
	}

	ak, err = s.store.IncrementAPIKeyUsage(ctx, ak.ID)
	if err != nil {
		// the key can disappear between lookup and increment
		if errors.Is(err, store.ErrNotFound) {
			return &ValidationResult{Message: MessageInvalidAPIKey}, nil
		}
		return &ValidationResult{Message: MessageValidationFailure},
			fmt.Errorf("counting api key use: %w", err)
	}

	return &ValidationResult{
		Valid:   true,
		Message: MessageValidAPIKey,
		Key: &ValidatedKey{
			ID:    ak.ID,
			Name:  ak.Name,
			Usage: ak.Usage,
		},
	}, nil
}
