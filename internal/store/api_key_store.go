package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no api key matches the given id or value.
	ErrNotFound = errors.New("api key not found")
	// ErrValueExists is returned when an insert or update would violate the
	// uniqueness of the value column.
	ErrValueExists = errors.New("api key value already exists")
)

type APIKey struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Name      string     `json:"name"`
	Value     string     `json:"value"`
	Usage     int64      `json:"usage"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// APIKeyUpdate holds the mutable fields of an api key. Nil fields are left
// untouched by UpdateAPIKey.
type APIKeyUpdate struct {
	Name  *string
	Value *string
	Usage *int64
}

type APIKeyStore interface {
	CreateAPIKey(ctx context.Context, name, value string) (*APIKey, error)
	ReadAPIKeyByID(ctx context.Context, id int64) (*APIKey, error)
	ReadAPIKeyByValue(ctx context.Context, value string) (*APIKey, error)
	UpdateAPIKey(ctx context.Context, id int64, update APIKeyUpdate) (*APIKey, error)
	IncrementAPIKeyUsage(ctx context.Context, id int64) (*APIKey, error)
	DeleteAPIKey(ctx context.Context, id int64) error
	ListAPIKeys(ctx context.Context) ([]*APIKey, error)
}
