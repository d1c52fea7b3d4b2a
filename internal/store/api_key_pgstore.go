package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolationCode = "23505"

// APIKeyPostgresStore implements APIKeyStore on top of a pgx connection pool.
// The original deployment of this system kept its api_keys table in Postgres
// (Supabase), so it stays a first-class backend next to SQLite.
type APIKeyPostgresStore struct {
	pool *pgxpool.Pool
}

func NewAPIKeyPostgresStore(pool *pgxpool.Pool) *APIKeyPostgresStore {
	return &APIKeyPostgresStore{pool}
}

func (store *APIKeyPostgresStore) CreateAPIKey(
	ctx context.Context,
	name, value string,
) (*APIKey, error) {
	key := new(APIKey)
	query := `insert into api_keys (name, value) values ($1, $2) returning *`
	err := pgxscan.Get(ctx, store.pool, key, query, name, value)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, fmt.Errorf("create api key %q: %w", name, ErrValueExists)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeyPostgresStore) ReadAPIKeyByID(ctx context.Context, id int64) (*APIKey, error) {
	key := new(APIKey)
	query := `select * from api_keys where id = $1`
	err := pgxscan.Get(ctx, store.pool, key, query, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("read api key %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeyPostgresStore) ReadAPIKeyByValue(
	ctx context.Context,
	value string,
) (*APIKey, error) {
	key := new(APIKey)
	query := `select * from api_keys where value = $1`
	err := pgxscan.Get(ctx, store.pool, key, query, value)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("read api key by value: %w", ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeyPostgresStore) UpdateAPIKey(
	ctx context.Context,
	id int64,
	update APIKeyUpdate,
) (*APIKey, error) {
	key := new(APIKey)
	query := `
		update api_keys set
			name = coalesce($2, name),
			value = coalesce($3, value),
			usage = coalesce($4, usage),
			updated_at = now()
		where id = $1
		returning *`
	err := pgxscan.Get(ctx, store.pool, key, query, id, update.Name, update.Value, update.Usage)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("update api key %d: %w", id, ErrNotFound)
		}
		if isPgUniqueViolation(err) {
			return nil, fmt.Errorf("update api key %d: %w", id, ErrValueExists)
		}
		return nil, err
	}
	return key, nil
}

// IncrementAPIKeyUsage bumps usage by one in a single statement so that
// concurrent increments never lose updates.
func (store *APIKeyPostgresStore) IncrementAPIKeyUsage(
	ctx context.Context,
	id int64,
) (*APIKey, error) {
	key := new(APIKey)
	query := `
		update api_keys
		set usage = usage + 1, updated_at = now()
		where id = $1
		returning *`
	err := pgxscan.Get(ctx, store.pool, key, query, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("increment api key %d usage: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeyPostgresStore) DeleteAPIKey(ctx context.Context, id int64) error {
	query := `delete from api_keys where id = $1`
	tag, err := store.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete api key %d: %w", id, ErrNotFound)
	}
	return nil
}

func (store *APIKeyPostgresStore) ListAPIKeys(ctx context.Context) ([]*APIKey, error) {
	keys := make([]*APIKey, 0)
	query := `select * from api_keys order by created_at desc, id desc`
	if err := pgxscan.Select(ctx, store.pool, &keys, query); err != nil {
		return nil, err
	}
	return keys, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	return false
}
