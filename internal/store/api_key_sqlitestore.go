package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func NewAPIKeySQLiteStore(rdb, rwdb *sql.DB) *APIKeySQLiteStore {
	return &APIKeySQLiteStore{rdb, rwdb}
}

type APIKeySQLiteStore struct {
	rdb, rwdb *sql.DB
}

func (store *APIKeySQLiteStore) CreateAPIKey(
	ctx context.Context,
	name, value string,
) (*APIKey, error) {
	key := new(APIKey)
	query := `insert into api_keys (name, value) values ($1, $2) returning *`
	err := sqlscan.Get(ctx, store.rwdb, key, query, name, value)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("create api key %q: %w", name, ErrValueExists)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeySQLiteStore) ReadAPIKeyByID(ctx context.Context, id int64) (*APIKey, error) {
	key := new(APIKey)
	query := `select * from api_keys where id = $1`
	err := sqlscan.Get(ctx, store.rdb, key, query, id)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("read api key %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeySQLiteStore) ReadAPIKeyByValue(
	ctx context.Context,
	value string,
) (*APIKey, error) {
	key := new(APIKey)
	query := `select * from api_keys where value = $1`
	err := sqlscan.Get(ctx, store.rdb, key, query, value)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("read api key by value: %w", ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeySQLiteStore) UpdateAPIKey(
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
			updated_at = $5
		where id = $1
		returning *`
	err := sqlscan.Get(
		ctx, store.rwdb, key, query,
		id, update.Name, update.Value, update.Usage, time.Now().UTC(),
	)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("update api key %d: %w", id, ErrNotFound)
		}
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("update api key %d: %w", id, ErrValueExists)
		}
		return nil, err
	}
	return key, nil
}

// IncrementAPIKeyUsage bumps usage by one in a single statement so that
// concurrent increments never lose updates.
func (store *APIKeySQLiteStore) IncrementAPIKeyUsage(
	ctx context.Context,
	id int64,
) (*APIKey, error) {
	key := new(APIKey)
	query := `
		update api_keys
		set usage = usage + 1, updated_at = $2
		where id = $1
		returning *`
	err := sqlscan.Get(ctx, store.rwdb, key, query, id, time.Now().UTC())
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("increment api key %d usage: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return key, nil
}

func (store *APIKeySQLiteStore) DeleteAPIKey(ctx context.Context, id int64) error {
	query := `delete from api_keys where id = $1`
	res, err := store.rwdb.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete api key %d: %w", id, ErrNotFound)
	}
	return nil
}

func (store *APIKeySQLiteStore) ListAPIKeys(ctx context.Context) ([]*APIKey, error) {
	keys := make([]*APIKey, 0)
	query := `select * from api_keys order by created_at desc, id desc`
	if err := sqlscan.Select(ctx, store.rdb, &keys, query); err != nil {
		return nil, err
	}
	return keys, nil
}

func isUniqueConstraintError(err error) bool {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
