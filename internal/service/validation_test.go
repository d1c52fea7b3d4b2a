package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfanbayu/keydash/internal/store"
)

func TestAPIKeyService_ValidateAPIKey(t *testing.T) {
	t.Run("failure - empty candidate never touches the store", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		mockStore := new(MockAPIKeyStore)
		apiKeyService := NewAPIKeyService(mockStore, nil)

		// act
		result, err := apiKeyService.ValidateAPIKey(ctx, "")

		// assert
		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.False(t, result.Valid)
		assert.Equal(t, MessageMissingAPIKey, result.Message)
		assert.Nil(t, result.Key)
		mockStore.AssertNotCalled(t, "ReadAPIKeyByValue")
		mockStore.AssertNotCalled(t, "IncrementAPIKeyUsage")
	})
	t.Run("failure - unknown candidate is invalid without mutation", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		mockStore := new(MockAPIKeyStore)
		mockStore.On("ReadAPIKeyByValue", ctx, "tvly-unknown").Return(nil, store.ErrNotFound)
		apiKeyService := NewAPIKeyService(mockStore, nil)

		// act
		result, err := apiKeyService.ValidateAPIKey(ctx, "tvly-unknown")

		// assert
		assert.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, MessageInvalidAPIKey, result.Message)
		assert.Nil(t, result.Key)
		mockStore.AssertNotCalled(t, "IncrementAPIKeyUsage")
	})
	t.Run("success - valid candidate counts one use", func(t *testing.T) {
		// arrange
		ak := generateAPIKey()
		incremented := *ak
		incremented.Usage = ak.Usage + 1
		ctx := context.Background()
		mockStore := new(MockAPIKeyStore)
		mockStore.On("ReadAPIKeyByValue", ctx, ak.Value).Return(ak, nil)
		mockStore.On("IncrementAPIKeyUsage", ctx, ak.ID).Return(&incremented, nil)
		apiKeyService := NewAPIKeyService(mockStore, nil)

		// act
		result, err := apiKeyService.ValidateAPIKey(ctx, ak.Value)

		// assert
		assert.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, MessageValidAPIKey, result.Message)
		assert.NotNil(t, result.Key)
		assert.Equal(t, ak.ID, result.Key.ID)
		assert.Equal(t, ak.Name, result.Key.Name)
		assert.Equal(t, ak.Usage+1, result.Key.Usage)
		mockStore.AssertNumberOfCalls(t, "IncrementAPIKeyUsage", 1)
	})
	t.Run("failure - store error is transient, not an invalid key", func(t *testing.T) {
		// arrange
		storeErr := errors.New("connection timed out")
		ctx := context.Background()
		mockStore := new(MockAPIKeyStore)
		mockStore.On("ReadAPIKeyByValue", ctx, "tvly-whatever").Return(nil, storeErr)
		apiKeyService := NewAPIKeyService(mockStore, nil)

		// act
		result, err := apiKeyService.ValidateAPIKey(ctx, "tvly-whatever")

		// assert
		assert.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, result.Valid)
		assert.Equal(t, MessageValidationFailure, result.Message)
	})
	t.Run("failure - key deleted between lookup and increment", func(t *testing.T) {
		// arrange
		ak := generateAPIKey()
		ctx := context.Background()
		mockStore := new(MockAPIKeyStore)
		mockStore.On("ReadAPIKeyByValue", ctx, ak.Value).Return(ak, nil)
		mockStore.On("IncrementAPIKeyUsage", ctx, ak.ID).Return(nil, store.ErrNotFound)
		apiKeyService := NewAPIKeyService(mockStore, nil)

		// act
		result, err := apiKeyService.ValidateAPIKey(ctx, ak.Value)

		// assert
		assert.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, MessageInvalidAPIKey, result.Message)
	})
}

// Full lifecycle against a real SQLite store: create with a generated value,
// validate twice, delete, validate again.
func TestAPIKeyService_Lifecycle(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", ":memory:")
	assert.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	store.RunMigrations(db, "sqlite")

	apiKeyService := NewAPIKeyService(store.NewAPIKeySQLiteStore(db, db), NewRandomKeyGen())
	ctx := context.Background()

	// act + assert
	ak, err := apiKeyService.CreateAPIKey(ctx, "Test Key", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), ak.ID)
	assert.Regexp(t, regexp.MustCompile(`^tvly-[A-Za-z0-9]{28}$`), ak.Value)
	assert.Equal(t, int64(0), ak.Usage)

	result, err := apiKeyService.ValidateAPIKey(ctx, ak.Value)
	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(1), result.Key.Usage)

	result, err = apiKeyService.ValidateAPIKey(ctx, ak.Value)
	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(2), result.Key.Usage)

	assert.NoError(t, apiKeyService.DeleteAPIKey(ctx, ak.ID))

	result, err = apiKeyService.ValidateAPIKey(ctx, ak.Value)
	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, MessageInvalidAPIKey, result.Message)
}
