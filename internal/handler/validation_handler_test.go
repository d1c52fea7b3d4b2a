package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/irfanbayu/keydash/internal/service"
	"github.com/irfanbayu/keydash/internal/testutil"
)

func newValidateContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/validate-key", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestValidationHandler_PostValidateKey(t *testing.T) {
	t.Run("success - valid key reports post-increment usage", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		result := &service.ValidationResult{
			Valid:   true,
			Message: service.MessageValidAPIKey,
			Key:     &service.ValidatedKey{ID: 7, Name: "Test Key", Usage: 3},
		}
		mockService := new(testutil.MockAPIKeyService)
		mockService.On("ValidateAPIKey", ctx, "tvly-valid").Return(result, nil)

		e := echo.New()
		c, rec := newValidateContext(e, `{"apiKey":"tvly-valid"}`)
		h := NewValidationHandler(mockService)

		// act
		err := h.PostValidateKey(c)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `"isValid":true`)
		assert.Contains(t, body, `"usage":3`)
	})
	t.Run("success - unknown key reports invalid with opaque reason", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		result := &service.ValidationResult{Message: service.MessageInvalidAPIKey}
		mockService := new(testutil.MockAPIKeyService)
		mockService.On("ValidateAPIKey", ctx, "tvly-bogus").Return(result, nil)

		e := echo.New()
		c, rec := newValidateContext(e, `{"apiKey":"tvly-bogus"}`)
		h := NewValidationHandler(mockService)

		// act
		err := h.PostValidateKey(c)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `"isValid":false`)
		assert.Contains(t, body, fmt.Sprintf(`"message":%q`, service.MessageInvalidAPIKey))
		assert.NotContains(t, body, `"apiKey"`)
	})
	t.Run("failure - blank key yields 400 without store access", func(t *testing.T) {
		// arrange
		mockService := new(testutil.MockAPIKeyService)

		e := echo.New()
		c, _ := newValidateContext(e, `{"apiKey":""}`)
		h := NewValidationHandler(mockService)

		// act
		err := h.PostValidateKey(c)

		// assert
		assert.Error(t, err)
		var he *echo.HTTPError
		assert.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockService.AssertNotCalled(t, "ValidateAPIKey")
	})
	t.Run("failure - store failure yields 500", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		result := &service.ValidationResult{Message: service.MessageValidationFailure}
		mockService := new(testutil.MockAPIKeyService)
		mockService.On(
			"ValidateAPIKey", ctx, "tvly-valid",
		).Return(result, errors.New("connection timed out"))

		e := echo.New()
		c, _ := newValidateContext(e, `{"apiKey":"tvly-valid"}`)
		h := NewValidationHandler(mockService)

		// act
		err := h.PostValidateKey(c)

		// assert
		assert.Error(t, err)
		var he *echo.HTTPError
		assert.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusInternalServerError, he.Code)
	})
}
