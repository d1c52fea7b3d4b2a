package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irfanbayu/keydash/internal/service"
)

func SetupValidationRoutes(g *echo.Group, apiKeyService service.APIKeyServicer) {
	h := NewValidationHandler(apiKeyService)
	g.POST("/validate-key", h.PostValidateKey)
}

type ValidationHandler struct {
	apiKeyService service.APIKeyServicer
}

func NewValidationHandler(apiKeyService service.APIKeyServicer) *ValidationHandler {
	return &ValidationHandler{apiKeyService}
}

func (h *ValidationHandler) PostValidateKey(c echo.Context) error {
	vkp := new(ValidateKeyParams)
	if err := c.Bind(vkp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid request body")
	}
	if vkp.APIKey == "" {
		return newError(c, nil, http.StatusBadRequest, service.MessageMissingAPIKey)
	}

	result, err := h.apiKeyService.ValidateAPIKey(c.Request().Context(), vkp.APIKey)
	if err != nil {
		// store failure, not a rejected key
		return newError(c, err, http.StatusInternalServerError, result.Message)
	}
	return c.JSON(http.StatusOK, result)
}
