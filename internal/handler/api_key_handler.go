package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irfanbayu/keydash/internal/service"
	"github.com/irfanbayu/keydash/internal/store"
)

func SetupAPIKeyRoutes(g *echo.Group, apiKeyService service.APIKeyServicer) {
	h := NewAPIKeyHandler(apiKeyService)
	apiKeysGroup := g.Group("/api-keys")
	apiKeysGroup.GET("", h.GetAPIKeys)
	apiKeysGroup.POST("", h.PostAPIKey)
	apiKeysGroup.GET("/:id", h.GetAPIKey)
	apiKeysGroup.PUT("/:id", h.PutAPIKey)
	apiKeysGroup.DELETE("/:id", h.DeleteAPIKey)
	apiKeysGroup.POST("/:id/increment", h.PostIncrementUsage)
}

type APIKeyHandler struct {
	apiKeyService service.APIKeyServicer
}

func NewAPIKeyHandler(apiKeyService service.APIKeyServicer) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService}
}

func (h *APIKeyHandler) GetAPIKeys(c echo.Context) error {
	apiKeys, err := h.apiKeyService.ListAPIKeys(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "unable to list api keys")
	}
	return c.JSON(http.StatusOK, apiKeys)
}

func (h *APIKeyHandler) GetAPIKey(c echo.Context) error {
	akp := new(APIKeyParams)
	if err := c.Bind(akp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid api key id")
	}

	ak, err := h.apiKeyService.GetAPIKeyByID(c.Request().Context(), akp.ID)
	if err != nil {
		return serviceError(c, err, "unable to get api key")
	}
	return c.JSON(http.StatusOK, ak)
}

func (h *APIKeyHandler) PostAPIKey(c echo.Context) error {
	ckp := new(CreateAPIKeyParams)
	if err := c.Bind(ckp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid api key data")
	}

	ak, err := h.apiKeyService.CreateAPIKey(c.Request().Context(), ckp.Name, ckp.Value)
	if err != nil {
		return serviceError(c, err, "unable to create api key")
	}
	return c.JSON(http.StatusCreated, ak)
}

func (h *APIKeyHandler) PutAPIKey(c echo.Context) error {
	ukp := new(UpdateAPIKeyParams)
	if err := c.Bind(ukp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid api key data")
	}

	ak, err := h.apiKeyService.UpdateAPIKey(c.Request().Context(), ukp.ID, store.APIKeyUpdate{
		Name:  ukp.Name,
		Value: ukp.Value,
		Usage: ukp.Usage,
	})
	if err != nil {
		return serviceError(c, err, "unable to update api key")
	}
	return c.JSON(http.StatusOK, ak)
}

func (h *APIKeyHandler) PostIncrementUsage(c echo.Context) error {
	akp := new(APIKeyParams)
	if err := c.Bind(akp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid api key id")
	}

	ak, err := h.apiKeyService.IncrementUsage(c.Request().Context(), akp.ID)
	if err != nil {
		return serviceError(c, err, "unable to increment api key usage")
	}
	return c.JSON(http.StatusOK, ak)
}

func (h *APIKeyHandler) DeleteAPIKey(c echo.Context) error {
	akp := new(APIKeyParams)
	if err := c.Bind(akp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid api key id")
	}

	if err := h.apiKeyService.DeleteAPIKey(c.Request().Context(), akp.ID); err != nil {
		return serviceError(c, err, "unable to delete api key")
	}
	return c.NoContent(http.StatusNoContent)
}
