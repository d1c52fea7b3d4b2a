package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irfanbayu/keydash/internal"
	"github.com/irfanbayu/keydash/internal/service"
)

func SetupGitHubSummarizerRoutes(
	g *echo.Group,
	apiKeyService service.APIKeyServicer,
	githubService service.GitHubServicer,
) {
	h := NewGitHubSummarizerHandler(apiKeyService, githubService)
	g.POST("/github-summarizer", h.PostSummarize)
	g.GET("/github-summarizer", h.GetUsage)
}

type GitHubSummarizerHandler struct {
	apiKeyService service.APIKeyServicer
	githubService service.GitHubServicer
}

func NewGitHubSummarizerHandler(
	apiKeyService service.APIKeyServicer,
	githubService service.GitHubServicer,
) *GitHubSummarizerHandler {
	return &GitHubSummarizerHandler{apiKeyService, githubService}
}

// PostSummarize fetches a repository readme for a caller holding a valid api
// key. Validation is a hard precondition: no upstream request is made until
// the key has been accepted and its use counted.
func (h *GitHubSummarizerHandler) PostSummarize(c echo.Context) error {
	apiKey := c.Request().Header.Get(internal.APIKeyHeader)
	if apiKey == "" {
		return newError(
			c, nil,
			http.StatusBadRequest, "API key is required in x-api-key header",
		)
	}

	gsp := new(GitHubSummarizerParams)
	if err := c.Bind(gsp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid request body")
	}
	if gsp.GitHubURL == "" {
		return newError(
			c, nil,
			http.StatusBadRequest, "GitHub URL is required in request body",
		)
	}

	result, err := h.apiKeyService.ValidateAPIKey(c.Request().Context(), apiKey)
	if err != nil {
		return newError(c, err, http.StatusInternalServerError, result.Message)
	}
	if !result.Valid {
		return newError(c, nil, http.StatusUnauthorized, result.Message)
	}

	readme, err := h.githubService.FetchReadme(c.Request().Context(), gsp.GitHubURL)
	if err != nil {
		return githubError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"message":       "GitHub README content retrieved successfully",
		"apiKey":        result.Key,
		"githubUrl":     gsp.GitHubURL,
		"readmeContent": readme,
		"contentLength": len(readme),
	})
}

func (h *GitHubSummarizerHandler) GetUsage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "GitHub README Fetcher API",
		"description": "POST to this endpoint with x-api-key header and githubUrl " +
			"in body to fetch README.md content from GitHub repositories",
		"usage": map[string]any{
			"method": http.MethodPost,
			"headers": map[string]string{
				internal.APIKeyHeader: "string (required)",
			},
			"body": map[string]string{
				"githubUrl": "string (required)",
			},
		},
	})
}

func githubError(c echo.Context, err error) error {
	var urlErr *service.InvalidRepoURLError
	if errors.As(err, &urlErr) {
		return newError(
			c, err,
			http.StatusBadRequest,
			"Invalid GitHub URL format. Expected: https://github.com/owner/repo",
		)
	}
	var notFoundErr *service.ReadmeNotFoundError
	if errors.As(err, &notFoundErr) {
		return newError(
			c, err,
			http.StatusBadRequest, "README.md file not found in the repository",
		)
	}
	var upstreamErr *service.UpstreamError
	if errors.As(err, &upstreamErr) {
		return newError(
			c, err,
			http.StatusBadGateway, "Failed to fetch README content from GitHub",
		)
	}
	return newError(c, err, http.StatusInternalServerError, "unable to fetch readme")
}
