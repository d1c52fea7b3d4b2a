package handler

type CreateAPIKeyParams struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type UpdateAPIKeyParams struct {
	ID    int64   `param:"id"`
	Name  *string `json:"name"`
	Value *string `json:"value"`
	Usage *int64  `json:"usage"`
}

type APIKeyParams struct {
	ID int64 `param:"id"`
}

type ValidateKeyParams struct {
	APIKey string `json:"apiKey"`
}

type GitHubSummarizerParams struct {
	GitHubURL string `json:"githubUrl"`
}
