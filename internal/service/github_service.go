package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const githubUserAgent = "keydash-github-summarizer"

// The readme file names the fetcher probes, in order.
var readmeFilenames = []string{"README.md", "readme.md", "Readme.md", "README.MD"}

type GitHubServicer interface {
	FetchReadme(ctx context.Context, githubURL string) (string, error)
}

// GitHubService fetches repository readmes through the GitHub contents API.
type GitHubService struct {
	client  *http.Client
	baseURL string
}

// NewGitHubService returns a fetcher talking to baseURL (the GitHub API root,
// injectable for tests) with the given per-request timeout.
func NewGitHubService(baseURL string, timeout time.Duration) *GitHubService {
	return &GitHubService{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type githubContentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FetchReadme resolves githubURL to owner/repo and returns the decoded
// content of the first readme variant that exists.
func (s *GitHubService) FetchReadme(ctx context.Context, githubURL string) (string, error) {
	owner, repo, err := parseRepoURL(githubURL)
	if err != nil {
		return "", err
	}

	for _, filename := range readmeFilenames {
		content, found, err := s.fetchFile(ctx, owner, repo, filename)
		if err != nil {
			return "", err
		}
		if found {
			return content, nil
		}
	}

	return "", NewReadmeNotFoundError(owner, repo)
}

func (s *GitHubService) fetchFile(
	ctx context.Context,
	owner, repo, filename string,
) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, owner, repo, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, NewUpstreamError("building github request", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", githubUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", false, NewUpstreamError("requesting github contents", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode != http.StatusOK:
		return "", false, NewUpstreamError(
			fmt.Sprintf("github contents request returned status %d", resp.StatusCode), nil,
		)
	}

	var content githubContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", false, NewUpstreamError("decoding github contents response", err)
	}
	if content.Encoding != "base64" || content.Content == "" {
		return "", false, nil
	}

	// the contents API wraps base64 payloads with newlines
	decoded, err := base64.StdEncoding.DecodeString(
		strings.ReplaceAll(content.Content, "\n", ""),
	)
	if err != nil {
		return "", false, NewUpstreamError("decoding readme content", err)
	}
	return string(decoded), true, nil
}

func parseRepoURL(raw string) (owner, repo string, err error) {
	u, parseErr := url.Parse(raw)
	if parseErr != nil || u.Scheme == "" || u.Hostname() != "github.com" {
		return "", "", NewInvalidRepoURLError(raw)
	}
	parts := make([]string, 0, 2)
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", NewInvalidRepoURLError(raw)
	}
	return parts[0], parts[1], nil
}
