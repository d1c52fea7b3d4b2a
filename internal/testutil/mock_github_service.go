package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGitHubService struct {
	mock.Mock
}

func (m *MockGitHubService) FetchReadme(ctx context.Context, githubURL string) (string, error) {
	args := m.Called(ctx, githubURL)
	return args.Get(0).(string), args.Error(1)
}
