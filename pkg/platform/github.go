/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package platform

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

const githubPublicAPI = "https://api.github.com"

// GitHubChecker implements RepositoryChecker interface for GitHub using the GitHub SDK
type GitHubChecker struct {
	// client is the GitHub API client
	client *github.Client
}

// NewGitHubChecker creates a new GitHub repository checker.
// A baseURL other than the public API is treated as GitHub Enterprise.
func NewGitHubChecker(baseURL, token string) (*GitHubChecker, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL != "" && baseURL != githubPublicAPI {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise URLs: %w", err)
		}
	}

	return &GitHubChecker{client: client}, nil
}

// Check looks up the repository through the repositories API
func (g *GitHubChecker) Check(ctx context.Context, repo git.Repository) (RepositoryInfo, error) {
	info := RepositoryInfo{Repository: repo.String()}

	r, resp, err := g.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			logrus.Debugf("Repository %s not found on GitHub", repo)
			return info, nil
		}
		return info, fmt.Errorf("failed to get repository %s: %w", repo, err)
	}

	info.Exists = true
	info.Fork = r.GetFork()
	info.Archived = r.GetArchived()
	info.DefaultBranch = r.GetDefaultBranch()
	info.URL = r.GetHTMLURL()
	return info, nil
}

// GetPlatformType returns the type of platform
func (g *GitHubChecker) GetPlatformType() config.PlatformKind {
	return config.PlatformGitHub
}

// Ensure GitHubChecker implements RepositoryChecker interface
var _ RepositoryChecker = (*GitHubChecker)(nil)
