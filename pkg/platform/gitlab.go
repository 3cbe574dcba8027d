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

	"github.com/sirupsen/logrus"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

// GitLabChecker implements RepositoryChecker interface for GitLab
type GitLabChecker struct {
	client *gitlab.Client
}

// NewGitLabChecker creates a new GitLab repository checker
func NewGitLabChecker(baseURL, token string) (*GitLabChecker, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLabChecker{client: client}, nil
}

// Check looks up the project by its full path
func (g *GitLabChecker) Check(ctx context.Context, repo git.Repository) (RepositoryInfo, error) {
	info := RepositoryInfo{Repository: repo.String()}

	project, resp, err := g.client.Projects.GetProject(repo.String(), nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			logrus.Debugf("Project %s not found on GitLab", repo)
			return info, nil
		}
		return info, fmt.Errorf("failed to get project %s: %w", repo, err)
	}

	info.Exists = true
	info.Fork = project.ForkedFromProject != nil
	info.Archived = project.Archived
	info.DefaultBranch = project.DefaultBranch
	info.URL = project.WebURL
	return info, nil
}

// GetPlatformType returns the type of platform
func (g *GitLabChecker) GetPlatformType() config.PlatformKind {
	return config.PlatformGitLab
}

// Ensure GitLabChecker implements RepositoryChecker interface
var _ RepositoryChecker = (*GitLabChecker)(nil)
