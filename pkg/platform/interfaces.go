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

// Package platform checks target repositories against the source-control
// platform a configuration points to
package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

// ErrUnsupportedPlatform is returned for platforms without a checker
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// RepositoryInfo represents what the platform reports about a repository
type RepositoryInfo struct {
	// Repository is the owner/name identifier that was checked
	Repository string `json:"repository"`
	// Exists is false when the platform answered 404
	Exists bool `json:"exists"`
	// Fork is true when the repository is a fork of another one
	Fork bool `json:"fork"`
	// Archived repositories are read-only
	Archived      bool   `json:"archived"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	URL           string `json:"url,omitempty"`
}

// RepositoryChecker defines the interface for looking up repositories
type RepositoryChecker interface {
	// Check looks up repo. A missing repository is not an error.
	Check(ctx context.Context, repo git.Repository) (RepositoryInfo, error)

	// GetPlatformType returns the type of platform (github, gitlab, etc.)
	GetPlatformType() config.PlatformKind
}

// NewRepositoryChecker creates a RepositoryChecker for the given platform.
// An empty baseURL selects the public instance of the platform.
func NewRepositoryChecker(kind config.PlatformKind, baseURL, token string) (RepositoryChecker, error) {
	switch kind {
	case config.PlatformGitHub:
		return NewGitHubChecker(baseURL, token)
	case config.PlatformGitLab:
		return NewGitLabChecker(baseURL, token)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, kind)
	}
}

// GuessPlatform infers the platform from a git host name
func GuessPlatform(host string) (config.PlatformKind, bool) {
	host = strings.ToLower(host)
	switch {
	case host == "github.com" || strings.HasPrefix(host, "github."):
		return config.PlatformGitHub, true
	case host == "gitlab.com" || strings.HasPrefix(host, "gitlab."):
		return config.PlatformGitLab, true
	case host == "bitbucket.org":
		return config.PlatformBitbucket, true
	case host == "dev.azure.com" || strings.HasSuffix(host, ".visualstudio.com"):
		return config.PlatformAzure, true
	case host == "codeberg.org":
		return config.PlatformForgejo, true
	case strings.HasPrefix(host, "gitea."):
		return config.PlatformGitea, true
	default:
		return "", false
	}
}
