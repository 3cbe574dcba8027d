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

package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL extracts the host, owner and name from a Git remote URL.
// It supports various formats including:
// - https://github.com/example/toolbox.git => owner: example, name: toolbox
// - https://gitlab.example.com/group/subgroup/repo.git => owner: group/subgroup, name: repo
// - ssh://git@github.com/example/toolbox.git
// - git@github.com:example/toolbox.git
func ParseRepoURL(repoURL string) (Repository, error) {
	if repoURL == "" {
		return Repository{}, errors.New("invalid repository URL: empty")
	}

	host, path, err := splitRemote(repoURL)
	if err != nil {
		return Repository{}, err
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if !strings.Contains(path, "/") {
		return Repository{}, errors.New("invalid repository URL: not enough path segments")
	}

	repo, err := ParseRepository(path)
	if err != nil {
		return Repository{}, fmt.Errorf("invalid repository URL: %w", err)
	}
	repo.Host = host
	return repo, nil
}

// splitRemote returns the host and path of a URL or scp-like remote
func splitRemote(remote string) (host, path string, err error) {
	if !strings.Contains(remote, "://") {
		// scp-like syntax: [user@]host:path
		before, after, found := strings.Cut(remote, ":")
		if !found || before == "" {
			return "", "", fmt.Errorf("invalid repository URL %q", remote)
		}
		if i := strings.LastIndex(before, "@"); i >= 0 {
			before = before[i+1:]
		}
		return before, after, nil
	}

	u, err := url.Parse(remote)
	if err != nil {
		return "", "", fmt.Errorf("invalid repository URL: %w", err)
	}
	return u.Hostname(), u.Path, nil
}
