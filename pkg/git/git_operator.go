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

// Package git provides repository identifiers and the read-only Git
// operations used to locate configuration files
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultGitOperator implements RemoteReader interface using system git commands
type DefaultGitOperator struct {
	// workingDir is the working directory for git operations
	workingDir string
}

// NewGitOperator creates a new Git operator
func NewGitOperator(workingDir string) *DefaultGitOperator {
	return &DefaultGitOperator{
		workingDir: workingDir,
	}
}

// GetRepoURL returns the URL of the origin remote of the working directory
func (g *DefaultGitOperator) GetRepoURL() (string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = g.workingDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to get repo: %w, output: %s", err, string(output))
	}

	return strings.TrimSpace(string(output)), nil
}

// GetCurrentBranch returns the current branch name
func (g *DefaultGitOperator) GetCurrentBranch() (string, error) {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = g.workingDir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// OriginRepository returns the repository the origin remote of r points to
func OriginRepository(r RemoteReader) (Repository, error) {
	remote, err := r.GetRepoURL()
	if err != nil {
		return Repository{}, err
	}
	return ParseRepoURL(remote)
}

// Ensure DefaultGitOperator implements RemoteReader interface
var _ RemoteReader = (*DefaultGitOperator)(nil)
