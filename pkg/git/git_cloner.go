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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// GitCloner makes a shallow checkout of a remote repository so its
// configuration files can be read
type GitCloner struct {
	// repoURL is the repository URL to clone
	repoURL string
	// branch is the branch to clone, empty for the remote default
	branch string
	// tempDir is the temporary directory holding the checkout
	tempDir string
	// clonedPath is the full path to the cloned repository
	clonedPath string
}

// NewGitCloner creates a new git cloner
func NewGitCloner(repoURL, branch string) *GitCloner {
	return &GitCloner{
		repoURL: repoURL,
		branch:  branch,
	}
}

// CloneRepository clones the repository and returns the path to the cloned directory
func (g *GitCloner) CloneRepository() (string, error) {
	repo, err := ParseRepoURL(g.repoURL)
	if err != nil {
		return "", err
	}

	tempDir, err := os.MkdirTemp("", "renovate-config-clone-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	g.tempDir = tempDir
	g.clonedPath = filepath.Join(tempDir, repo.Name)

	args := []string{"clone", "--depth", "1", "--single-branch"}
	if g.branch != "" {
		args = append(args, "--branch", g.branch)
	}
	args = append(args, g.repoURL, g.clonedPath)

	logrus.Debugf("Executing: git %s", strings.Join(args, " "))
	cmd := exec.Command("git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if cleanupErr := g.Cleanup(); cleanupErr != nil {
			logrus.Warnf("Warning: %v", cleanupErr)
		}
		return "", fmt.Errorf("git clone failed: %w, output: %s", err, string(output))
	}

	logrus.Debugf("Cloned %s to %s", repo, g.clonedPath)
	return g.clonedPath, nil
}

// Cleanup removes the temporary directory and all its contents
func (g *GitCloner) Cleanup() error {
	if g.tempDir == "" {
		return nil
	}

	logrus.Debugf("Cleaning up cloned repository: %s", g.tempDir)
	if err := os.RemoveAll(g.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup temp directory %s: %w", g.tempDir, err)
	}

	g.tempDir = ""
	g.clonedPath = ""
	return nil
}

// CheckGitInstalled checks if git CLI is available
func CheckGitInstalled() error {
	output, err := exec.Command("git", "version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("git CLI is not installed or not available in PATH: %w, output: %s", err, string(output))
	}

	logrus.Debugf("Git CLI is available: %s", strings.TrimSpace(string(output)))
	return nil
}
