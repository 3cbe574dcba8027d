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

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

// Status is the verdict for one target repository
type Status string

const (
	// StatusOK means the automation will process the repository
	StatusOK Status = "ok"
	// StatusMissing means the platform does not know the repository
	StatusMissing Status = "missing"
	// StatusSkippedFork means the repository is a fork and forks are excluded
	StatusSkippedFork Status = "skipped-fork"
	// StatusArchived means the repository is read-only
	StatusArchived Status = "archived"
	// StatusError means the lookup failed
	StatusError Status = "error"
)

// Result is the outcome of verifying one target repository
type Result struct {
	Repository string         `json:"repository"`
	Status     Status         `json:"status"`
	Info       RepositoryInfo `json:"info"`
	Message    string         `json:"message,omitempty"`
}

// Verify checks every target repository of cfg in order. Lookup failures are
// recorded in the results; only a cancelled context stops the run early.
func Verify(ctx context.Context, checker RepositoryChecker, cfg config.AutomationConfig) ([]Result, error) {
	results := make([]Result, 0, len(cfg.TargetRepositories))

	for _, id := range cfg.TargetRepositories {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := Result{Repository: id}
		repo, err := git.ParseRepository(id)
		if err != nil {
			result.Status = StatusError
			result.Message = err.Error()
			results = append(results, result)
			continue
		}

		logrus.Debugf("Checking %s on %s", repo, checker.GetPlatformType())
		info, err := checker.Check(ctx, repo)
		result.Info = info
		switch {
		case err != nil:
			result.Status = StatusError
			result.Message = err.Error()
		case !info.Exists:
			result.Status = StatusMissing
			result.Message = fmt.Sprintf("repository not found on %s", checker.GetPlatformType())
		case info.Fork && !cfg.IncludeForks:
			result.Status = StatusSkippedFork
			result.Message = "repository is a fork and includeForks is false"
		case info.Archived:
			result.Status = StatusArchived
			result.Message = "repository is archived"
		default:
			result.Status = StatusOK
		}
		results = append(results, result)
	}
	return results, nil
}

// HasFailures reports whether any repository is missing or could not be checked
func HasFailures(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusMissing || r.Status == StatusError {
			return true
		}
	}
	return false
}
