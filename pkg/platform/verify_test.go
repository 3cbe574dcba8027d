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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

type fakeChecker struct {
	infos   map[string]RepositoryInfo
	errs    map[string]error
	checked []string
}

func (f *fakeChecker) Check(_ context.Context, repo git.Repository) (RepositoryInfo, error) {
	f.checked = append(f.checked, repo.String())
	if err, ok := f.errs[repo.String()]; ok {
		return RepositoryInfo{Repository: repo.String()}, err
	}
	info, ok := f.infos[repo.String()]
	if !ok {
		return RepositoryInfo{Repository: repo.String()}, nil
	}
	info.Repository = repo.String()
	info.Exists = true
	return info, nil
}

func (f *fakeChecker) GetPlatformType() config.PlatformKind {
	return config.PlatformGitHub
}

func TestVerify(t *testing.T) {
	checker := &fakeChecker{
		infos: map[string]RepositoryInfo{
			"org/app":      {DefaultBranch: "main"},
			"org/fork":     {Fork: true},
			"org/archived": {Archived: true},
		},
		errs: map[string]error{
			"org/broken": errors.New("boom"),
		},
	}

	cfg := config.Default()
	cfg.TargetRepositories = []string{"org/app", "org/fork", "org/archived", "org/gone", "org/broken"}

	results, err := Verify(context.Background(), checker, cfg)
	require.NoError(t, err)
	require.Len(t, results, 5)

	statuses := make([]Status, len(results))
	for i, r := range results {
		statuses[i] = r.Status
	}
	assert.Equal(t, []Status{StatusOK, StatusSkippedFork, StatusArchived, StatusMissing, StatusError}, statuses)
	assert.Equal(t, cfg.TargetRepositories, checker.checked)
	assert.Equal(t, "boom", results[4].Message)
	assert.True(t, HasFailures(results))
}

func TestVerify_IncludeForks(t *testing.T) {
	checker := &fakeChecker{infos: map[string]RepositoryInfo{"org/fork": {Fork: true}}}

	cfg := config.Default()
	cfg.TargetRepositories = []string{"org/fork"}
	cfg.IncludeForks = true

	results, err := Verify(context.Background(), checker, cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.False(t, HasFailures(results))
}

func TestVerify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &fakeChecker{}
	results, err := Verify(ctx, checker, config.Default())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, checker.checked)
}
