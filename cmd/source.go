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

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
)

// loadAutomationConfig loads the configuration selected by the global flags
// and returns it together with a description of where it came from
func loadAutomationConfig() (config.AutomationConfig, string, error) {
	reader := config.NewConfigReader()

	if files := viper.GetStringSlice("config"); len(files) > 0 {
		source := strings.Join(files, ", ")
		logrus.Infof("Using config files: %s", source)
		cfg, err := reader.ReadAndMerge(files...)
		return cfg, source, err
	}

	repoURL := viper.GetString("repo.url")
	if repoURL == "" {
		projectDir := viper.GetString("dir")
		return reader.ReadRepoConfig(projectDir)
	}

	logrus.Infof("Cloning remote repository: %s", repoURL)
	if err := git.CheckGitInstalled(); err != nil {
		return config.AutomationConfig{}, "", fmt.Errorf("git CLI check failed: %w", err)
	}

	cloner := git.NewGitCloner(repoURL, viper.GetString("repo.branch"))
	clonedPath, err := cloner.CloneRepository()
	if err != nil {
		return config.AutomationConfig{}, "", fmt.Errorf("failed to clone repository: %w", err)
	}
	defer func() {
		if cleanupErr := cloner.Cleanup(); cleanupErr != nil {
			logrus.Warnf("Warning: failed to cleanup cloned repository: %v", cleanupErr)
		}
	}()

	cfg, path, err := reader.ReadRepoConfig(clonedPath)
	if rel, relErr := filepath.Rel(clonedPath, path); path != "" && relErr == nil {
		path = repoURL + ":" + filepath.ToSlash(rel)
	}
	return cfg, path, err
}

// reportError logs every violation of a schema or validation error on its own line
func reportError(source string, err error) {
	var validationErr *config.ValidationError
	if !errors.As(err, &validationErr) {
		logrus.Errorf("%s: %v", source, err)
		return
	}
	for _, v := range validationErr.Violations {
		logrus.Errorf("%s: %s", source, v)
	}
}
