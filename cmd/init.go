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
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/git"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/platform"
)

var (
	// initFormat is the format of the generated file
	initFormat string
	// initOutput is the generated file, relative to the project directory
	initOutput string
	// initForce overwrites an existing file
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration for the current repository",
	Long: `init writes the shipped preset with the repository and platform taken
from the origin remote of the project directory. Every update type is applied
without dashboard approval and without a stability period; add rules before
turning dry-run off.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := viper.GetString("dir")
		cfg, branch, err := starterConfig(git.NewGitOperator(projectDir))
		if err != nil {
			return err
		}

		data, err := renderConfig(cfg, initFormat)
		if err != nil {
			return err
		}

		target := filepath.Join(projectDir, initOutput)
		if _, err := os.Stat(target); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", target)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", target, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", target, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s for %s on %s\n", target, cfg.TargetRepositories[0], cfg.PlatformKind)
		if branch != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Current branch is %s; Renovate reads the file from the default branch once it is merged there\n", branch)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initFormat, "format", "json", "output format: json, js or yaml")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "renovate.json", "file to write, relative to --dir")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
}

// starterConfig returns the preset pointed at the origin repository of r,
// together with the branch checked out in the working copy
func starterConfig(r git.RemoteReader) (config.AutomationConfig, string, error) {
	repo, err := git.OriginRepository(r)
	if err != nil {
		return config.AutomationConfig{}, "", fmt.Errorf("failed to get repo info: %w", err)
	}

	branch, err := r.GetCurrentBranch()
	if err != nil {
		logrus.Warnf("Warning: failed to get branch info: %v", err)
	}

	cfg := config.Default()
	cfg.TargetRepositories = []string{repo.String()}
	if kind, ok := platform.GuessPlatform(repo.Host); ok {
		cfg.PlatformKind = kind
	} else {
		logrus.Warnf("Cannot tell the platform of %s, assuming %s", repo.Host, cfg.PlatformKind)
	}

	if err := config.Validate(cfg); err != nil {
		return config.AutomationConfig{}, "", fmt.Errorf("starter configuration is invalid: %w", err)
	}
	return cfg, branch, nil
}
