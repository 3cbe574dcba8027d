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

// Package cmd provides the command line interface of renovate-config
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "renovate-config",
	Short: "Lint, explain and render Renovate automation configuration",
	Long: `renovate-config loads the configuration consumed by the Renovate
dependency-update automation, checks it against the schema and reports every
problem before Renovate runs with it.

The configuration is located in this order:
1. Configuration files given with --config (merged, later files win)
2. A remote repository given with --repo.url (cloned, then searched)
3. The project directory given with --dir (default: current directory)

Inside a repository the first of renovate.json, renovate.yaml, .renovaterc,
.renovaterc.json, .github/renovate.json, .gitlab/renovate.json and
renovate-config.js is used.

Example usage:
  # Lint the configuration of the current repository
  renovate-config validate

  # Merge a shared preset with a local overlay and render it for Renovate
  renovate-config render --config preset.yaml --config overlay.yaml --format js

  # Show how a minor bump of a dependency would be handled
  renovate-config explain --from 1.4.2 --to 1.5.0

  # Check that every target repository exists and is not a fork
  RENOVATE_CONFIG_GIT_TOKEN=xxx renovate-config verify --repo.url https://github.com/user/repo.git`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd, renderCmd, explainCmd, verifyCmd, initCmd)
}
