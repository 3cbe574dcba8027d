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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration against the schema",
	Long: `validate loads the configuration and reports every schema and
validation problem. It exits with a non-zero status when the configuration
cannot be used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout())
	},
}

func runValidate(out io.Writer) error {
	cfg, source, err := loadAutomationConfig()
	if err != nil {
		if !errors.Is(err, config.ErrSchema) && !errors.Is(err, config.ErrValidation) {
			return err
		}
		if source == "" {
			source = viper.GetString("dir")
		}
		reportError(source, err)
		return fmt.Errorf("configuration %s is invalid", source)
	}

	fmt.Fprintf(out, "%s is valid: platform %s, dry-run %s, %d repositories, %d rules\n",
		source, cfg.PlatformKind, cfg.DryRunMode, len(cfg.TargetRepositories), len(cfg.Rules))

	if cfg.IsDryRun() {
		logrus.Infof("Dry-run mode %q: Renovate will not push any change", cfg.DryRunMode)
	}
	for _, policy := range cfg.Policies() {
		if !policy.Matched {
			logrus.Debugf("No rule matches %s updates", policy.UpdateType)
			continue
		}
		if policy.UpdateType == config.UpdateMajor && !policy.RequiresDashboardApproval && policy.MinStabilityDays == 0 {
			logrus.Warnf("Major updates are applied without dashboard approval and without a stability period")
		}
	}
	return nil
}
