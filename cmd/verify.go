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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/notice"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/platform"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the target repositories on the platform",
	Long: `verify looks up every target repository through the platform API and
reports repositories that do not exist, are archived, or are forks skipped
because includeForks is false. Only GitHub and GitLab are supported.

The token is read from --git.token or RENOVATE_CONFIG_GIT_TOKEN. With
--notice.type the report is also posted to a chat webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, source, err := loadAutomationConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		notifier, err := notice.NewNotifier(viper.GetString("notice.type"), viper.GetString("notice.webhookUrl"))
		if err != nil {
			return fmt.Errorf("failed to create notifier: %w", err)
		}

		checker, err := platform.NewRepositoryChecker(cfg.PlatformKind, viper.GetString("git.baseUrl"), viper.GetString("git.token"))
		if err != nil {
			return fmt.Errorf("failed to create repository checker: %w", err)
		}

		logrus.Infof("Verifying %d repositories from %s on %s", len(cfg.TargetRepositories), source, checker.GetPlatformType())
		results, err := platform.Verify(cmd.Context(), checker, cfg)
		out := cmd.OutOrStdout()
		for _, r := range results {
			fmt.Fprintf(out, "%-40s %-13s %s\n", r.Repository, r.Status, r.Message)
		}
		if err != nil {
			return fmt.Errorf("verification interrupted: %w", err)
		}

		if notifier != nil {
			report := notice.Report{Source: source, Platform: string(checker.GetPlatformType()), Results: results}
			if err := notifier.Notify(cmd.Context(), report); err != nil {
				logrus.Warnf("Warning: failed to send notification: %v", err)
			}
		}
		if platform.HasFailures(results) {
			return fmt.Errorf("some target repositories cannot be processed")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("notice.type", "", "notification type for the report (wecom), empty to disable")
	verifyCmd.Flags().String("notice.webhookUrl", "", "webhook URL the report is posted to")
	viper.BindPFlags(verifyCmd.Flags())
}
