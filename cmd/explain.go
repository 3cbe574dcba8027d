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
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/version"
)

var (
	// explainFrom is the current version of a dependency
	explainFrom string
	// explainTo holds the candidate versions of a dependency
	explainTo []string
	// explainType selects an update type directly
	explainType string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show how the rules treat each update type",
	Long: `explain folds the rules in order, later rules overriding earlier ones,
and prints the resulting approval and stability requirements.

Without flags every update type is listed. --type selects one update type,
--from and --to classify a concrete version bump first. When --to lists
several candidates the highest one is used, as Renovate proposes the newest
release.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadAutomationConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		policies, err := selectPolicies(cfg)
		if err != nil {
			return err
		}
		printPolicies(cmd.OutOrStdout(), policies)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainFrom, "from", "", "current version, requires --to")
	explainCmd.Flags().StringSliceVar(&explainTo, "to", nil, "candidate versions, the highest is used; requires --from")
	explainCmd.Flags().StringVar(&explainType, "type", "", "update type: pin, digest, patch, minor, major or lockFileMaintenance")
	explainCmd.MarkFlagsRequiredTogether("from", "to")
	explainCmd.MarkFlagsMutuallyExclusive("from", "type")
}

func selectPolicies(cfg config.AutomationConfig) ([]config.Policy, error) {
	switch {
	case explainFrom != "":
		to := version.GetHighestVersion(explainTo...)
		t, err := version.ClassifyUpdate(explainFrom, to)
		if err != nil {
			return nil, fmt.Errorf("failed to classify %s -> %s: %w", explainFrom, to, err)
		}
		logrus.Infof("%s -> %s is a %s update", explainFrom, to, t)
		return []config.Policy{cfg.EffectivePolicy(t)}, nil
	case explainType != "":
		t, err := config.ParseUpdateType(explainType)
		if err != nil {
			return nil, err
		}
		return []config.Policy{cfg.EffectivePolicy(t)}, nil
	default:
		return cfg.Policies(), nil
	}
}

func printPolicies(out io.Writer, policies []config.Policy) {
	fmt.Fprintf(out, "%-20s %-8s %-9s %-10s %s\n", "UPDATE TYPE", "MATCHED", "APPROVAL", "STABILITY", "RULES")
	for _, p := range policies {
		approval := "no"
		if p.RequiresDashboardApproval {
			approval = "required"
		}
		stability := "none"
		if p.MinStabilityDays > 0 {
			stability = fmt.Sprintf("%d days", p.MinStabilityDays)
		}
		rules := make([]string, len(p.Rules))
		for i, idx := range p.Rules {
			rules[i] = fmt.Sprintf("#%d", idx)
		}
		if len(p.Descriptions) > 0 {
			rules = append(rules, "("+strings.Join(p.Descriptions, ", ")+")")
		}
		fmt.Fprintf(out, "%-20s %-8t %-9s %-10s %s\n", p.UpdateType, p.Matched, approval, stability, strings.Join(rules, " "))
	}
}
