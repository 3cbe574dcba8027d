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

package config

// Default returns the preset this project ships for the mex-common
// repository. Every update type, including major bumps, is applied without
// dashboard approval and without a stability period.
func Default() AutomationConfig {
	return AutomationConfig{
		BranchPrefix: "test-renovate/",
		Username:     "renovate-release",
		CommitAuthor: &CommitAuthor{
			Name:  "Renovate Bot",
			Email: "bot@renovateapp.com",
		},
		OnboardingEnabled:  false,
		PlatformKind:       PlatformGitHub,
		IncludeForks:       false,
		DryRunMode:         DryRunFull,
		TargetRepositories: []string{"robert-koch-institut/mex-common"},
		Rules: []UpdateRule{
			{
				Description:               "lockFileMaintenance",
				MatchUpdateTypes:          UpdateTypes(),
				RequiresDashboardApproval: false,
				MinStabilityDays:          0,
			},
		},
	}
}
