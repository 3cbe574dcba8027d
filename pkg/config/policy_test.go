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

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

var _ = Describe("EffectivePolicy", func() {
	var cfg config.AutomationConfig

	BeforeEach(func() {
		cfg = config.Default()
		cfg.Rules = []config.UpdateRule{
			{
				Description:      "baseline",
				MatchUpdateTypes: config.UpdateTypes(),
				MinStabilityDays: 1,
			},
			{
				Description:               "gate majors",
				MatchUpdateTypes:          []config.UpdateType{config.UpdateMajor},
				RequiresDashboardApproval: true,
				MinStabilityDays:          14,
			},
			{
				MatchUpdateTypes: []config.UpdateType{config.UpdateMajor, config.UpdateMinor},
				MinStabilityDays: 3,
			},
		}
	})

	It("lets later rules override earlier ones", func() {
		policy := cfg.EffectivePolicy(config.UpdateMajor)
		Expect(policy.Matched).To(BeTrue())
		Expect(policy.Rules).To(Equal([]int{0, 1, 2}))
		Expect(policy.Descriptions).To(Equal([]string{"baseline", "gate majors"}))
		Expect(policy.MinStabilityDays).To(Equal(3))
		Expect(policy.RequiresDashboardApproval).To(BeFalse())
	})

	It("keeps the earlier rule when no later rule matches", func() {
		policy := cfg.EffectivePolicy(config.UpdatePatch)
		Expect(policy.Rules).To(Equal([]int{0}))
		Expect(policy.MinStabilityDays).To(Equal(1))
	})

	It("reports unmatched update types", func() {
		cfg.Rules = cfg.Rules[1:]
		policy := cfg.EffectivePolicy(config.UpdateDigest)
		Expect(policy.Matched).To(BeFalse())
		Expect(policy.Rules).To(BeEmpty())
		Expect(policy.MinStabilityDays).To(BeZero())
	})

	It("lists every update type in canonical order", func() {
		policies := cfg.Policies()
		Expect(policies).To(HaveLen(len(config.UpdateTypes())))
		for i, t := range config.UpdateTypes() {
			Expect(policies[i].UpdateType).To(Equal(t))
		}
	})
})

var _ = Describe("Clone", func() {
	It("returns an independent copy", func() {
		original := config.Default()
		clone := original.Clone()
		Expect(clone).To(Equal(original))

		clone.TargetRepositories[0] = "org/changed"
		clone.Rules[0].MatchUpdateTypes[0] = config.UpdateMajor
		clone.CommitAuthor.Name = "Someone Else"

		Expect(original).To(Equal(config.Default()))
	})

	It("renders as JSON", func() {
		Expect(config.Default().String()).To(ContainSubstring(`"branchPrefix": "test-renovate/"`))
		Expect(config.Default().IsDryRun()).To(BeTrue())
	})
})
