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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

var _ = Describe("Validate", func() {
	var cfg config.AutomationConfig

	BeforeEach(func() {
		cfg = config.Default()
	})

	violations := func(err error) []config.FieldViolation {
		var validationErr *config.ValidationError
		Expect(errors.As(err, &validationErr)).To(BeTrue(), "expected *ValidationError, got %v", err)
		return validationErr.Violations
	}

	It("accepts the shipped preset", func() {
		Expect(config.Validate(cfg)).To(Succeed())
	})

	It("preserves approval bypass and zero wait for every update type", func() {
		for _, policy := range cfg.Policies() {
			Expect(policy.Matched).To(BeTrue(), string(policy.UpdateType))
			Expect(policy.RequiresDashboardApproval).To(BeFalse(), string(policy.UpdateType))
			Expect(policy.MinStabilityDays).To(BeZero(), string(policy.UpdateType))
		}
	})

	It("collects every violation", func() {
		cfg.TargetRepositories = []string{"not-a-repo", "org/repo"}
		cfg.PlatformKind = "sourceforge"
		cfg.DryRunMode = "maybe"
		cfg.Rules[0].MinStabilityDays = -1
		cfg.Rules[0].MatchUpdateTypes = []config.UpdateType{config.UpdateMajor, "sideways"}

		err := config.Validate(cfg)
		Expect(err).To(MatchError(config.ErrValidation))
		Expect(violations(err)).To(ContainElements(
			config.FieldViolation{
				Field:  "platformKind",
				Reason: `unsupported platform "sourceforge", must be one of [github, gitlab, bitbucket, bitbucket-server, azure, gitea, forgejo, gerrit, codecommit, local]`,
			},
			config.FieldViolation{Field: "dryRunMode", Reason: `unsupported dry-run mode "maybe", must be one of [off, log, full]`},
			HaveField("Field", "targetRepositories[0]"),
			HaveField("Field", "rules[0].minStabilityDays"),
			HaveField("Field", "rules[0].matchUpdateTypes[1]"),
		))
	})

	It("rejects an empty repository list", func() {
		cfg.TargetRepositories = nil

		err := config.Validate(cfg)
		Expect(violations(err)).To(ConsistOf(HaveField("Field", "targetRepositories")))
	})

	It("checks the commit author only when set", func() {
		cfg.CommitAuthor = nil
		Expect(config.Validate(cfg)).To(Succeed())

		cfg.CommitAuthor = &config.CommitAuthor{Email: "bot@example.com"}
		Expect(violations(config.Validate(cfg))).To(ConsistOf(
			config.FieldViolation{Field: "commitAuthor.name", Reason: "is required"},
		))
	})

	DescribeTable("repository identifiers",
		func(repo string, valid bool) {
			cfg.TargetRepositories = []string{repo}
			err := config.Validate(cfg)
			if valid {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(violations(err)).To(ConsistOf(HaveField("Field", "targetRepositories[0]")))
		},
		Entry("owner/name", "robert-koch-institut/mex-common", true),
		Entry("nested group", "group/subgroup/project", true),
		Entry("dots and underscores", "my.org/my_repo.js", true),
		Entry("missing owner", "/repo", false),
		Entry("missing name", "owner/", false),
		Entry("single segment", "repo", false),
		Entry("whitespace", "owner/my repo", false),
		Entry("git suffix", "owner/repo.git", false),
		Entry("traversal", "owner/../repo", false),
		Entry("url", "https://github.com/owner/repo", false),
	)

	DescribeTable("branch prefixes",
		func(prefix string, valid bool) {
			Expect(config.ValidBranchPrefix(prefix)).To(Equal(valid))
		},
		Entry("default", "renovate/", true),
		Entry("preset", "test-renovate/", true),
		Entry("without slash", "deps-", true),
		Entry("nested", "bots/renovate/", true),
		Entry("empty", "", false),
		Entry("leading slash", "/renovate/", false),
		Entry("leading dash", "-renovate/", false),
		Entry("double dot", "re..novate/", false),
		Entry("double slash", "renovate//", false),
		Entry("space", "re novate/", false),
		Entry("colon", "renovate:", false),
		Entry("hidden component", "renovate/.deps/", false),
		Entry("lock suffix", "renovate.lock/", false),
		Entry("reflog syntax", "renovate@{1}/", false),
	)
})
