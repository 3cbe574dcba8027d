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

// Package config provides the Renovate automation configuration schema,
// its loader and its validator
package config

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode"
)

// DefaultBranchPrefix is applied when a document does not set branchPrefix
const DefaultBranchPrefix = "renovate/"

// AutomationConfig represents the complete configuration handed to the
// external dependency-update automation. A loaded value is read-only; use
// Clone to obtain an independent copy before changing it.
type AutomationConfig struct {
	// BranchPrefix namespaces all branches the automation creates (e.g. "renovate/")
	BranchPrefix string `yaml:"branchPrefix" json:"branchPrefix" validate:"required,branchprefix"`
	// Username is the identity used for authentication and attribution
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	// CommitAuthor is attached to generated commits
	CommitAuthor *CommitAuthor `yaml:"commitAuthor,omitempty" json:"commitAuthor,omitempty" validate:"omitempty"`
	// OnboardingEnabled controls whether the first-run setup flow is triggered
	OnboardingEnabled bool `yaml:"onboardingEnabled" json:"onboardingEnabled"`
	// PlatformKind identifies the source-control hosting platform
	PlatformKind PlatformKind `yaml:"platformKind" json:"platformKind" validate:"platform"`
	// IncludeForks controls whether forked repositories are processed
	IncludeForks bool `yaml:"includeForks" json:"includeForks"`
	// DryRunMode controls whether real mutations occur
	DryRunMode DryRunMode `yaml:"dryRunMode" json:"dryRunMode" validate:"dryrun"`
	// TargetRepositories lists the owner/name repositories this configuration applies to
	TargetRepositories []string `yaml:"targetRepositories" json:"targetRepositories" validate:"min=1,unique,dive,repository"`
	// Rules are evaluated in order by the consumer
	Rules []UpdateRule `yaml:"rules" json:"rules" validate:"dive"`
}

// CommitAuthor identifies the author of generated commits
type CommitAuthor struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Email string `yaml:"email" json:"email" validate:"required,email"`
}

// String renders the author as an RFC 5322 address, "Name <email>". The
// name is quoted only when it is not a plain sequence of words.
func (a CommitAuthor) String() string {
	addr := mail.Address{Name: a.Name, Address: a.Email}
	if !plainPhrase(a.Name) {
		return addr.String()
	}
	addr.Name = ""
	return a.Name + " " + addr.String()
}

// plainPhrase reports whether name parses back unchanged without quotes
func plainPhrase(name string) bool {
	if name == "" || strings.TrimSpace(name) != name || strings.Contains(name, "  ") {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(" !#$%&'*+-/=?^_`{|}~", r) {
			return false
		}
	}
	return true
}

// UpdateRule describes how a set of update types is batched and approved
type UpdateRule struct {
	// Description is a free-text label
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// MatchUpdateTypes is the set of update types this rule applies to
	MatchUpdateTypes []UpdateType `yaml:"matchUpdateTypes" json:"matchUpdateTypes" validate:"min=1,unique,dive,updatetype"`
	// RequiresDashboardApproval gates the rule's changes behind manual confirmation
	RequiresDashboardApproval bool `yaml:"requiresDashboardApproval" json:"requiresDashboardApproval"`
	// MinStabilityDays is the minimum release age in days; 0 means no waiting period
	MinStabilityDays int `yaml:"minStabilityDays" json:"minStabilityDays" validate:"gte=0"`
}

// Matches reports whether the rule applies to the given update type
func (r UpdateRule) Matches(t UpdateType) bool {
	return slices.Contains(r.MatchUpdateTypes, t)
}

// Clone returns a deep copy of the configuration
func (c AutomationConfig) Clone() AutomationConfig {
	out := c
	if c.CommitAuthor != nil {
		author := *c.CommitAuthor
		out.CommitAuthor = &author
	}
	out.TargetRepositories = slices.Clone(c.TargetRepositories)
	if c.Rules != nil {
		out.Rules = make([]UpdateRule, len(c.Rules))
		for i, rule := range c.Rules {
			rule.MatchUpdateTypes = slices.Clone(rule.MatchUpdateTypes)
			out.Rules[i] = rule
		}
	}
	return out
}

// IsDryRun reports whether the automation must not apply any change
func (c AutomationConfig) IsDryRun() bool {
	return c.DryRunMode != DryRunOff
}

// String implements fmt.Stringer interface for better debugging experience
func (c AutomationConfig) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("AutomationConfig{platform: %s, dryRun: %s, repositories: %v, rules: %d}",
			c.PlatformKind, c.DryRunMode, c.TargetRepositories, len(c.Rules))
	}
	return string(data)
}
