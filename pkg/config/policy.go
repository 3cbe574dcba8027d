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

// Policy is the outcome of folding the rules that match one update type
type Policy struct {
	// UpdateType is the update type the policy was computed for
	UpdateType UpdateType `json:"updateType"`
	// Matched is false when no rule applies
	Matched bool `json:"matched"`
	// Rules holds the indices of the matching rules in evaluation order
	Rules []int `json:"rules,omitempty"`
	// Descriptions of the matching rules, in evaluation order
	Descriptions              []string `json:"descriptions,omitempty"`
	RequiresDashboardApproval bool     `json:"requiresDashboardApproval"`
	MinStabilityDays          int      `json:"minStabilityDays"`
}

// EffectivePolicy evaluates the rules in order for t. A later matching rule
// overrides the fields set by an earlier one.
func (c AutomationConfig) EffectivePolicy(t UpdateType) Policy {
	p := Policy{UpdateType: t}
	for i, rule := range c.Rules {
		if !rule.Matches(t) {
			continue
		}
		p.Matched = true
		p.Rules = append(p.Rules, i)
		if rule.Description != "" {
			p.Descriptions = append(p.Descriptions, rule.Description)
		}
		p.RequiresDashboardApproval = rule.RequiresDashboardApproval
		p.MinStabilityDays = rule.MinStabilityDays
	}
	return p
}

// Policies returns the effective policy of every update type in canonical order
func (c AutomationConfig) Policies() []Policy {
	policies := make([]Policy, 0, len(updateTypes))
	for _, t := range updateTypes {
		policies = append(policies, c.EffectivePolicy(t))
	}
	return policies
}
