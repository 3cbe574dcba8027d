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

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Format identifies the dialect of a configuration document
type Format string

const (
	// FormatCanonical uses the field names of AutomationConfig
	FormatCanonical Format = "canonical"
	// FormatRenovate uses Renovate's own option names
	FormatRenovate Format = "renovate"
)

// renovateFields maps Renovate option names to canonical field names
var renovateFields = map[string]string{
	"branchPrefix": "branchPrefix",
	"username":     "username",
	"gitAuthor":    "commitAuthor",
	"onboarding":   "onboardingEnabled",
	"platform":     "platformKind",
	"includeForks": "includeForks",
	"dryRun":       "dryRunMode",
	"repositories": "targetRepositories",
	"packageRules": "rules",
}

var renovateRuleFields = map[string]string{
	"description":                 "description",
	"matchUpdateTypes":            "matchUpdateTypes",
	"dependencyDashboardApproval": "requiresDashboardApproval",
	"stabilityDays":               "minStabilityDays",
}

var canonicalToRenovate = invert(renovateFields, renovateRuleFields)

// Renovate's dryRun values; "extract" and "lookup" stop before any write
var renovateDryRun = map[string]DryRunMode{
	"extract": DryRunLog,
	"lookup":  DryRunLog,
	"full":    DryRunFull,
}

var jsModulePrefix = regexp.MustCompile(`^\s*(module\.exports\s*=|export\s+default)\s*`)

// RenovateConfig is the document read by Renovate itself
type RenovateConfig struct {
	BranchPrefix string                `json:"branchPrefix,omitempty"`
	Username     string                `json:"username,omitempty"`
	GitAuthor    string                `json:"gitAuthor,omitempty"`
	Onboarding   bool                  `json:"onboarding"`
	Platform     string                `json:"platform"`
	IncludeForks bool                  `json:"includeForks"`
	DryRun       *string               `json:"dryRun"`
	Repositories []string              `json:"repositories"`
	PackageRules []RenovatePackageRule `json:"packageRules"`
}

// RenovatePackageRule is one entry of Renovate's packageRules
type RenovatePackageRule struct {
	Description                 string   `json:"description,omitempty"`
	MatchUpdateTypes            []string `json:"matchUpdateTypes"`
	DependencyDashboardApproval bool     `json:"dependencyDashboardApproval"`
	StabilityDays               int      `json:"stabilityDays"`
}

// LoadRenovate loads a document written with Renovate's option names, either
// as YAML/JSON or as a "module.exports = {...};" JavaScript literal.
// An absent dryRun means off, absent packageRules means no rules and a rule
// without matchUpdateTypes matches every update type.
func LoadRenovate(raw []byte) (AutomationConfig, error) {
	root, err := parseDocument(StripJSModule(raw))
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) && schemaErr.Err != nil && isJSModule(raw) {
			schemaErr.Reason = "malformed object literal, only plain literals without expressions are supported"
		}
		return AutomationConfig{}, err
	}
	canonical, err := fromRenovateNode(root)
	if err != nil {
		return AutomationConfig{}, err
	}
	fillRenovateDefaults(canonical)

	cfg, err := loadNode(canonical)
	if err != nil {
		return AutomationConfig{}, renovatePaths(err)
	}
	return cfg, nil
}

// DetectFormat reports which dialect raw is written in
func DetectFormat(raw []byte) Format {
	if isJSModule(raw) {
		return FormatRenovate
	}
	root, err := parseDocument(raw)
	if err != nil {
		return FormatCanonical
	}
	return detectNodeFormat(root)
}

func detectNodeFormat(root *yaml.Node) Format {
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if canonical, ok := renovateFields[name]; ok && canonical != name {
			return FormatRenovate
		}
	}
	return FormatCanonical
}

// StripJSModule turns a CommonJS or ES module exporting an object literal into
// the bare literal, which the YAML flow syntax can read. Comments are blanked
// out so line numbers stay those of the module. Other input is returned
// unchanged.
func StripJSModule(raw []byte) []byte {
	src := stripJSComments(raw)
	loc := jsModulePrefix.FindIndex(src)
	if loc == nil {
		return raw
	}

	out := make([]byte, 0, len(src))
	out = append(out, bytes.Repeat([]byte("\n"), bytes.Count(src[:loc[1]], []byte("\n")))...)
	out = append(out, src[loc[1]:]...)
	out = bytes.TrimRightFunc(out, unicode.IsSpace)
	return bytes.TrimSuffix(out, []byte(";"))
}

func isJSModule(raw []byte) bool {
	return jsModulePrefix.Match(stripJSComments(raw))
}

// stripJSComments replaces line and block comments outside string literals
// with spaces, keeping newlines
func stripJSComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
			out = append(out, c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				out = append(out, ' ')
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				end = len(src) - i - 2
			} else {
				end += 2
			}
			for _, b := range src[i : i+2+end] {
				if b == '\n' {
					out = append(out, '\n')
				} else {
					out = append(out, ' ')
				}
			}
			i += 1 + end
		default:
			out = append(out, c)
		}
	}
	return out
}

// fromRenovateNode returns a copy of root with Renovate option names renamed
// to canonical field names. Unknown options are reported with their own name.
func fromRenovateNode(root *yaml.Node) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: root.Line, Column: root.Column}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := resolve(root.Content[i]), resolve(root.Content[i+1])
		name, ok := renovateFields[key.Value]
		if !ok {
			return nil, &SchemaError{Field: key.Value, Line: key.Line, Reason: "unknown field"}
		}

		switch name {
		case "dryRunMode":
			converted, err := renovateDryRunNode(value)
			if err != nil {
				return nil, err
			}
			value = converted
		case "rules":
			converted, err := renovateRulesNode(value)
			if err != nil {
				return nil, err
			}
			value = converted
		}
		out.Content = append(out.Content, renamedKey(key, name), value)
	}
	return out, nil
}

func renovateRulesNode(n *yaml.Node) (*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return n, nil
	}

	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: n.Line, Column: n.Column}
	for i, item := range n.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			out.Content = append(out.Content, item)
			continue
		}

		rule := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: item.Line, Column: item.Column}
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, value := resolve(item.Content[j]), item.Content[j+1]
			name, ok := renovateRuleFields[key.Value]
			if !ok {
				return nil, &SchemaError{
					Field:  fmt.Sprintf("packageRules[%d].%s", i, key.Value),
					Line:   key.Line,
					Reason: "unknown field",
				}
			}
			rule.Content = append(rule.Content, renamedKey(key, name), value)
		}
		out.Content = append(out.Content, rule)
	}
	return out, nil
}

// renovateDryRunNode maps Renovate dryRun values onto DryRunMode; null is off
func renovateDryRunNode(n *yaml.Node) (*yaml.Node, error) {
	if n.Kind != yaml.ScalarNode {
		return n, nil
	}
	switch n.ShortTag() {
	case tagNull:
		return scalar(string(DryRunOff), n.Line), nil
	case tagString:
		if mode, ok := renovateDryRun[n.Value]; ok {
			return scalar(string(mode), n.Line), nil
		}
	}
	return n, nil
}

// fillRenovateDefaults adds the values Renovate assumes for absent options
func fillRenovateDefaults(root *yaml.Node) {
	if !hasField(root, "dryRunMode") {
		setField(root, "dryRunMode", scalar(string(DryRunOff), root.Line))
	}
	if !hasField(root, "rules") {
		setField(root, "rules", &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: root.Line})
	}

	rules := lookupField(root, "rules")
	if rules == nil || rules.Kind != yaml.SequenceNode {
		return
	}
	for _, rule := range rules.Content {
		if rule.Kind != yaml.MappingNode {
			continue
		}
		if !hasField(rule, "matchUpdateTypes") {
			all := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: rule.Line}
			for _, t := range updateTypes {
				all.Content = append(all.Content, scalar(string(t), rule.Line))
			}
			setField(rule, "matchUpdateTypes", all)
		}
		if !hasField(rule, "requiresDashboardApproval") {
			setField(rule, "requiresDashboardApproval", &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: "false", Line: rule.Line})
		}
		if !hasField(rule, "minStabilityDays") {
			setField(rule, "minStabilityDays", &yaml.Node{Kind: yaml.ScalarNode, Tag: tagInt, Value: "0", Line: rule.Line})
		}
	}
}

// ToRenovate converts cfg into the document Renovate reads
func ToRenovate(cfg AutomationConfig) RenovateConfig {
	out := RenovateConfig{
		BranchPrefix: cfg.BranchPrefix,
		Username:     cfg.Username,
		Onboarding:   cfg.OnboardingEnabled,
		Platform:     string(cfg.PlatformKind),
		IncludeForks: cfg.IncludeForks,
		Repositories: append([]string{}, cfg.TargetRepositories...),
		PackageRules: make([]RenovatePackageRule, 0, len(cfg.Rules)),
	}
	if cfg.CommitAuthor != nil {
		out.GitAuthor = cfg.CommitAuthor.String()
	}
	switch cfg.DryRunMode {
	case DryRunLog:
		mode := "lookup"
		out.DryRun = &mode
	case DryRunFull:
		mode := "full"
		out.DryRun = &mode
	}

	for _, rule := range cfg.Rules {
		types := make([]string, len(rule.MatchUpdateTypes))
		for i, t := range rule.MatchUpdateTypes {
			types[i] = string(t)
		}
		out.PackageRules = append(out.PackageRules, RenovatePackageRule{
			Description:                 rule.Description,
			MatchUpdateTypes:            types,
			DependencyDashboardApproval: rule.RequiresDashboardApproval,
			StabilityDays:               rule.MinStabilityDays,
		})
	}
	return out
}

// RenderJSON renders cfg as a renovate.json document
func RenderJSON(cfg AutomationConfig) ([]byte, error) {
	return marshalRenovate(cfg, "  ")
}

// RenderJS renders cfg as a CommonJS module, the layout of config.js files
// passed to Renovate with RENOVATE_CONFIG_FILE
func RenderJS(cfg AutomationConfig) ([]byte, error) {
	data, err := marshalRenovate(cfg, "    ")
	if err != nil {
		return nil, err
	}
	return []byte("module.exports = " + strings.TrimSuffix(string(data), "\n") + ";\n"), nil
}

// marshalRenovate keeps "<" and ">" of gitAuthor readable
func marshalRenovate(cfg AutomationConfig, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(ToRenovate(cfg)); err != nil {
		return nil, fmt.Errorf("failed to marshal renovate config: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderYAML renders cfg with canonical field names
func RenderYAML(cfg AutomationConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// renovatePaths rewrites canonical field paths in err with Renovate option names
func renovatePaths(err error) error {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		out := *schemaErr
		out.Field = renovatePath(schemaErr.Field)
		return &out
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		out := &ValidationError{}
		for _, v := range validationErr.Violations {
			out.add(renovatePath(v.Field), v.Reason)
		}
		return out
	}
	return err
}

func renovatePath(path string) string {
	if path == "" {
		return path
	}
	parts := strings.Split(path, ".")
	for i, part := range parts {
		name, index, _ := strings.Cut(part, "[")
		if native, ok := canonicalToRenovate[name]; ok {
			name = native
		}
		if index != "" {
			name += "[" + index
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}

func invert(tables ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, table := range tables {
		for native, canonical := range table {
			out[canonical] = native
		}
	}
	return out
}

func renamedKey(key *yaml.Node, name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagString, Value: name, Line: key.Line, Column: key.Column}
}

func scalar(value string, line int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagString, Value: value, Line: line}
}

func lookupField(n *yaml.Node, name string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == name {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

func hasField(n *yaml.Node, name string) bool {
	v := lookupField(n, name)
	return v != nil && v.ShortTag() != tagNull
}

// setField replaces the value of name, adding the field when it is absent
func setField(n *yaml.Node, name string, value *yaml.Node) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == name {
			n.Content[i+1] = value
			return
		}
	}
	n.Content = append(n.Content, scalar(name, value.Line), value)
}
