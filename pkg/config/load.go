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
	"errors"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagString = "!!str"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagNull   = "!!null"
)

// decimalPattern matches integers YAML resolves to !!float when they overflow int64
var decimalPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)

var (
	requiredFields     = []string{"platformKind", "dryRunMode", "targetRepositories", "rules"}
	requiredRuleFields = []string{"matchUpdateTypes", "requiresDashboardApproval", "minStabilityDays"}
)

// Load parses a YAML or JSON document into an AutomationConfig.
// Structural problems are reported as *SchemaError, semantic ones as
// *ValidationError. Load has no side effects.
func Load(raw []byte) (AutomationConfig, error) {
	root, err := parseDocument(raw)
	if err != nil {
		return AutomationConfig{}, err
	}
	return loadNode(root)
}

// LoadMap loads an in-memory object literal, such as a decoded JSON object
func LoadMap(m map[string]any) (AutomationConfig, error) {
	if m == nil {
		return AutomationConfig{}, &SchemaError{Reason: "document is empty"}
	}
	raw, err := yaml.Marshal(m)
	if err != nil {
		return AutomationConfig{}, &SchemaError{Reason: "cannot encode object", Err: err}
	}
	return Load(raw)
}

func loadNode(root *yaml.Node) (AutomationConfig, error) {
	cfg, err := decodeConfig(root)
	if err != nil {
		return AutomationConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return AutomationConfig{}, err
	}
	return cfg, nil
}

// parseDocument returns the top-level mapping of a single YAML document
func parseDocument(raw []byte) (*yaml.Node, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Reason: "document is empty"}
		}
		return nil, &SchemaError{Reason: "malformed document", Err: err}
	}

	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, &SchemaError{Reason: "multiple documents or trailing content"}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolve(root)
	if root.Kind != yaml.MappingNode {
		return nil, &SchemaError{Line: root.Line, Reason: fmt.Sprintf("document must be a mapping, got %s", kindOf(root))}
	}
	return root, nil
}

func decodeConfig(root *yaml.Node) (AutomationConfig, error) {
	var cfg AutomationConfig

	present, err := walkMapping(root, "", func(name, path string, key, value *yaml.Node) error {
		var err error
		switch name {
		case "branchPrefix":
			cfg.BranchPrefix, err = decodeString(value, path)
		case "username":
			cfg.Username, err = decodeString(value, path)
		case "commitAuthor":
			cfg.CommitAuthor, err = decodeCommitAuthor(value, path)
		case "onboardingEnabled":
			cfg.OnboardingEnabled, err = decodeBool(value, path)
		case "platformKind":
			cfg.PlatformKind, err = decodeEnum(value, path, ParsePlatformKind)
		case "includeForks":
			cfg.IncludeForks, err = decodeBool(value, path)
		case "dryRunMode":
			cfg.DryRunMode, err = decodeDryRunMode(value, path)
		case "targetRepositories":
			cfg.TargetRepositories, err = decodeStrings(value, path)
		case "rules":
			cfg.Rules, err = decodeRules(value, path)
		default:
			err = &SchemaError{Field: path, Line: key.Line, Reason: "unknown field"}
		}
		return err
	})
	if err != nil {
		return AutomationConfig{}, err
	}

	if err := requireFields(root, "", present, requiredFields); err != nil {
		return AutomationConfig{}, err
	}
	if !present["branchPrefix"] {
		cfg.BranchPrefix = DefaultBranchPrefix
	}
	return cfg, nil
}

func decodeRules(n *yaml.Node, path string) ([]UpdateRule, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	rules := make([]UpdateRule, 0, len(items))
	for i, item := range items {
		rule, err := decodeRule(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func decodeRule(n *yaml.Node, path string) (UpdateRule, error) {
	var rule UpdateRule
	if err := expectKind(n, path, yaml.MappingNode); err != nil {
		return rule, err
	}

	present, err := walkMapping(n, path, func(name, fieldPath string, key, value *yaml.Node) error {
		var err error
		switch name {
		case "description":
			rule.Description, err = decodeString(value, fieldPath)
		case "matchUpdateTypes":
			rule.MatchUpdateTypes, err = decodeUpdateTypes(value, fieldPath)
		case "requiresDashboardApproval":
			rule.RequiresDashboardApproval, err = decodeBool(value, fieldPath)
		case "minStabilityDays":
			rule.MinStabilityDays, err = decodeInt(value, fieldPath)
		default:
			err = &SchemaError{Field: fieldPath, Line: key.Line, Reason: "unknown field"}
		}
		return err
	})
	if err != nil {
		return rule, err
	}
	return rule, requireFields(n, path, present, requiredRuleFields)
}

func decodeUpdateTypes(n *yaml.Node, path string) ([]UpdateType, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	types := make([]UpdateType, 0, len(items))
	for i, item := range items {
		t, err := decodeEnum(item, fmt.Sprintf("%s[%d]", path, i), ParseUpdateType)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// decodeCommitAuthor accepts either a {name, email} mapping or an
// RFC 5322 "Name <email>" string
func decodeCommitAuthor(n *yaml.Node, path string) (*CommitAuthor, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagString {
		author, err := ParseCommitAuthor(n.Value)
		if err != nil {
			return nil, &SchemaError{Field: path, Line: n.Line, Reason: "expected \"Name <email>\"", Err: err}
		}
		return author, nil
	}
	if err := expectKind(n, path, yaml.MappingNode); err != nil {
		return nil, err
	}

	author := &CommitAuthor{}
	present, err := walkMapping(n, path, func(name, fieldPath string, key, value *yaml.Node) error {
		var err error
		switch name {
		case "name":
			author.Name, err = decodeString(value, fieldPath)
		case "email":
			author.Email, err = decodeString(value, fieldPath)
		default:
			err = &SchemaError{Field: fieldPath, Line: key.Line, Reason: "unknown field"}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := requireFields(n, path, present, []string{"name", "email"}); err != nil {
		return nil, err
	}
	return author, nil
}

// ParseCommitAuthor parses an RFC 5322 address such as "Renovate Bot <bot@renovateapp.com>"
func ParseCommitAuthor(s string) (*CommitAuthor, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return &CommitAuthor{Name: addr.Name, Email: addr.Address}, nil
}

// decodeDryRunMode also accepts booleans: false is off, true is full
func decodeDryRunMode(n *yaml.Node, path string) (DryRunMode, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagBool {
		on, err := decodeBool(n, path)
		if err != nil {
			return "", err
		}
		if on {
			return DryRunFull, nil
		}
		return DryRunOff, nil
	}
	return decodeEnum(n, path, ParseDryRunMode)
}

func decodeEnum[T ~string](n *yaml.Node, path string, parse func(string) (T, error)) (T, error) {
	s, err := decodeString(n, path)
	if err != nil {
		return "", err
	}
	v, err := parse(s)
	if err != nil {
		return "", &SchemaError{Field: path, Line: n.Line, Reason: err.Error()}
	}
	return v, nil
}

func decodeStrings(n *yaml.Node, path string) ([]string, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := decodeString(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeString(n *yaml.Node, path string) (string, error) {
	if err := expectScalar(n, path, tagString, "a string"); err != nil {
		return "", err
	}
	return n.Value, nil
}

func decodeBool(n *yaml.Node, path string) (bool, error) {
	if err := expectScalar(n, path, tagBool, "a boolean"); err != nil {
		return false, err
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, &SchemaError{Field: path, Line: n.Line, Reason: "expected a boolean", Err: err}
	}
	return b, nil
}

func decodeInt(n *yaml.Node, path string) (int, error) {
	outOfRange := &SchemaError{Field: path, Line: n.Line, Reason: fmt.Sprintf("integer %s is out of range", n.Value)}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagFloat && decimalPattern.MatchString(n.Value) {
		return 0, outOfRange
	}
	if err := expectScalar(n, path, tagInt, "an integer"); err != nil {
		return 0, err
	}
	var i int
	if err := n.Decode(&i); err != nil {
		outOfRange.Err = err
		return 0, outOfRange
	}
	return i, nil
}

func sequence(n *yaml.Node, path string) ([]*yaml.Node, error) {
	if err := expectKind(n, path, yaml.SequenceNode); err != nil {
		return nil, err
	}
	items := make([]*yaml.Node, len(n.Content))
	for i, item := range n.Content {
		items[i] = resolve(item)
	}
	return items, nil
}

// walkMapping calls fn for every non-null entry of a mapping and returns the
// set of fields present. Duplicate and non-string keys are schema errors.
func walkMapping(n *yaml.Node, path string, fn func(name, fieldPath string, key, value *yaml.Node) error) (map[string]bool, error) {
	present := map[string]bool{}
	seen := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := resolve(n.Content[i]), resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.ShortTag() != tagString {
			return nil, &SchemaError{Field: path, Line: key.Line, Reason: fmt.Sprintf("field names must be strings, got %s", kindOf(key))}
		}

		name := key.Value
		fieldPath := joinPath(path, name)
		if seen[name] {
			return nil, &SchemaError{Field: fieldPath, Line: key.Line, Reason: "duplicate field"}
		}
		seen[name] = true

		if value.ShortTag() == tagNull {
			continue
		}
		present[name] = true
		if err := fn(name, fieldPath, key, value); err != nil {
			return nil, err
		}
	}
	return present, nil
}

func requireFields(n *yaml.Node, path string, present map[string]bool, fields []string) error {
	for _, name := range fields {
		if !present[name] {
			return &SchemaError{Field: joinPath(path, name), Line: n.Line, Reason: "required field is missing"}
		}
	}
	return nil
}

func expectKind(n *yaml.Node, path string, kind yaml.Kind) error {
	if n.Kind == kind {
		return nil
	}
	want := map[yaml.Kind]string{
		yaml.MappingNode:  "a mapping",
		yaml.SequenceNode: "a list",
	}[kind]
	return &SchemaError{Field: path, Line: n.Line, Reason: fmt.Sprintf("expected %s, got %s", want, kindOf(n))}
}

func expectScalar(n *yaml.Node, path, tag, want string) error {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tag {
		return nil
	}
	return &SchemaError{Field: path, Line: n.Line, Reason: fmt.Sprintf("expected %s, got %s", want, kindOf(n))}
}

func kindOf(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q", strings.TrimPrefix(n.ShortTag(), "!!"), n.Value)
	default:
		return "an unsupported node"
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
