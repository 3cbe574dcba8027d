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
	"fmt"
	"slices"
	"strings"
)

// PlatformKind identifies the source-control hosting platform
type PlatformKind string

const (
	PlatformGitHub          PlatformKind = "github"
	PlatformGitLab          PlatformKind = "gitlab"
	PlatformBitbucket       PlatformKind = "bitbucket"
	PlatformBitbucketServer PlatformKind = "bitbucket-server"
	PlatformAzure           PlatformKind = "azure"
	PlatformGitea           PlatformKind = "gitea"
	PlatformForgejo         PlatformKind = "forgejo"
	PlatformGerrit          PlatformKind = "gerrit"
	PlatformCodeCommit      PlatformKind = "codecommit"
	PlatformLocal           PlatformKind = "local"
)

var platformKinds = []PlatformKind{
	PlatformGitHub,
	PlatformGitLab,
	PlatformBitbucket,
	PlatformBitbucketServer,
	PlatformAzure,
	PlatformGitea,
	PlatformForgejo,
	PlatformGerrit,
	PlatformCodeCommit,
	PlatformLocal,
}

// PlatformKinds returns the supported platforms
func PlatformKinds() []PlatformKind {
	return slices.Clone(platformKinds)
}

// IsValid reports whether p is a supported platform
func (p PlatformKind) IsValid() bool {
	return slices.Contains(platformKinds, p)
}

// ParsePlatformKind converts s into a PlatformKind
func ParsePlatformKind(s string) (PlatformKind, error) {
	p := PlatformKind(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unsupported platform %q, must be one of [%s]", s, joinValues(platformKinds))
	}
	return p, nil
}

// DryRunMode controls whether the automation applies real mutations
type DryRunMode string

const (
	// DryRunOff applies changes
	DryRunOff DryRunMode = "off"
	// DryRunLog only logs what would change
	DryRunLog DryRunMode = "log"
	// DryRunFull simulates the whole run without mutating anything
	DryRunFull DryRunMode = "full"
)

var dryRunModes = []DryRunMode{DryRunOff, DryRunLog, DryRunFull}

var dryRunAliases = map[string]DryRunMode{
	"log-only":        DryRunLog,
	"full-simulation": DryRunFull,
}

// DryRunModes returns the supported dry-run modes
func DryRunModes() []DryRunMode {
	return slices.Clone(dryRunModes)
}

// IsValid reports whether m is a supported dry-run mode
func (m DryRunMode) IsValid() bool {
	return slices.Contains(dryRunModes, m)
}

// ParseDryRunMode converts s into a DryRunMode, accepting the long aliases
// "log-only" and "full-simulation"
func ParseDryRunMode(s string) (DryRunMode, error) {
	if m, ok := dryRunAliases[s]; ok {
		return m, nil
	}
	m := DryRunMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unsupported dry-run mode %q, must be one of [%s]", s, joinValues(dryRunModes))
	}
	return m, nil
}

// UpdateType is the category of a dependency version bump
type UpdateType string

const (
	UpdatePin                 UpdateType = "pin"
	UpdateDigest              UpdateType = "digest"
	UpdatePatch               UpdateType = "patch"
	UpdateMinor               UpdateType = "minor"
	UpdateMajor               UpdateType = "major"
	UpdateLockFileMaintenance UpdateType = "lockFileMaintenance"
)

var updateTypes = []UpdateType{
	UpdatePin,
	UpdateDigest,
	UpdatePatch,
	UpdateMinor,
	UpdateMajor,
	UpdateLockFileMaintenance,
}

// UpdateTypes returns every update type in canonical order
func UpdateTypes() []UpdateType {
	return slices.Clone(updateTypes)
}

// IsValid reports whether t is a known update type
func (t UpdateType) IsValid() bool {
	return slices.Contains(updateTypes, t)
}

// ParseUpdateType converts s into an UpdateType
func ParseUpdateType(s string) (UpdateType, error) {
	t := UpdateType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unsupported update type %q, must be one of [%s]", s, joinValues(updateTypes))
	}
	return t, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
