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

package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

// ErrNotAnUpdate is returned when the target version is not newer than the current one
var ErrNotAnUpdate = errors.New("target version is not newer than the current version")

var (
	imageDigestPattern = regexp.MustCompile(`^sha256:[a-f0-9]{64}$`)
	commitPattern      = regexp.MustCompile(`^[a-f0-9]{7,40}$`)
)

// ClassifyUpdate returns the update type of a bump from "from" to "to":
//   - digest when both sides are commit or image digests
//   - pin when "from" is a range (e.g. "^1.2.0") and "to" an exact version inside it
//   - major, minor or patch by the first semantic version component that changed
func ClassifyUpdate(from, to string) (config.UpdateType, error) {
	if from == "" || to == "" {
		return "", errors.New("both the current and the target version are required")
	}

	if IsDigest(from) && IsDigest(to) {
		if from == to {
			return "", ErrNotAnUpdate
		}
		return config.UpdateDigest, nil
	}

	target, err := semver.NewVersion(normalize(to))
	if err != nil {
		return "", fmt.Errorf("invalid target version %q: %w", to, err)
	}

	current, err := semver.NewVersion(normalize(from))
	if err != nil {
		constraint, constraintErr := semver.NewConstraint(from)
		if constraintErr != nil {
			return "", fmt.Errorf("invalid current version %q: %w", from, err)
		}
		if !constraint.Check(target) {
			return "", fmt.Errorf("version %q is outside the range %q", to, from)
		}
		return config.UpdatePin, nil
	}

	if CompareVersions(to, from) <= 0 {
		return "", ErrNotAnUpdate
	}
	switch {
	case target.Major() != current.Major():
		return config.UpdateMajor, nil
	case target.Minor() != current.Minor():
		return config.UpdateMinor, nil
	default:
		return config.UpdatePatch, nil
	}
}

// IsDigest reports whether s looks like a commit SHA or an image digest.
// An abbreviated SHA must contain a hex letter so that date versions such
// as "20240101" stay versions.
func IsDigest(s string) bool {
	if imageDigestPattern.MatchString(s) {
		return true
	}
	if !commitPattern.MatchString(s) {
		return false
	}
	return len(s) == 40 || strings.ContainsAny(s, "abcdef")
}
