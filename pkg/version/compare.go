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

// Package version compares release versions and classifies the update type
// of a version bump
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings and returns:
// -1 if version1 < version2
//
//	0 if version1 == version2
//	1 if version1 > version2
//
// A "v" prefix is ignored and short versions ("1", "1.2") are padded.
// Versions that are not semantic versions are compared lexicographically.
func CompareVersions(version1, version2 string) int {
	switch {
	case version1 == "" && version2 == "":
		return 0
	case version1 == "":
		return -1
	case version2 == "":
		return 1
	}

	v1 := normalize(version1)
	v2 := normalize(version2)

	semVer1, err1 := semver.NewVersion(v1)
	semVer2, err2 := semver.NewVersion(v2)
	if err1 == nil && err2 == nil {
		return semVer1.Compare(semVer2)
	}

	return strings.Compare(v1, v2)
}

// GetHighestVersion returns the highest version from a slice of version strings
// Returns empty string if the slice is empty
func GetHighestVersion(versions ...string) string {
	if len(versions) == 0 {
		return ""
	}

	highest := versions[0]
	for _, v := range versions[1:] {
		if CompareVersions(v, highest) > 0 {
			highest = v
		}
	}
	return highest
}

// normalize strips the "v" prefix and pads "1" and "1.2" to three parts
func normalize(version string) string {
	normalized := strings.TrimPrefix(version, "v")

	core, suffix := normalized, ""
	if i := strings.IndexAny(normalized, "-+"); i >= 0 {
		core, suffix = normalized[:i], normalized[i:]
	}

	switch strings.Count(core, ".") {
	case 0:
		core += ".0.0"
	case 1:
		core += ".0"
	}
	return core + suffix
}
