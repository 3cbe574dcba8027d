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

package git

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentPattern matches one path segment of a repository identifier as
// accepted by GitHub, GitLab and Bitbucket
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Repository represents a Git repository with its owner and name.
// Owner may contain nested GitLab groups ("group/subgroup").
type Repository struct {
	// Host is the platform host name, empty for bare identifiers
	Host  string
	Owner string
	Name  string
}

// String returns the repository in the format "owner/name".
func (r Repository) String() string {
	return strings.Trim(r.Owner+"/"+r.Name, "/")
}

// ParseRepository parses an "owner/name" identifier such as
// "robert-koch-institut/mex-common". Nested owners ("group/subgroup/name")
// are accepted.
func ParseRepository(id string) (Repository, error) {
	if id == "" {
		return Repository{}, fmt.Errorf("repository identifier is empty")
	}

	segments := strings.Split(id, "/")
	if len(segments) < 2 {
		return Repository{}, fmt.Errorf("repository identifier %q must have the form owner/name", id)
	}
	for _, segment := range segments {
		if segment == "" {
			return Repository{}, fmt.Errorf("repository identifier %q has an empty path segment", id)
		}
		if segment == "." || segment == ".." || !segmentPattern.MatchString(segment) {
			return Repository{}, fmt.Errorf("repository identifier %q has an invalid path segment %q", id, segment)
		}
	}

	name := segments[len(segments)-1]
	if strings.HasSuffix(name, ".git") {
		return Repository{}, fmt.Errorf("repository identifier %q must not end with .git", id)
	}

	return Repository{
		Owner: strings.Join(segments[:len(segments)-1], "/"),
		Name:  name,
	}, nil
}
