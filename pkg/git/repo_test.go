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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRepository_String(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		repo  string
		want  string
	}{
		{name: "simple alphanumeric", owner: "owner", repo: "project", want: "owner/project"},
		{name: "with dashes", owner: "my-org", repo: "test-repo", want: "my-org/test-repo"},
		{name: "with subgroup", owner: "my-org/subgroup", repo: "test-repo", want: "my-org/subgroup/test-repo"},
		{name: "with underscores", owner: "my_org", repo: "test_repo", want: "my_org/test_repo"},
		{name: "empty owner", owner: "", repo: "repo", want: "repo"},
		{name: "empty repo", owner: "group", repo: "", want: "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Repository{Owner: tt.owner, Name: tt.repo}
			if got := r.String(); got != tt.want {
				t.Errorf("Repository.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		id      string
		want    Repository
		wantErr bool
	}{
		{id: "org/repo", want: Repository{Owner: "org", Name: "repo"}},
		{id: "robert-koch-institut/mex-common", want: Repository{Owner: "robert-koch-institut", Name: "mex-common"}},
		{id: "group/subgroup/repo", want: Repository{Owner: "group/subgroup", Name: "repo"}},
		{id: "my_org/repo.js", want: Repository{Owner: "my_org", Name: "repo.js"}},
		{id: "", wantErr: true},
		{id: "repo", wantErr: true},
		{id: "org/", wantErr: true},
		{id: "/repo", wantErr: true},
		{id: "org//repo", wantErr: true},
		{id: "org/repo.git", wantErr: true},
		{id: "org/re po", wantErr: true},
		{id: "org/..", wantErr: true},
		{id: "https://github.com/org/repo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseRepository(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRepository(%q) error = nil, wantErr = true", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepository(%q) unexpected error = %v", tt.id, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRepository(%q) diff = %v", tt.id, diff)
			}
		})
	}
}
