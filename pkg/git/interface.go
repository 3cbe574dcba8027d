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

// RemoteReader reads the remote a working copy tracks
type RemoteReader interface {
	// GetRepoURL returns the URL of the origin remote
	GetRepoURL() (string, error)

	// GetCurrentBranch returns the current branch name
	GetCurrentBranch() (string, error)
}
