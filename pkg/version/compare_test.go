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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompareVersions", func() {
	DescribeTable("orders versions",
		func(a, b string, expected int) {
			Expect(CompareVersions(a, b)).To(Equal(expected))
			Expect(CompareVersions(b, a)).To(Equal(-expected))
		},
		Entry("patch", "1.0.0", "1.0.1", -1),
		Entry("major", "2.0.0", "1.9.9", 1),
		Entry("equal", "1.4.2", "1.4.2", 0),
		Entry("v prefix on one side", "v1.0.0", "1.0.1", -1),
		Entry("short version padded", "1.2", "1.2.0", 0),
		Entry("single component", "3", "2.9.9", 1),
		Entry("pre-release before release", "1.0.0-rc.1", "1.0.0", -1),
		Entry("pre-releases ordered", "1.0.0-alpha", "1.0.0-beta", -1),
		Entry("date versions", "20250101", "20240101", 1),
		Entry("empty before anything", "", "0.0.1", -1),
		Entry("both empty", "", "", 0),
		Entry("non-semver falls back to text order", "release-a", "release-b", -1),
	)
})

var _ = Describe("GetHighestVersion", func() {
	It("returns an empty string without candidates", func() {
		Expect(GetHighestVersion()).To(BeEmpty())
	})

	It("keeps the spelling of the highest candidate", func() {
		Expect(GetHighestVersion("1.4.3", "v1.5.0", "1.5.0-rc.2", "1.4.10")).To(Equal("v1.5.0"))
	})
})
