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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

var _ = Describe("ClassifyUpdate", func() {
	DescribeTable("classifies version bumps",
		func(from, to string, expected config.UpdateType) {
			got, err := ClassifyUpdate(from, to)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(expected))
		},
		Entry("patch", "1.2.3", "1.2.4", config.UpdatePatch),
		Entry("patch to pre-release", "v1.2.3", "v1.2.4-rc.1", config.UpdatePatch),
		Entry("minor", "1.2.3", "1.3.0", config.UpdateMinor),
		Entry("major", "1.2.3", "2.0.0", config.UpdateMajor),
		Entry("major from short version", "3", "4.1", config.UpdateMajor),
		Entry("pin caret range", "^1.2.0", "1.4.2", config.UpdatePin),
		Entry("pin tilde range", "~1.2", "1.2.9", config.UpdatePin),
		Entry("date version", "20240101", "20250101", config.UpdateMajor),
		Entry("date version with build counter", "20240101.1", "20240101.2", config.UpdateMinor),
		Entry("commit digest", "a1b2c3d", "e4f5a6b7c8d9", config.UpdateDigest),
		Entry("image digest", "sha256:"+strings.Repeat("a", 64), "sha256:"+strings.Repeat("b", 64), config.UpdateDigest),
	)

	It("rejects downgrades and identical versions", func() {
		_, err := ClassifyUpdate("2.0.0", "1.9.9")
		Expect(err).To(MatchError(ErrNotAnUpdate))

		_, err = ClassifyUpdate("1.0.0", "v1.0.0")
		Expect(err).To(MatchError(ErrNotAnUpdate))

		_, err = ClassifyUpdate("a1b2c3d", "a1b2c3d")
		Expect(err).To(MatchError(ErrNotAnUpdate))
	})

	It("rejects a pin outside the range", func() {
		_, err := ClassifyUpdate("^1.2.0", "2.0.0")
		Expect(err).To(HaveOccurred())
	})

	It("rejects malformed input", func() {
		_, err := ClassifyUpdate("", "1.0.0")
		Expect(err).To(HaveOccurred())

		_, err = ClassifyUpdate("1.0.0", "latest")
		Expect(err).To(HaveOccurred())
	})

	It("recognises digests", func() {
		Expect(IsDigest("a1b2c3d")).To(BeTrue())
		Expect(IsDigest("1.2.3")).To(BeFalse())
		Expect(IsDigest("sha256:short")).To(BeFalse())
		Expect(IsDigest("20240101")).To(BeFalse())
		Expect(IsDigest(strings.Repeat("1", 40))).To(BeTrue())
	})
})
