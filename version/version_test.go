package version_test

import (
	. "github.com/bbengfort/persist/version"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Version", func() {

	It("treats the zero value as empty", func() {
		var v Version
		Ω(v.IsEmpty()).Should(BeTrue())
		Ω(v.String()).Should(Equal("(empty)"))
	})

	It("orders the empty version before any real version", func() {
		tree := NewTree(0)
		root := tree.RootVersion()
		var empty Version

		Ω(empty.Less(root)).Should(BeTrue())
		Ω(root.Less(empty)).Should(BeFalse())
	})

	It("orders an ancestor strictly before its descendant", func() {
		tree := NewTree(0)
		root := tree.RootVersion()
		child := tree.Insert(root, 1)

		Ω(root.Less(child)).Should(BeTrue())
		Ω(child.Less(root)).Should(BeFalse())
		Ω(root.LessEqual(root)).Should(BeTrue())
	})

	It("treats versions from different insert calls as distinct", func() {
		tree := NewTree(0)
		root := tree.RootVersion()
		v1 := tree.Insert(root, 1)
		v2 := tree.Insert(root, 2)

		Ω(v1.Equal(v2)).Should(BeFalse())
		Ω(v1).ShouldNot(Equal(v2))
	})

	It("renders a parseable-looking (begin,end) string for real versions", func() {
		tree := NewTree(0)
		root := tree.RootVersion()
		Ω(root.String()).Should(MatchRegexp(`^\(\d+,\d+\)$`))
	})
})
