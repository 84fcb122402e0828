package fatnode_test

import (
	"github.com/bbengfort/persist/fatnode"
	"github.com/bbengfort/persist/version"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Log", func() {

	It("reports empty and not full on construction", func() {
		l := fatnode.NewLog(4)
		Ω(l.Full()).Should(BeFalse())
		Ω(l.Len()).Should(Equal(0))
	})

	It("becomes full once capacity entries are added", func() {
		tree := version.NewTree(0)
		root := tree.RootVersion()

		l := fatnode.NewLog(2)
		l.Add(0, root, "a")
		Ω(l.Full()).Should(BeFalse())
		l.Add(1, root, "b")
		Ω(l.Full()).Should(BeTrue())
	})

	It("resolves Get to the latest entry at-or-before the query version", func() {
		tree := version.NewTree(0)
		root := tree.RootVersion()
		v1 := tree.Insert(root, 1)
		v2 := tree.Insert(v1, 2)

		l := fatnode.NewLog(8)
		l.Add(0, v1, "at-v1")
		l.Add(0, v2, "at-v2")

		_, ok := l.Get(0, root)
		Ω(ok).Should(BeFalse())

		val, ok := l.Get(0, v1)
		Ω(ok).Should(BeTrue())
		Ω(val).Should(Equal("at-v1"))

		val, ok = l.Get(0, v2)
		Ω(ok).Should(BeTrue())
		Ω(val).Should(Equal("at-v2"))
	})

	It("ignores entries for other fields", func() {
		tree := version.NewTree(0)
		root := tree.RootVersion()

		l := fatnode.NewLog(8)
		l.Add(0, root, "field-zero")
		l.Add(1, root, "field-one")

		val, ok := l.Get(1, root)
		Ω(ok).Should(BeTrue())
		Ω(val).Should(Equal("field-one"))
	})

	It("splits a full log into two halves, each independently readable", func() {
		tree := version.NewTree(0)
		root := tree.RootVersion()
		versions := []version.Version{root}
		cur := root
		for i := 1; i <= 4; i++ {
			cur = tree.Insert(cur, i)
			versions = append(versions, cur)
		}

		l := fatnode.NewLog(4)
		for i, v := range versions[:4] {
			l.Add(0, v, i)
		}
		Ω(l.Full()).Should(BeTrue())

		successor := l.Split()
		Ω(l.Len()).Should(Equal(2))
		Ω(successor.Len()).Should(Equal(2))
		Ω(l.Full()).Should(BeFalse())
		Ω(successor.Full()).Should(BeFalse())

		val, ok := l.Get(0, versions[1])
		Ω(ok).Should(BeTrue())
		Ω(val).Should(Equal(1))

		val, ok = successor.Get(0, versions[3])
		Ω(ok).Should(BeTrue())
		Ω(val).Should(Equal(3))
	})

	It("reports occupancy that grows with Add and shrinks with Split", func() {
		tree := version.NewTree(0)
		root := tree.RootVersion()

		l := fatnode.NewLog(4)
		r := l.Report()
		Ω(r.Entries).Should(Equal(0))
		Ω(r.Capacity).Should(Equal(4))
		Ω(r.Bytes).Should(Equal(uint64(0)))

		l.Add(0, root, "a")
		l.Add(1, root, "b")
		r = l.Report()
		Ω(r.Entries).Should(Equal(2))
		Ω(r.Bytes > 0).Should(BeTrue())
		Ω(r.String()).ShouldNot(BeEmpty())

		l.Add(0, root, "c")
		l.Add(1, root, "d")
		Ω(l.Full()).Should(BeTrue())

		successor := l.Split()
		Ω(l.Report().Entries).Should(Equal(2))
		Ω(successor.Report().Entries).Should(Equal(2))
	})
})
