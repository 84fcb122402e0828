package bst_test

import (
	"fmt"

	"github.com/bbengfort/persist/bst"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func intLess(a, b int) bool { return a < b }

var _ = Describe("Tree", func() {

	It("finds nothing in an empty tree", func() {
		tree := bst.New[int, string](intLess)
		_, ok := tree.Find(1)
		Ω(ok).Should(BeFalse())
	})

	It("stores and finds a single key", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(5, "five")
		v, ok := tree.Find(5)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("five"))
	})

	It("keeps an old version unaffected by a later overwrite", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(5, "five")
		before := tree.Version()
		tree.Set(5, "cinco")

		snapshot := tree.Snapshot(before).(*bst.Tree[int, string])

		v, ok := snapshot.Find(5)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("five"))

		v, ok = tree.Find(5)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("cinco"))
	})

	It("iterates keys in ascending order after many inserts", func() {
		tree := bst.New[int, string](intLess)
		keys := []int{50, 20, 70, 10, 30, 60, 80, 5, 15, 25, 35, 65, 90, 1, 99}
		for _, k := range keys {
			tree.Set(k, "v")
		}
		Ω(tree.Size()).Should(Equal(len(keys)))

		var seen []int
		for it := tree.Begin(); !it.Done(); it.Next() {
			seen = append(seen, it.Key())
		}
		Ω(len(seen)).Should(Equal(len(keys)))
		for i := 0; i < len(seen)-1; i++ {
			Ω(seen[i] < seen[i+1]).Should(BeTrue())
		}
	})

	It("keeps keys ordered across many distinct inserts", func() {
		tree := bst.New[int, string](intLess)
		const n = 64
		for i := 0; i < n; i++ {
			tree.Set(i, "v")
		}
		Ω(tree.Size()).Should(Equal(n))

		var prev int = -1
		count := 0
		for it := tree.Begin(); !it.Done(); it.Next() {
			Ω(it.Key() > prev).Should(BeTrue())
			prev = it.Key()
			count++
		}
		Ω(count).Should(Equal(n))
	})

	It("overflows a single node's log and keeps reading its latest value", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(50, "v0")
		tree.Set(20, "left")
		tree.Set(70, "right")

		// root's log already holds 2 entries (the left and right child
		// attachments above); 7 more same-key overwrites push it past
		// its capacity of 8 and force node.splitAndUpdate on root
		// itself, mid-overwrite.
		for i := 0; i < 7; i++ {
			tree.Set(50, fmt.Sprintf("v%d", i+1))
		}

		v, ok := tree.Find(50)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("v7"))

		var seen []int
		for it := tree.Begin(); !it.Done(); it.Next() {
			seen = append(seen, it.Key())
		}
		Ω(seen).Should(Equal([]int{20, 50, 70}))

		tree.Erase(20)
		Ω(tree.Size()).Should(Equal(2))
		_, ok = tree.Find(20)
		Ω(ok).Should(BeFalse())
		v, ok = tree.Find(70)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("right"))
	})

	It("retargets a new child's back-pointer when attaching it splits the parent", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(50, "v0")
		for i := 0; i < 8; i++ {
			tree.Set(50, fmt.Sprintf("v%d", i+1))
		}
		// root's log is now exactly full (8 entries); attaching a new
		// left child overflows it inside SetLeft itself, so the child
		// must come back pointed at the post-split successor, not the
		// pre-split root.
		tree.Set(20, "left")

		Ω(tree.Size()).Should(Equal(2))
		v, ok := tree.Find(20)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("left"))
		v, ok = tree.Find(50)
		Ω(ok).Should(BeTrue())
		Ω(v).Should(Equal("v8"))

		var seen []int
		for it := tree.Begin(); !it.Done(); it.Next() {
			seen = append(seen, it.Key())
		}
		Ω(seen).Should(Equal([]int{20, 50}))

		tree.Erase(20)
		Ω(tree.Size()).Should(Equal(1))
		_, ok = tree.Find(20)
		Ω(ok).Should(BeFalse())
	})

	It("erases a leaf", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(10, "a")
		tree.Set(5, "b")
		tree.Set(15, "c")
		tree.Erase(5)
		Ω(tree.Size()).Should(Equal(2))
		_, ok := tree.Find(5)
		Ω(ok).Should(BeFalse())
	})

	It("erases a node with two children, preserving the rest of the tree", func() {
		tree := bst.New[int, string](intLess)
		for _, k := range []int{50, 20, 70, 10, 30, 60, 80} {
			tree.Set(k, "v")
		}
		tree.Erase(20)
		Ω(tree.Size()).Should(Equal(6))
		_, ok := tree.Find(20)
		Ω(ok).Should(BeFalse())

		for _, k := range []int{50, 70, 10, 30, 60, 80} {
			_, ok := tree.Find(k)
			Ω(ok).Should(BeTrue())
		}

		var seen []int
		for it := tree.Begin(); !it.Done(); it.Next() {
			seen = append(seen, it.Key())
		}
		for i := 0; i < len(seen)-1; i++ {
			Ω(seen[i] < seen[i+1]).Should(BeTrue())
		}
	})

	It("erases the root of a two-node tree", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(1, "a")
		tree.Set(2, "b")
		tree.Erase(1)
		Ω(tree.Size()).Should(Equal(1))
		_, ok := tree.Find(2)
		Ω(ok).Should(BeTrue())
	})

	It("supports the operator[]-style Value accessor", func() {
		tree := bst.New[int, int](intLess)
		Ω(tree.Value(7)).Should(Equal(0))
		tree.Set(7, 42)
		Ω(tree.Value(7)).Should(Equal(42))
	})

	It("undoes and redoes a mutation", func() {
		tree := bst.New[int, string](intLess)
		tree.Set(1, "a")
		tree.Set(1, "b")
		tree.Undo()
		v, _ := tree.Find(1)
		Ω(v).Should(Equal("a"))
		tree.Redo()
		v, _ = tree.Find(1)
		Ω(v).Should(Equal("b"))
	})

	It("propagates a nested tree's mutation up through the outer tree", func() {
		outer := bst.New[string, *bst.Tree[int, string]](func(a, b string) bool { return a < b })
		inner := bst.New[int, string](intLess)
		inner.Set(1, "x")
		outer.Set("inner", inner)

		outerBefore := outer.Version()
		inner.Set(2, "y")

		v, ok := outer.Find("inner")
		Ω(ok).Should(BeTrue())
		iv, ok := v.Find(2)
		Ω(ok).Should(BeTrue())
		Ω(iv).Should(Equal("y"))
		Ω(outer.Version().Equal(outerBefore)).Should(BeFalse())
	})
})
