package list_test

import (
	"github.com/bbengfort/persist/list"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func collect(l *list.List[int]) []int {
	var out []int
	for it := l.Begin(); !it.Done(); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

var _ = Describe("List", func() {

	It("is empty on construction", func() {
		l := list.New[int]()
		Ω(l.Size()).Should(Equal(0))
		Ω(l.Begin().Done()).Should(BeTrue())
	})

	It("pushes to the front in LIFO order", func() {
		l := list.New[int]()
		l.PushFront(1)
		l.PushFront(2)
		l.PushFront(3)
		Ω(collect(l)).Should(Equal([]int{3, 2, 1}))
	})

	It("keeps an earlier version unaffected by a later push", func() {
		l := list.New[int]()
		l.PushFront(1)
		before := l.Version()
		l.PushFront(2)

		snap := l.Snapshot(before).(*list.List[int])
		Ω(collect(snap)).Should(Equal([]int{1}))
		Ω(collect(l)).Should(Equal([]int{2, 1}))
	})

	It("pops the front element", func() {
		l := list.New[int]()
		l.PushFront(1)
		l.PushFront(2)
		l.PopFront()
		Ω(collect(l)).Should(Equal([]int{1}))
	})

	It("finds and erases a middle element", func() {
		l := list.New[int]()
		for _, v := range []int{3, 2, 1} {
			l.PushFront(v)
		}
		Ω(collect(l)).Should(Equal([]int{1, 2, 3}))

		it := l.Find(2, func(a, b int) bool { return a == b })
		Ω(it.Done()).Should(BeFalse())
		l.Erase(it)
		Ω(collect(l)).Should(Equal([]int{1, 3}))
		Ω(l.Size()).Should(Equal(2))
	})

	It("erases the head element via an iterator", func() {
		l := list.New[int]()
		l.PushFront(2)
		l.PushFront(1)
		it := l.Begin()
		l.Erase(it)
		Ω(collect(l)).Should(Equal([]int{2}))
	})

	It("stays consistent across many distinct pushes", func() {
		l := list.New[int]()
		const n = 40
		for i := 0; i < n; i++ {
			l.PushFront(i)
		}
		Ω(l.Size()).Should(Equal(n))
		got := collect(l)
		for i := 0; i < n; i++ {
			Ω(got[i]).Should(Equal(n - 1 - i))
		}
	})

	It("overflows a single node's log and stays navigable across the split", func() {
		l := list.New[int]()
		l.PushFront(0)

		// Each push-then-pop cycle below rewrites node 0's prev field
		// twice (once pointing at the pushed node, once reset to nil),
		// so 3 cycles exactly fill its log (capacity 6); the 4th
		// cycle's push overflows it mid-call and forces
		// node.splitAndUpdate on the very node every other element is
		// chained off of.
		for i := 0; i < 4; i++ {
			l.PushFront(100 + i)
			l.PopFront()
		}
		Ω(l.Size()).Should(Equal(1))
		Ω(collect(l)).Should(Equal([]int{0}))

		l.PushFront(999)
		Ω(collect(l)).Should(Equal([]int{999, 0}))
		l.PopFront()
		Ω(collect(l)).Should(Equal([]int{0}))
	})

	It("undoes and redoes a push", func() {
		l := list.New[int]()
		l.PushFront(1)
		l.PushFront(2)
		l.Undo()
		Ω(collect(l)).Should(Equal([]int{1}))
		l.Redo()
		Ω(collect(l)).Should(Equal([]int{2, 1}))
	})
})
