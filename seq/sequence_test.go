package seq_test

import (
	"github.com/bbengfort/persist/seq"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sequence", func() {

	It("appends and reads back elements", func() {
		s := seq.New[string]()
		s.PushBack("a")
		s.PushBack("b")
		Ω(s.Size()).Should(Equal(2))
		Ω(s.Get(0)).Should(Equal("a"))
		Ω(s.Get(1)).Should(Equal("b"))
	})

	It("keeps an earlier version unaffected by a later overwrite", func() {
		s := seq.New[int]()
		s.PushBack(1)
		s.PushBack(2)
		before := s.Version()
		s.Set(0, 100)

		snap := s.Snapshot(before).(*seq.Sequence[int])
		Ω(snap.Get(0)).Should(Equal(1))
		Ω(s.Get(0)).Should(Equal(100))
	})

	It("erases an element, shifting the rest down", func() {
		s := seq.New[int]()
		s.PushBack(1)
		s.PushBack(2)
		s.PushBack(3)
		s.Erase(1)
		Ω(s.Size()).Should(Equal(2))
		Ω(s.Get(0)).Should(Equal(1))
		Ω(s.Get(1)).Should(Equal(3))
	})

	It("resizes, padding new elements with the given value", func() {
		s := seq.New[int]()
		s.PushBack(1)
		s.Resize(3, 9)
		Ω(s.Size()).Should(Equal(3))
		Ω(s.Get(1)).Should(Equal(9))
		Ω(s.Get(2)).Should(Equal(9))
	})

	It("undoes and redoes a push", func() {
		s := seq.New[int]()
		s.PushBack(1)
		s.PushBack(2)
		s.Undo()
		Ω(s.Size()).Should(Equal(1))
		s.Redo()
		Ω(s.Size()).Should(Equal(2))
	})
})
