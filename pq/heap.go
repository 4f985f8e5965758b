package pq

import (
	"fmt"

	"github.com/nStangl/ds-tables/amt"
	"github.com/nStangl/ds-tables/mm"
	"golang.org/x/exp/constraints"
)

// BinaryHeap is a min-heap laid out in an implicit binary hierarchy
type BinaryHeap[P constraints.Ordered, T any] struct {
	hierarchy *amt.BinaryImplicitHierarchy[entry[P, T]]
}

var _ PriorityQueue[int, int] = (*BinaryHeap[int, int])(nil)

func NewBinaryHeap[P constraints.Ordered, T any]() *BinaryHeap[P, T] {
	return &BinaryHeap[P, T]{hierarchy: amt.NewBinaryImplicitHierarchy[entry[P, T]](mm.InitSize)}
}

func (h *BinaryHeap[P, T]) Size() int { return h.hierarchy.Size() }

func (h *BinaryHeap[P, T]) IsEmpty() bool { return h.hierarchy.IsEmpty() }

func (h *BinaryHeap[P, T]) Clear() { h.hierarchy.Clear() }

func (h *BinaryHeap[P, T]) priority(i int) P { return h.hierarchy.Access(i).priority }

func (h *BinaryHeap[P, T]) Push(priority P, data T) error {
	e, err := h.hierarchy.InsertLastLeaf()
	if err != nil {
		return fmt.Errorf("failed to push %v: %w", priority, err)
	}

	e.priority, e.data = priority, data

	i := h.hierarchy.Size() - 1
	for p := h.hierarchy.IndexOfParent(i); p != mm.InvalidIndex && h.priority(p) > h.priority(i); p = h.hierarchy.IndexOfParent(i) {
		if err := h.hierarchy.Swap(i, p); err != nil {
			return err
		}

		i = p
	}

	return nil
}

func (h *BinaryHeap[P, T]) Peek() (T, error) {
	if h.hierarchy.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	return h.hierarchy.AccessRoot().data, nil
}

func (h *BinaryHeap[P, T]) Pop() (T, error) {
	if h.hierarchy.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	data := h.hierarchy.AccessRoot().data

	if last := h.hierarchy.Size() - 1; last > 0 {
		if err := h.hierarchy.Swap(0, last); err != nil {
			return data, err
		}
	}

	if err := h.hierarchy.RemoveLastLeaf(); err != nil {
		return data, err
	}

	return data, h.siftDown(0)
}

func (h *BinaryHeap[P, T]) siftDown(i int) error {
	for {
		son := h.hierarchy.IndexOfLeftSon(i)
		if son == mm.InvalidIndex {
			return nil
		}

		if right := h.hierarchy.IndexOfRightSon(i); right != mm.InvalidIndex && h.priority(right) < h.priority(son) {
			son = right
		}

		if h.priority(i) <= h.priority(son) {
			return nil
		}

		if err := h.hierarchy.Swap(i, son); err != nil {
			return err
		}

		i = son
	}
}
