package pq

import (
	"fmt"
	"sort"

	"github.com/nStangl/ds-tables/amt"
	"github.com/nStangl/ds-tables/mm"
	"golang.org/x/exp/constraints"
)

type (
	// UnsortedSequence pushes in constant time and
	// scans the whole sequence on Peek and Pop
	UnsortedSequence[P constraints.Ordered, T any] struct {
		seq *amt.ImplicitSequence[entry[P, T]]
	}

	// SortedSequence keeps its items in descending priority
	// order, so the best one is always the last block
	SortedSequence[P constraints.Ordered, T any] struct {
		seq *amt.ImplicitSequence[entry[P, T]]
	}
)

var (
	_ PriorityQueue[int, int] = (*UnsortedSequence[int, int])(nil)
	_ PriorityQueue[int, int] = (*SortedSequence[int, int])(nil)
)

func NewUnsortedSequence[P constraints.Ordered, T any]() *UnsortedSequence[P, T] {
	return &UnsortedSequence[P, T]{seq: amt.NewImplicitSequence[entry[P, T]](mm.InitSize)}
}

func (q *UnsortedSequence[P, T]) Size() int { return q.seq.Size() }

func (q *UnsortedSequence[P, T]) IsEmpty() bool { return q.seq.IsEmpty() }

func (q *UnsortedSequence[P, T]) Clear() { q.seq.Clear() }

func (q *UnsortedSequence[P, T]) Push(priority P, data T) error {
	e, err := q.seq.InsertLast()
	if err != nil {
		return fmt.Errorf("failed to push %v: %w", priority, err)
	}

	e.priority, e.data = priority, data

	return nil
}

func (q *UnsortedSequence[P, T]) best() int {
	best := 0

	for i := 1; i < q.seq.Size(); i++ {
		if q.seq.Access(i).priority < q.seq.Access(best).priority {
			best = i
		}
	}

	return best
}

func (q *UnsortedSequence[P, T]) Peek() (T, error) {
	if q.seq.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	return q.seq.Access(q.best()).data, nil
}

func (q *UnsortedSequence[P, T]) Pop() (T, error) {
	if q.seq.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	i := q.best()
	data := q.seq.Access(i).data

	if last := q.seq.Size() - 1; i != last {
		if err := q.seq.Swap(i, last); err != nil {
			return data, err
		}
	}

	return data, q.seq.RemoveLast()
}

func NewSortedSequence[P constraints.Ordered, T any]() *SortedSequence[P, T] {
	return &SortedSequence[P, T]{seq: amt.NewImplicitSequence[entry[P, T]](mm.InitSize)}
}

func (q *SortedSequence[P, T]) Size() int { return q.seq.Size() }

func (q *SortedSequence[P, T]) IsEmpty() bool { return q.seq.IsEmpty() }

func (q *SortedSequence[P, T]) Clear() { q.seq.Clear() }

// Push places the item in front of every item with the same
// or a smaller priority, so equal priorities leave in push order
func (q *SortedSequence[P, T]) Push(priority P, data T) error {
	i := sort.Search(q.seq.Size(), func(i int) bool {
		return q.seq.Access(i).priority <= priority
	})

	e, err := q.seq.InsertAt(i)
	if err != nil {
		return fmt.Errorf("failed to push %v: %w", priority, err)
	}

	e.priority, e.data = priority, data

	return nil
}

func (q *SortedSequence[P, T]) Peek() (T, error) {
	if q.seq.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	return q.seq.AccessLast().data, nil
}

func (q *SortedSequence[P, T]) Pop() (T, error) {
	if q.seq.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}

	data := q.seq.AccessLast().data

	return data, q.seq.RemoveLast()
}
