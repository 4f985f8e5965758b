package pq

import (
	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"golang.org/x/exp/constraints"
)

type (
	// UnsortedLinked pushes to the front of a singly linked list
	// and scans the whole list on Peek and Pop
	UnsortedLinked[P constraints.Ordered, T any] struct {
		list *singlylinkedlist.List
	}

	// SortedLinked keeps its items in ascending priority
	// order, so the best one is always the head of the list
	SortedLinked[P constraints.Ordered, T any] struct {
		list *singlylinkedlist.List
	}
)

var (
	_ PriorityQueue[int, int] = (*UnsortedLinked[int, int])(nil)
	_ PriorityQueue[int, int] = (*SortedLinked[int, int])(nil)
)

func NewUnsortedLinked[P constraints.Ordered, T any]() *UnsortedLinked[P, T] {
	return &UnsortedLinked[P, T]{list: singlylinkedlist.New()}
}

func (q *UnsortedLinked[P, T]) Size() int { return q.list.Size() }

func (q *UnsortedLinked[P, T]) IsEmpty() bool { return q.list.Empty() }

func (q *UnsortedLinked[P, T]) Clear() { q.list.Clear() }

func (q *UnsortedLinked[P, T]) Push(priority P, data T) error {
	q.list.Prepend(entry[P, T]{priority: priority, data: data})
	return nil
}

func (q *UnsortedLinked[P, T]) best() (int, entry[P, T]) {
	var (
		index = -1
		best  entry[P, T]
	)

	for it := q.list.Iterator(); it.Next(); {
		if e := it.Value().(entry[P, T]); index < 0 || e.priority < best.priority {
			index, best = it.Index(), e
		}
	}

	return index, best
}

func (q *UnsortedLinked[P, T]) Peek() (T, error) {
	i, e := q.best()
	if i < 0 {
		return e.data, ErrEmpty
	}

	return e.data, nil
}

// Pop swaps the best item with the head of
// the list and unlinks the head
func (q *UnsortedLinked[P, T]) Pop() (T, error) {
	i, e := q.best()
	if i < 0 {
		return e.data, ErrEmpty
	}

	if i != 0 {
		q.list.Swap(i, 0)
	}

	q.list.Remove(0)

	return e.data, nil
}

func NewSortedLinked[P constraints.Ordered, T any]() *SortedLinked[P, T] {
	return &SortedLinked[P, T]{list: singlylinkedlist.New()}
}

func (q *SortedLinked[P, T]) Size() int { return q.list.Size() }

func (q *SortedLinked[P, T]) IsEmpty() bool { return q.list.Empty() }

func (q *SortedLinked[P, T]) Clear() { q.list.Clear() }

// Push links the item behind every item with the same
// or a smaller priority, so equal priorities leave in push order
func (q *SortedLinked[P, T]) Push(priority P, data T) error {
	i, _ := q.list.Find(func(_ int, v interface{}) bool {
		return v.(entry[P, T]).priority > priority
	})

	e := entry[P, T]{priority: priority, data: data}

	if i < 0 {
		q.list.Add(e)
	} else {
		q.list.Insert(i, e)
	}

	return nil
}

func (q *SortedLinked[P, T]) Peek() (T, error) {
	v, ok := q.list.Get(0)
	if !ok {
		var zero T
		return zero, ErrEmpty
	}

	return v.(entry[P, T]).data, nil
}

func (q *SortedLinked[P, T]) Pop() (T, error) {
	data, err := q.Peek()
	if err != nil {
		return data, err
	}

	q.list.Remove(0)

	return data, nil
}
