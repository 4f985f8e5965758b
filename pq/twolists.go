package pq

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/nStangl/ds-tables/util"
	"golang.org/x/exp/constraints"
)

// TwoLists splits its items into a short sorted sequence holding
// the best ones and a long unsorted linked list holding the rest.
// Every priority in short is at most every priority in long.
// The short part holds about sqrt(n) items, so pushes of bad
// items are constant and pops only rescan long once short runs dry.
type TwoLists[P constraints.Ordered, T any] struct {
	short    *SortedSequence[P, T]
	long     *singlylinkedlist.List
	capacity int
}

var _ PriorityQueue[int, int] = (*TwoLists[int, int])(nil)

// NewTwoLists sizes the short part for expectedSize items
func NewTwoLists[P constraints.Ordered, T any](expectedSize int) *TwoLists[P, T] {
	return &TwoLists[P, T]{
		short:    NewSortedSequence[P, T](),
		long:     singlylinkedlist.New(),
		capacity: shortCapacity(expectedSize),
	}
}

func shortCapacity(n int) int {
	return util.Max(1, int(math.Ceil(math.Sqrt(float64(n)))))
}

func (q *TwoLists[P, T]) Size() int { return q.short.Size() + q.long.Size() }

// IsEmpty only looks at short, which is refilled
// from long whenever a pop drains it
func (q *TwoLists[P, T]) IsEmpty() bool { return q.short.IsEmpty() }

func (q *TwoLists[P, T]) Clear() {
	q.short.Clear()
	q.long.Clear()
}

// ShortCapacity is how many items the short part holds at most
func (q *TwoLists[P, T]) ShortCapacity() int { return q.capacity }

// worst is the priority of the last item short would serve,
// it sits first because short is sorted in descending order
func (q *TwoLists[P, T]) worst() P { return q.short.seq.AccessFirst().priority }

func (q *TwoLists[P, T]) Push(priority P, data T) error {
	switch {
	case q.long.Empty() && q.short.Size() < q.capacity:
	case !q.short.IsEmpty() && priority < q.worst():
	default:
		q.long.Add(entry[P, T]{priority: priority, data: data})
		return nil
	}

	return q.pushShort(priority, data, q.long)
}

// pushShort adds the item to short and moves the
// worst item of short into overflow when it is full
func (q *TwoLists[P, T]) pushShort(priority P, data T, overflow *singlylinkedlist.List) error {
	if err := q.short.Push(priority, data); err != nil {
		return err
	}

	if q.short.Size() <= q.capacity {
		return nil
	}

	overflow.Add(*q.short.seq.AccessFirst())

	if err := q.short.seq.RemoveFirst(); err != nil {
		return fmt.Errorf("failed to evict %v: %w", q.worst(), err)
	}

	return nil
}

func (q *TwoLists[P, T]) Peek() (T, error) { return q.short.Peek() }

func (q *TwoLists[P, T]) Pop() (T, error) {
	data, err := q.short.Pop()
	if err != nil {
		return data, err
	}

	if q.short.IsEmpty() && !q.long.Empty() {
		return data, q.refill()
	}

	return data, nil
}

// refill resizes short for the items left in long
// and moves the best of them over in one pass
func (q *TwoLists[P, T]) refill() error {
	var (
		long = q.long
		rest = singlylinkedlist.New()
	)

	q.capacity = shortCapacity(long.Size())
	q.long = rest

	for it := long.Iterator(); it.Next(); {
		e := it.Value().(entry[P, T])

		if q.short.Size() < q.capacity || e.priority < q.worst() {
			if err := q.pushShort(e.priority, e.data, rest); err != nil {
				return err
			}

			continue
		}

		rest.Add(e)
	}

	return nil
}
