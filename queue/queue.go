package queue

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/nStangl/ds-tables/amt"
	"github.com/nStangl/ds-tables/util"
)

type (
	// Queue is a first in, first out container
	Queue[T any] interface {
		Size() int
		IsEmpty() bool
		Push(T) error
		Peek() (T, error)
		Pop() (T, error)
		Clear()
	}

	// Implicit is a bounded ring buffer over an implicit sequence
	Implicit[T any] struct {
		blocks *amt.ImplicitSequence[T]
		head   int
		size   int
	}

	// Explicit grows without bound, one list node per item
	Explicit[T any] struct {
		list *singlylinkedlist.List
	}
)

var (
	_ Queue[int] = (*Implicit[int])(nil)
	_ Queue[int] = (*Explicit[int])(nil)
)

var (
	ErrEmpty = errors.New("queue is empty")
	ErrFull  = errors.New("queue is full")
)

func NewImplicit[T any](capacity int) (*Implicit[T], error) {
	if capacity <= 0 {
		capacity = 1
	}

	blocks, err := amt.NewImplicitSequenceFilled[T](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate queue of %d: %w", capacity, err)
	}

	return &Implicit[T]{blocks: blocks}, nil
}

func (q *Implicit[T]) Size() int { return q.size }

func (q *Implicit[T]) IsEmpty() bool { return q.size == 0 }

func (q *Implicit[T]) Capacity() int { return q.blocks.Size() }

func (q *Implicit[T]) Push(data T) error {
	if q.size == q.blocks.Size() {
		return ErrFull
	}

	*q.blocks.Access(util.Modulo(q.head+q.size, q.blocks.Size())) = data
	q.size++

	return nil
}

func (q *Implicit[T]) Peek() (T, error) {
	if q.size == 0 {
		var zero T
		return zero, ErrEmpty
	}

	return *q.blocks.Access(q.head), nil
}

func (q *Implicit[T]) Pop() (T, error) {
	data, err := q.Peek()
	if err != nil {
		return data, err
	}

	var zero T
	*q.blocks.Access(q.head) = zero

	q.head = util.Modulo(q.head+1, q.blocks.Size())
	q.size--

	return data, nil
}

func (q *Implicit[T]) Clear() {
	var zero T
	for it := q.blocks.Iterator(); it.Next(); {
		*it.Value() = zero
	}

	q.head, q.size = 0, 0
}

func NewExplicit[T any]() *Explicit[T] {
	return &Explicit[T]{list: singlylinkedlist.New()}
}

func (q *Explicit[T]) Size() int { return q.list.Size() }

func (q *Explicit[T]) IsEmpty() bool { return q.list.Empty() }

func (q *Explicit[T]) Push(data T) error {
	q.list.Add(data)
	return nil
}

func (q *Explicit[T]) Peek() (T, error) {
	v, ok := q.list.Get(0)
	if !ok {
		var zero T
		return zero, ErrEmpty
	}

	return value[T](v), nil
}

func (q *Explicit[T]) Pop() (T, error) {
	data, err := q.Peek()
	if err != nil {
		return data, err
	}

	q.list.Remove(0)

	return data, nil
}

func (q *Explicit[T]) Clear() { q.list.Clear() }

// value unboxes a list element, a stored nil
// interface comes back as the zero T
func value[T any](v interface{}) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}
