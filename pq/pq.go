package pq

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// Priority queues serve the item with the smallest
// priority value first

type (
	PriorityQueue[P constraints.Ordered, T any] interface {
		Size() int
		IsEmpty() bool
		Push(P, T) error
		Peek() (T, error)
		Pop() (T, error)
		Clear()
	}

	entry[P constraints.Ordered, T any] struct {
		priority P
		data     T
	}
)

var ErrEmpty = errors.New("priority queue is empty")

// Drain pops every item of q, best first
func Drain[P constraints.Ordered, T any](q PriorityQueue[P, T]) ([]T, error) {
	items := make([]T, 0, q.Size())

	for !q.IsEmpty() {
		v, err := q.Pop()
		if err != nil {
			return items, err
		}

		items = append(items, v)
	}

	return items, nil
}
