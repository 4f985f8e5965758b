package amt

import (
	"fmt"

	"github.com/nStangl/ds-tables/mm"
)

// This package holds the memory structures the abstract
// data types are built on: an implicit (array) sequence over
// the compact memory manager, its binary heap view, and an
// explicit linked binary hierarchy

type (
	ImplicitSequence[T any] struct {
		memory *mm.Compact[T]
	}

	SequenceIterator[T any] struct {
		seq   *ImplicitSequence[T]
		index int
	}
)

func NewImplicitSequence[T any](capacity int) *ImplicitSequence[T] {
	return &ImplicitSequence[T]{memory: mm.NewCompact[T](capacity)}
}

// NewImplicitSequenceFilled creates a sequence holding
// size zero valued blocks
func NewImplicitSequenceFilled[T any](size int) (*ImplicitSequence[T], error) {
	s := NewImplicitSequence[T](size)

	for i := 0; i < size; i++ {
		if _, err := s.memory.Allocate(); err != nil {
			return nil, fmt.Errorf("failed to fill block %d of %d: %w", i, size, err)
		}
	}

	return s, nil
}

func (s *ImplicitSequence[T]) Size() int { return s.memory.Count() }

func (s *ImplicitSequence[T]) IsEmpty() bool { return s.memory.Count() == 0 }

func (s *ImplicitSequence[T]) Memory() *mm.Compact[T] { return s.memory }

func (s *ImplicitSequence[T]) Access(index int) *T {
	if index < 0 || index >= s.Size() {
		return nil
	}

	return s.memory.At(index)
}

func (s *ImplicitSequence[T]) AccessFirst() *T { return s.Access(0) }

func (s *ImplicitSequence[T]) AccessLast() *T { return s.Access(s.Size() - 1) }

func (s *ImplicitSequence[T]) IndexOfNext(index int) int {
	if index+1 >= s.Size() {
		return mm.InvalidIndex
	}

	return index + 1
}

func (s *ImplicitSequence[T]) IndexOfPrevious(index int) int {
	if index <= 0 || index > s.Size() {
		return mm.InvalidIndex
	}

	return index - 1
}

func (s *ImplicitSequence[T]) InsertFirst() (*T, error) { return s.memory.AllocateAt(0) }

func (s *ImplicitSequence[T]) InsertLast() (*T, error) { return s.memory.Allocate() }

func (s *ImplicitSequence[T]) InsertAt(index int) (*T, error) { return s.memory.AllocateAt(index) }

func (s *ImplicitSequence[T]) RemoveFirst() error { return s.memory.ReleaseAt(0) }

func (s *ImplicitSequence[T]) RemoveLast() error { return s.memory.ReleaseAt(s.Size() - 1) }

func (s *ImplicitSequence[T]) Remove(index int) error { return s.memory.ReleaseAt(index) }

func (s *ImplicitSequence[T]) Swap(i, j int) error { return s.memory.Swap(i, j) }

// FindIndex returns the index of the first block
// satisfying the predicate, or mm.InvalidIndex
func (s *ImplicitSequence[T]) FindIndex(pred func(*T) bool) int {
	for i := 0; i < s.Size(); i++ {
		if pred(s.memory.At(i)) {
			return i
		}
	}

	return mm.InvalidIndex
}

func (s *ImplicitSequence[T]) Clear() { s.memory.Clear() }

func (s *ImplicitSequence[T]) Clone() *ImplicitSequence[T] {
	return &ImplicitSequence[T]{memory: s.memory.Clone()}
}

func (s *ImplicitSequence[T]) Equal(other *ImplicitSequence[T], eq func(a, b T) bool) bool {
	return s.memory.Equal(other.memory, eq)
}

func (s *ImplicitSequence[T]) Iterator() *SequenceIterator[T] {
	return &SequenceIterator[T]{seq: s, index: -1}
}

func (i *SequenceIterator[T]) Next() bool {
	if i.index < i.seq.Size() {
		i.index++
	}

	return i.index < i.seq.Size()
}

func (i *SequenceIterator[T]) Value() *T { return i.seq.Access(i.index) }
