package amt

import "github.com/nStangl/ds-tables/mm"

// BinaryImplicitHierarchy views an implicit sequence as a complete
// binary tree: the sons of i live at 2i+1 and 2i+2
type BinaryImplicitHierarchy[T any] struct {
	*ImplicitSequence[T]
}

func NewBinaryImplicitHierarchy[T any](capacity int) *BinaryImplicitHierarchy[T] {
	return &BinaryImplicitHierarchy[T]{ImplicitSequence: NewImplicitSequence[T](capacity)}
}

func (h *BinaryImplicitHierarchy[T]) IndexOfParent(index int) int {
	if index <= 0 || index >= h.Size() {
		return mm.InvalidIndex
	}

	return (index - 1) / 2
}

func (h *BinaryImplicitHierarchy[T]) IndexOfLeftSon(index int) int {
	if i := 2*index + 1; index >= 0 && i < h.Size() {
		return i
	}

	return mm.InvalidIndex
}

func (h *BinaryImplicitHierarchy[T]) IndexOfRightSon(index int) int {
	if i := 2*index + 2; index >= 0 && i < h.Size() {
		return i
	}

	return mm.InvalidIndex
}

func (h *BinaryImplicitHierarchy[T]) InsertLastLeaf() (*T, error) { return h.InsertLast() }

func (h *BinaryImplicitHierarchy[T]) RemoveLastLeaf() error { return h.RemoveLast() }

func (h *BinaryImplicitHierarchy[T]) AccessRoot() *T { return h.AccessFirst() }

func (h *BinaryImplicitHierarchy[T]) AccessLastLeaf() *T { return h.AccessLast() }

func (h *BinaryImplicitHierarchy[T]) Clone() *BinaryImplicitHierarchy[T] {
	return &BinaryImplicitHierarchy[T]{ImplicitSequence: h.ImplicitSequence.Clone()}
}
