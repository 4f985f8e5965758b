package table

import (
	"errors"
	"fmt"

	"github.com/nStangl/ds-tables/amt"
	"go.uber.org/multierr"
	"golang.org/x/exp/constraints"
)

type (
	// TreeItem is the payload of a search tree node. Priority
	// is only meaningful for balancers that use it.
	TreeItem[K constraints.Ordered, V any] struct {
		Item[K, V]
		Priority int64
	}

	// Balancer reshapes the tree around a freshly inserted node and
	// around a node about to be removed, using the tree's rotations
	Balancer[K constraints.Ordered, V any] interface {
		AfterInsert(*SearchTree[K, V], *amt.BinaryNode[TreeItem[K, V]])
		BeforeRemove(*SearchTree[K, V], *amt.BinaryNode[TreeItem[K, V]])

		// Check validates the balancer's own invariant at a node
		Check(*amt.BinaryNode[TreeItem[K, V]]) error
		Clone() Balancer[K, V]
	}

	// SearchTree is a binary search tree over an explicit hierarchy.
	// With the no-op balancer it is a plain BST, see NewTreap for the
	// randomized variant.
	SearchTree[K constraints.Ordered, V any] struct {
		hierarchy *amt.BinaryHierarchy[TreeItem[K, V]]
		balancer  Balancer[K, V]
		size      int
	}

	SearchTreeIterator[K constraints.Ordered, V any] struct {
		iter *amt.InOrderIterator[TreeItem[K, V]]
	}

	noBalance[K constraints.Ordered, V any] struct{}
)

var (
	_ Table[int, int]    = (*SearchTree[int, int])(nil)
	_ Iterator[int, int] = (*SearchTreeIterator[int, int])(nil)
	_ Balancer[int, int] = noBalance[int, int]{}
)

var (
	ErrRotation  = errors.New("node cannot be rotated")
	ErrInvariant = errors.New("tree invariant violated")
)

func (noBalance[K, V]) AfterInsert(*SearchTree[K, V], *amt.BinaryNode[TreeItem[K, V]])  {}
func (noBalance[K, V]) BeforeRemove(*SearchTree[K, V], *amt.BinaryNode[TreeItem[K, V]]) {}
func (noBalance[K, V]) Check(*amt.BinaryNode[TreeItem[K, V]]) error                     { return nil }
func (b noBalance[K, V]) Clone() Balancer[K, V]                                          { return b }

func NewBinarySearchTree[K constraints.Ordered, V any]() *SearchTree[K, V] {
	return NewSearchTree[K, V](noBalance[K, V]{})
}

func NewSearchTree[K constraints.Ordered, V any](balancer Balancer[K, V]) *SearchTree[K, V] {
	return &SearchTree[K, V]{
		hierarchy: amt.NewBinaryHierarchy[TreeItem[K, V]](),
		balancer:  balancer,
	}
}

// Hierarchy exposes the underlying nodes, mainly for balancers and tests
func (t *SearchTree[K, V]) Hierarchy() *amt.BinaryHierarchy[TreeItem[K, V]] { return t.hierarchy }

// findNodeWithRelation walks from the root towards key. It returns the
// node holding key, or the node whose missing son key would become.
func (t *SearchTree[K, V]) findNodeWithRelation(key K) (*amt.BinaryNode[TreeItem[K, V]], bool) {
	n := t.hierarchy.Root()
	if n == nil {
		return nil, false
	}

	for {
		var next *amt.BinaryNode[TreeItem[K, V]]

		switch {
		case key < n.Data.Key:
			next = n.LeftSon()
		case key > n.Data.Key:
			next = n.RightSon()
		default:
			return n, true
		}

		if next == nil {
			return n, false
		}

		n = next
	}
}

func (t *SearchTree[K, V]) Insert(key K, data V) error {
	parent, found := t.findNodeWithRelation(key)
	if found {
		return errKeyExists(key)
	}

	t.attach(parent, key, data)

	return nil
}

// InsertWithDuplicates never fails: an existing key collects
// data in its Synonyms and does not change the size
func (t *SearchTree[K, V]) InsertWithDuplicates(key K, data V) {
	parent, found := t.findNodeWithRelation(key)
	if found {
		parent.Data.Synonyms = append(parent.Data.Synonyms, data)
		return
	}

	t.attach(parent, key, data)
}

func (t *SearchTree[K, V]) attach(parent *amt.BinaryNode[TreeItem[K, V]], key K, data V) {
	var n *amt.BinaryNode[TreeItem[K, V]]

	switch {
	case parent == nil:
		n = t.hierarchy.EmplaceRoot()
	case key > parent.Data.Key:
		n = t.hierarchy.InsertRightSon(parent)
	default:
		n = t.hierarchy.InsertLeftSon(parent)
	}

	n.Data.Key = key
	n.Data.Data = data
	t.size++

	t.balancer.AfterInsert(t, n)
}

func (t *SearchTree[K, V]) TryFind(key K) (V, bool) {
	n, found := t.findNodeWithRelation(key)
	if !found {
		var zero V
		return zero, false
	}

	return n.Data.Data, true
}

// TryFindItem also returns the synonyms stored with key
func (t *SearchTree[K, V]) TryFindItem(key K) (Item[K, V], bool) {
	n, found := t.findNodeWithRelation(key)
	if !found {
		return Item[K, V]{}, false
	}

	return n.Data.Item, true
}

func (t *SearchTree[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *SearchTree[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

func (t *SearchTree[K, V]) Remove(key K) (V, error) {
	n, found := t.findNodeWithRelation(key)
	if !found {
		var zero V
		return zero, errKeyNotFound(key)
	}

	data := n.Data.Data

	t.balancer.BeforeRemove(t, n)
	t.removeNode(n)
	t.size--

	return data, nil
}

// removeNode unlinks n. A node with two sons first trades its payload
// with the in-order predecessor, which has at most one son, and that
// node is unlinked instead.
func (t *SearchTree[K, V]) removeNode(n *amt.BinaryNode[TreeItem[K, V]]) {
	if n.Degree() == 2 {
		pred := n.LeftSon()
		for pred.HasRightSon() {
			pred = pred.RightSon()
		}

		n.Data, pred.Data = pred.Data, n.Data
		n = pred
	}

	var (
		parent = n.Parent()
		son    = n.LeftSon()
	)

	if son != nil {
		t.hierarchy.ChangeLeftSon(n, nil)
	} else if son = n.RightSon(); son != nil {
		t.hierarchy.ChangeRightSon(n, nil)
	}

	switch {
	case parent == nil:
		t.hierarchy.ChangeRoot(son)
	case n.IsLeftSon():
		t.hierarchy.ChangeLeftSon(parent, son)
	default:
		t.hierarchy.ChangeRightSon(parent, son)
	}
}

// RotateLeft lifts n, a right son, above its parent.
// The in-order sequence of keys does not change.
func (t *SearchTree[K, V]) RotateLeft(n *amt.BinaryNode[TreeItem[K, V]]) error {
	parent := n.Parent()
	if parent == nil || parent.RightSon() != n {
		return fmt.Errorf("rotate left around %v: %w", n.Data.Key, ErrRotation)
	}

	grandParent := parent.Parent()
	leftSon := t.hierarchy.ChangeLeftSon(n, nil)
	t.hierarchy.ChangeRightSon(parent, nil)

	t.relinkGrandParent(grandParent, parent, n)

	t.hierarchy.ChangeRightSon(parent, leftSon)
	t.hierarchy.ChangeLeftSon(n, parent)

	return nil
}

// RotateRight lifts n, a left son, above its parent.
func (t *SearchTree[K, V]) RotateRight(n *amt.BinaryNode[TreeItem[K, V]]) error {
	parent := n.Parent()
	if parent == nil || parent.LeftSon() != n {
		return fmt.Errorf("rotate right around %v: %w", n.Data.Key, ErrRotation)
	}

	grandParent := parent.Parent()
	rightSon := t.hierarchy.ChangeRightSon(n, nil)
	t.hierarchy.ChangeLeftSon(parent, nil)

	t.relinkGrandParent(grandParent, parent, n)

	t.hierarchy.ChangeLeftSon(parent, rightSon)
	t.hierarchy.ChangeRightSon(n, parent)

	return nil
}

func (t *SearchTree[K, V]) relinkGrandParent(grandParent, parent, n *amt.BinaryNode[TreeItem[K, V]]) {
	switch {
	case grandParent == nil:
		t.hierarchy.ChangeRoot(n)
	case grandParent.LeftSon() == parent:
		t.hierarchy.ChangeLeftSon(grandParent, n)
	default:
		t.hierarchy.ChangeRightSon(grandParent, n)
	}
}

// First returns the item with the smallest key
func (t *SearchTree[K, V]) First() (Item[K, V], error) {
	n := t.hierarchy.First()
	if n == nil {
		return Item[K, V]{}, ErrEmpty
	}

	return n.Data.Item, nil
}

// Last returns the item with the largest key
func (t *SearchTree[K, V]) Last() (Item[K, V], error) {
	n := t.hierarchy.Root()
	if n == nil {
		return Item[K, V]{}, ErrEmpty
	}

	for n.HasRightSon() {
		n = n.RightSon()
	}

	return n.Data.Item, nil
}

// Height is the number of nodes on the longest root to leaf path
func (t *SearchTree[K, V]) Height() int {
	if t.hierarchy.IsEmpty() {
		return 0
	}

	height := 0

	for level := []*amt.BinaryNode[TreeItem[K, V]]{t.hierarchy.Root()}; len(level) > 0; height++ {
		var next []*amt.BinaryNode[TreeItem[K, V]]

		for _, n := range level {
			if n.HasLeftSon() {
				next = append(next, n.LeftSon())
			}

			if n.HasRightSon() {
				next = append(next, n.RightSon())
			}
		}

		level = next
	}

	return height
}

// CheckInvariants validates the parent links, the ascending
// in-order key sequence, the size and the balancer's invariant.
// Every violation found is reported.
func (t *SearchTree[K, V]) CheckInvariants() error {
	var (
		result error
		count  int
		prev   *amt.BinaryNode[TreeItem[K, V]]
	)

	if root := t.hierarchy.Root(); root != nil && root.Parent() != nil {
		result = multierr.Append(result, fmt.Errorf("root %v has a parent: %w", root.Data.Key, ErrInvariant))
	}

	for it := t.hierarchy.Iterator(); it.Next(); {
		n := it.Node()
		count++

		if prev != nil && prev.Data.Key >= n.Data.Key {
			result = multierr.Append(result, fmt.Errorf("key %v follows %v: %w", n.Data.Key, prev.Data.Key, ErrInvariant))
		}

		for _, son := range []*amt.BinaryNode[TreeItem[K, V]]{n.LeftSon(), n.RightSon()} {
			if son != nil && son.Parent() != n {
				result = multierr.Append(result, fmt.Errorf("son %v does not point to parent %v: %w", son.Data.Key, n.Data.Key, ErrInvariant))
			}
		}

		if err := t.balancer.Check(n); err != nil {
			result = multierr.Append(result, err)
		}

		prev = n
	}

	if count != t.size {
		result = multierr.Append(result, fmt.Errorf("size is %d but %d nodes are linked: %w", t.size, count, ErrInvariant))
	}

	return result
}

func (t *SearchTree[K, V]) Size() int { return t.size }

func (t *SearchTree[K, V]) IsEmpty() bool { return t.size == 0 }

func (t *SearchTree[K, V]) Clear() {
	t.hierarchy.Clear()
	t.size = 0
}

func (t *SearchTree[K, V]) Clone() Table[K, V] {
	return &SearchTree[K, V]{
		hierarchy: t.hierarchy.Clone(func(i TreeItem[K, V]) TreeItem[K, V] {
			if i.Synonyms != nil {
				i.Synonyms = append([]V(nil), i.Synonyms...)
			}
			return i
		}),
		balancer: t.balancer.Clone(),
		size:     t.size,
	}
}

// Iterator walks the items in ascending key order
func (t *SearchTree[K, V]) Iterator() Iterator[K, V] {
	return &SearchTreeIterator[K, V]{iter: t.hierarchy.Iterator()}
}

func (i *SearchTreeIterator[K, V]) Next() bool { return i.iter.Next() }

func (i *SearchTreeIterator[K, V]) Value() Item[K, V] { return i.iter.Node().Data.Item }
