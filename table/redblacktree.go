package table

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"golang.org/x/exp/constraints"
)

type (
	// RedBlackTree is a reference backend on top of gods,
	// used as a baseline next to the hand written tables
	RedBlackTree[K constraints.Ordered, V any] struct {
		tree *redblacktree.Tree
	}

	RedBlackTreeIterator[K constraints.Ordered, V any] struct {
		iter redblacktree.Iterator
	}
)

var (
	_ Table[int, int]    = (*RedBlackTree[int, int])(nil)
	_ Iterator[int, int] = (*RedBlackTreeIterator[int, int])(nil)
)

func NewRedBlackTree[K constraints.Ordered, V any]() *RedBlackTree[K, V] {
	return &RedBlackTree[K, V]{tree: redblacktree.NewWith(compare[K])}
}

func compare[K constraints.Ordered](a, b interface{}) int {
	x, y := a.(K), b.(K)

	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func value[V any](v interface{}) V {
	if v == nil {
		var zero V
		return zero
	}

	return v.(V)
}

func (t *RedBlackTree[K, V]) Insert(key K, data V) error {
	if _, ok := t.tree.Get(key); ok {
		return errKeyExists(key)
	}

	t.tree.Put(key, data)

	return nil
}

func (t *RedBlackTree[K, V]) TryFind(key K) (V, bool) {
	v, ok := t.tree.Get(key)
	if !ok {
		var zero V
		return zero, false
	}

	return value[V](v), true
}

func (t *RedBlackTree[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *RedBlackTree[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

func (t *RedBlackTree[K, V]) Remove(key K) (V, error) {
	v, ok := t.tree.Get(key)
	if !ok {
		var zero V
		return zero, errKeyNotFound(key)
	}

	t.tree.Remove(key)

	return value[V](v), nil
}

func (t *RedBlackTree[K, V]) Size() int { return t.tree.Size() }

func (t *RedBlackTree[K, V]) IsEmpty() bool { return t.tree.Empty() }

func (t *RedBlackTree[K, V]) Clear() { t.tree.Clear() }

func (t *RedBlackTree[K, V]) Clone() Table[K, V] {
	c := NewRedBlackTree[K, V]()

	for it := t.tree.Iterator(); it.Next(); {
		c.tree.Put(it.Key(), it.Value())
	}

	return c
}

func (t *RedBlackTree[K, V]) Iterator() Iterator[K, V] {
	return &RedBlackTreeIterator[K, V]{iter: t.tree.Iterator()}
}

func (t *RedBlackTreeIterator[K, V]) Next() bool { return t.iter.Next() }

func (t *RedBlackTreeIterator[K, V]) Value() Item[K, V] {
	return Item[K, V]{
		Key:  t.iter.Key().(K),
		Data: value[V](t.iter.Value()),
	}
}
