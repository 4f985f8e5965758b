package table

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/nStangl/ds-tables/amt"
	"golang.org/x/exp/constraints"
)

// TreapBalancer keeps a min-heap on node priorities on top of
// the key order, which makes the tree a random binary search tree
type TreapBalancer[K constraints.Ordered, V any] struct {
	rng *rand.Rand
}

var _ Balancer[int, int] = (*TreapBalancer[int, int])(nil)

// NewTreap creates a treap drawing priorities from rng.
// A nil rng is seeded from the clock.
func NewTreap[K constraints.Ordered, V any](rng *rand.Rand) *SearchTree[K, V] {
	return NewSearchTree[K, V](NewTreapBalancer[K, V](rng))
}

func NewTreapBalancer[K constraints.Ordered, V any](rng *rand.Rand) *TreapBalancer[K, V] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &TreapBalancer[K, V]{rng: rng}
}

// AfterInsert draws a priority for n and rotates it up
// while its parent has a strictly greater one
func (b *TreapBalancer[K, V]) AfterInsert(t *SearchTree[K, V], n *amt.BinaryNode[TreeItem[K, V]]) {
	n.Data.Priority = b.rng.Int63()

	for p := n.Parent(); p != nil && p.Data.Priority > n.Data.Priority; p = n.Parent() {
		if n.IsLeftSon() {
			_ = t.RotateRight(n)
		} else {
			_ = t.RotateLeft(n)
		}
	}
}

// BeforeRemove sinks n below its sons until it has
// at most one, always lifting the son with the smaller priority
func (b *TreapBalancer[K, V]) BeforeRemove(t *SearchTree[K, V], n *amt.BinaryNode[TreeItem[K, V]]) {
	n.Data.Priority = math.MaxInt64

	for n.Degree() == 2 {
		left, right := n.LeftSon(), n.RightSon()

		if left.Data.Priority < right.Data.Priority {
			_ = t.RotateRight(left)
		} else {
			_ = t.RotateLeft(right)
		}
	}
}

func (b *TreapBalancer[K, V]) Check(n *amt.BinaryNode[TreeItem[K, V]]) error {
	for _, son := range []*amt.BinaryNode[TreeItem[K, V]]{n.LeftSon(), n.RightSon()} {
		if son != nil && n.Data.Priority > son.Data.Priority {
			return fmt.Errorf("priority %d of %v exceeds priority %d of son %v: %w",
				n.Data.Priority, n.Data.Key, son.Data.Priority, son.Data.Key, ErrInvariant)
		}
	}

	return nil
}

// Clone gives the copy its own generator, seeded from this one
func (b *TreapBalancer[K, V]) Clone() Balancer[K, V] {
	return &TreapBalancer[K, V]{rng: rand.New(rand.NewSource(b.rng.Int63()))}
}
