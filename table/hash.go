package table

import (
	"fmt"

	"github.com/nStangl/ds-tables/amt"
	"github.com/nStangl/ds-tables/util"
	"golang.org/x/exp/constraints"
)

type (
	// HashFunc must return the same value for equal keys,
	// the table reduces it modulo its capacity
	HashFunc[K any] func(K) uint64

	// HashTable chains colliding items into per bucket synonym
	// tables. The number of buckets is fixed at construction.
	HashTable[K constraints.Ordered, V any] struct {
		primary *amt.ImplicitSequence[*UnsortedSequenceTable[K, V]]
		hash    HashFunc[K]
		size    int
	}

	HashTableIterator[K constraints.Ordered, V any] struct {
		primary *amt.ImplicitSequence[*UnsortedSequenceTable[K, V]]
		bucket  int
		synonym Iterator[K, V]
	}
)

const DefaultCapacity = 100

var (
	_ Table[int, int]    = (*HashTable[int, int])(nil)
	_ Iterator[int, int] = (*HashTableIterator[int, int])(nil)
)

// MD5Hash hashes the printed form of a key with MD5
// and folds the 128 bit digest into 64 bits
func MD5Hash[K constraints.Ordered]() HashFunc[K] {
	return func(key K) uint64 {
		// -0 equals 0 but prints differently
		var zero K
		if key == zero {
			key = zero
		}

		h := util.MD5HashUint128(fmt.Sprint(key))
		return h.Hi ^ h.Lo
	}
}

func IntegerHash[K constraints.Integer]() HashFunc[K] {
	return func(key K) uint64 { return uint64(key) }
}

// NewHashTable creates a table with capacity buckets. A nil hash
// falls back to MD5Hash, a non positive capacity to DefaultCapacity.
func NewHashTable[K constraints.Ordered, V any](hash HashFunc[K], capacity int) (*HashTable[K, V], error) {
	if hash == nil {
		hash = MD5Hash[K]()
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	primary, err := amt.NewImplicitSequenceFilled[*UnsortedSequenceTable[K, V]](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d buckets: %w", capacity, err)
	}

	return &HashTable[K, V]{primary: primary, hash: hash}, nil
}

func (t *HashTable[K, V]) bucket(key K) **UnsortedSequenceTable[K, V] {
	return t.primary.Access(int(t.hash(key) % uint64(t.primary.Size())))
}

func (t *HashTable[K, V]) Insert(key K, data V) error {
	b := t.bucket(key)
	if *b == nil {
		*b = NewUnsortedSequenceTable[K, V]()
	}

	if err := (*b).Insert(key, data); err != nil {
		return err
	}

	t.size++

	return nil
}

func (t *HashTable[K, V]) TryFind(key K) (V, bool) {
	b := t.bucket(key)
	if *b == nil {
		var zero V
		return zero, false
	}

	return (*b).TryFind(key)
}

func (t *HashTable[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *HashTable[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

func (t *HashTable[K, V]) Remove(key K) (V, error) {
	b := t.bucket(key)
	if *b == nil {
		var zero V
		return zero, errKeyNotFound(key)
	}

	data, err := (*b).Remove(key)
	if err != nil {
		return data, err
	}

	if (*b).IsEmpty() {
		*b = nil
	}

	t.size--

	return data, nil
}

func (t *HashTable[K, V]) Size() int { return t.size }

func (t *HashTable[K, V]) IsEmpty() bool { return t.size == 0 }

// Capacity is the number of buckets in the primary region
func (t *HashTable[K, V]) Capacity() int { return t.primary.Size() }

// BucketSizes reports how many items every bucket holds
func (t *HashTable[K, V]) BucketSizes() []int {
	sizes := make([]int, t.primary.Size())

	for i := range sizes {
		if b := *t.primary.Access(i); b != nil {
			sizes[i] = b.Size()
		}
	}

	return sizes
}

func (t *HashTable[K, V]) Clear() {
	for it := t.primary.Iterator(); it.Next(); {
		*it.Value() = nil
	}

	t.size = 0
}

func (t *HashTable[K, V]) Clone() Table[K, V] {
	c := &HashTable[K, V]{primary: t.primary.Clone(), hash: t.hash, size: t.size}

	for i := 0; i < c.primary.Size(); i++ {
		if b := c.primary.Access(i); *b != nil {
			*b = (*b).clone()
		}
	}

	return c
}

func (t *HashTable[K, V]) Iterator() Iterator[K, V] {
	return &HashTableIterator[K, V]{primary: t.primary, bucket: -1}
}

// Next drains the current synonym table, then moves
// to the next non empty bucket of the primary region
func (i *HashTableIterator[K, V]) Next() bool {
	for {
		if i.synonym != nil && i.synonym.Next() {
			return true
		}

		i.synonym = nil

		if i.bucket >= i.primary.Size() {
			return false
		}

		i.bucket++

		if i.bucket < i.primary.Size() {
			if b := *i.primary.Access(i.bucket); b != nil {
				i.synonym = b.Iterator()
			}
		}
	}
}

func (i *HashTableIterator[K, V]) Value() Item[K, V] { return i.synonym.Value() }
