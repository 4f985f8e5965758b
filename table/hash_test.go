package table

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
)

func modHash(n uint64) HashFunc[int] {
	return func(k int) uint64 { return uint64(k) % n }
}

func newHashTable[K constraints.Ordered, V any](t *testing.T, hash HashFunc[K], capacity int) *HashTable[K, V] {
	t.Helper()

	tab, err := NewHashTable[K, V](hash, capacity)
	require.NoError(t, err)

	return tab
}

func TestHashCollisionsShareBucket(t *testing.T) {
	tab := newHashTable[int, string](t, modHash(4), 4)

	for _, k := range []int{1, 5, 9} {
		require.NoError(t, tab.Insert(k, fmt.Sprint(k)))
	}

	assert.Equal(t, 3, tab.Size())
	assert.Equal(t, []int{0, 3, 0, 0}, tab.BucketSizes())

	v, err := tab.Remove(5)
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	for _, k := range []int{1, 9} {
		v, err := tab.Find(k)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(k), v)
	}

	assert.Equal(t, 2, tab.Size())
}

func TestHashBucketsDoNotInterfere(t *testing.T) {
	tab := newHashTable[int, int](t, modHash(4), 4)

	for _, k := range []int{2, 6, 10} {
		require.NoError(t, tab.Insert(k, k))
	}

	for _, k := range []int{1, 3, 4, 7, 8, 11} {
		require.NoError(t, tab.Insert(k, k))
	}

	_, err := tab.Remove(7)
	require.NoError(t, err)

	for _, k := range []int{2, 6, 10} {
		assert.True(t, tab.Contains(k))
	}
}

func TestHashEmptiedBucketIsReleased(t *testing.T) {
	tab := newHashTable[int, int](t, modHash(4), 4)

	require.NoError(t, tab.Insert(3, 3))
	_, err := tab.Remove(3)
	require.NoError(t, err)

	assert.Nil(t, *tab.primary.Access(3))
	assert.True(t, tab.IsEmpty())

	_, err = tab.Remove(3)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestHashIteratorSkipsEmptyBuckets(t *testing.T) {
	tests := []struct {
		name string
		keys []int
	}{
		{"empty", nil},
		{"last bucket only", []int{7, 15}},
		{"first bucket only", []int{0, 8, 16}},
		{"sparse", []int{1, 4, 12, 6, 7}},
		{"full", []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tab := newHashTable[int, int](t, modHash(8), 8)

			for _, k := range test.keys {
				require.NoError(t, tab.Insert(k, k))
			}

			keys := Keys[int, int](tab)
			sort.Ints(keys)

			expected := append([]int(nil), test.keys...)
			sort.Ints(expected)

			assert.Equal(t, expected, keys)
		})
	}
}

func TestHashDefaults(t *testing.T) {
	tab := newHashTable[string, int](t, nil, -1)

	assert.Equal(t, DefaultCapacity, tab.Capacity())

	for i := 0; i < 500; i++ {
		require.NoError(t, tab.Insert(fmt.Sprint("key-", i), i))
	}

	for i := 0; i < 500; i++ {
		v, err := tab.Find(fmt.Sprint("key-", i))
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	total := 0
	for _, s := range tab.BucketSizes() {
		total += s
	}

	assert.Equal(t, 500, total)
}

func TestMD5HashIsDeterministic(t *testing.T) {
	h := MD5Hash[string]()

	assert.Equal(t, h("abc"), h("abc"))
	assert.NotEqual(t, h("abc"), h("abd"))

	i := IntegerHash[int64]()
	assert.Equal(t, uint64(42), i(42))
}

func TestHashCloneKeepsHashFunction(t *testing.T) {
	tab := newHashTable[int, int](t, modHash(4), 4)

	for _, k := range []int{1, 5, 2} {
		require.NoError(t, tab.Insert(k, k))
	}

	c := tab.Clone().(*HashTable[int, int])

	assert.Equal(t, tab.BucketSizes(), c.BucketSizes())

	_, err := c.Remove(5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 0}, tab.BucketSizes())
	assert.Equal(t, []int{0, 1, 1, 0}, c.BucketSizes())
}

func TestMD5HashFoldsNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)

	h := MD5Hash[float64]()
	assert.Equal(t, h(0), h(negZero))

	tab := newHashTable[float64, string](t, nil, 0)

	require.NoError(t, tab.Insert(0, "zero"))
	assert.ErrorIs(t, tab.Insert(negZero, "negative zero"), ErrKeyExists)
	assert.Equal(t, 1, tab.Size())

	v, err := tab.Find(negZero)
	require.NoError(t, err)
	assert.Equal(t, "zero", v)

	_, err = tab.Remove(negZero)
	require.NoError(t, err)
	assert.True(t, tab.IsEmpty())
}
