package table

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/nStangl/ds-tables/mm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedIterationIsAscending(t *testing.T) {
	tab := NewSortedSequenceTable[int, string]()

	for _, k := range []int{5, 3, 8, 1} {
		require.NoError(t, tab.Insert(k, ""))
	}

	assert.Equal(t, []int{1, 3, 5, 8}, Keys[int, string](tab))
}

func TestSortedInsertPositions(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int
		expected []int
	}{
		{"before first", []int{10, 20, 5}, []int{5, 10, 20}},
		{"after last", []int{10, 20, 30}, []int{10, 20, 30}},
		{"between", []int{10, 30, 20}, []int{10, 20, 30}},
		{"descending", []int{9, 7, 5, 3, 1}, []int{1, 3, 5, 7, 9}},
		{"interleaved", []int{50, 10, 40, 20, 30, 60, 0}, []int{0, 10, 20, 30, 40, 50, 60}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tab := NewSortedSequenceTable[int, int]()

			for _, k := range test.keys {
				require.NoError(t, tab.Insert(k, k))
			}

			assert.Equal(t, test.expected, Keys[int, int](tab))
		})
	}
}

func TestSortedSearchNeighbour(t *testing.T) {
	tab := NewSortedSequenceTable[int, int]()

	i, found := tab.search(4)
	assert.Equal(t, mm.InvalidIndex, i)
	assert.False(t, found)

	for _, k := range []int{10, 20, 30} {
		require.NoError(t, tab.Insert(k, k))
	}

	tests := []struct {
		key      int
		index    int
		expected bool
	}{
		{20, 1, true},
		{10, 0, true},
		{30, 2, true},
		{5, 0, false},
		{15, 1, false},
		{35, 2, false},
	}

	for _, test := range tests {
		i, found := tab.search(test.key)
		assert.Equal(t, test.index, i, "search(%d)", test.key)
		assert.Equal(t, test.expected, found, "search(%d)", test.key)
	}
}

func TestSortedRandomKeysStayAscending(t *testing.T) {
	var (
		tab = NewSortedSequenceTable[int, int]()
		rng = rand.New(rand.NewSource(3))
	)

	for i := 0; i < 1000; i++ {
		if err := tab.Insert(rng.Intn(1_000_000), i); err != nil {
			require.ErrorIs(t, err, ErrKeyExists)
		}
	}

	keys := Keys[int, int](tab)
	require.Equal(t, tab.Size(), len(keys))

	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}
}

func TestSortedFirstLast(t *testing.T) {
	tab := NewSortedSequenceTable[string, int]()

	_, err := tab.First()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = tab.Last()
	assert.ErrorIs(t, err, ErrEmpty)

	for i, k := range []string{"m", "c", "x"} {
		require.NoError(t, tab.Insert(k, i))
	}

	first, err := tab.First()
	require.NoError(t, err)
	assert.Equal(t, "c", first.Key)

	last, err := tab.Last()
	require.NoError(t, err)
	assert.Equal(t, "x", last.Key)
}

func TestSortedRemoveKeepsOrder(t *testing.T) {
	tab := NewSortedSequenceTable[int, int]()

	for _, k := range []int{1, 2, 3, 4, 5} {
		require.NoError(t, tab.Insert(k, k*k))
	}

	for _, k := range []int{1, 3, 5} {
		v, err := tab.Remove(k)
		require.NoError(t, err)
		assert.Equal(t, k*k, v)
	}

	assert.Equal(t, []int{2, 4}, Keys[int, int](tab))
}

func TestUnsortedRemoveSwapsWithLast(t *testing.T) {
	tab := NewUnsortedSequenceTable[int, string]()

	for _, k := range []int{1, 2, 3, 4} {
		require.NoError(t, tab.Insert(k, ""))
	}

	assert.Equal(t, []int{1, 2, 3, 4}, Keys[int, string](tab))

	_, err := tab.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, Keys[int, string](tab))

	_, err = tab.Remove(3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, Keys[int, string](tab))
}

func TestUnsortedGrowsPastInitialCapacity(t *testing.T) {
	tab := NewUnsortedSequenceTable[int, int]()

	for i := 0; i < 100; i++ {
		require.NoError(t, tab.Insert(i, i))
	}

	keys := Keys[int, int](tab)
	assert.True(t, sort.IntsAreSorted(keys))
	assert.Len(t, keys, 100)
}
