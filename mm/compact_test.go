package mm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, m *Compact[int], values ...int) {
	t.Helper()

	for _, v := range values {
		p, err := m.Allocate()
		require.NoError(t, err)
		*p = v
	}
}

func contents(m *Compact[int]) []int {
	out := make([]int, 0, m.Count())
	for i := 0; i < m.Count(); i++ {
		out = append(out, *m.At(i))
	}

	return out
}

func TestAllocateGrowsAndKeepsValues(t *testing.T) {
	m := NewCompact[int](4)

	fill(t, m, 100)
	fill(t, m, 101, 102, 103, 104, 105)

	require.Equal(t, 6, m.Count())
	assert.GreaterOrEqual(t, m.Capacity(), 6)
	assert.Equal(t, []int{100, 101, 102, 103, 104, 105}, contents(m))
}

func TestAllocateDoublesCapacity(t *testing.T) {
	m := NewCompact[int](2)

	fill(t, m, 1, 2)
	require.Equal(t, 2, m.Capacity())

	fill(t, m, 3)
	assert.Equal(t, 4, m.Capacity())
}

func TestAllocateAtShiftsRight(t *testing.T) {
	m := NewCompact[int](0)
	fill(t, m, 1, 2, 4)

	p, err := m.AllocateAt(2)
	require.NoError(t, err)
	*p = 3

	p, err = m.AllocateAt(0)
	require.NoError(t, err)
	*p = 0

	assert.Equal(t, []int{0, 1, 2, 3, 4}, contents(m))

	_, err = m.AllocateAt(7)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = m.AllocateAt(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReleaseAtShiftsLeft(t *testing.T) {
	m := NewCompact[int](0)
	fill(t, m, 1, 2, 3, 4)

	require.NoError(t, m.ReleaseAt(1))
	assert.Equal(t, []int{1, 3, 4}, contents(m))

	require.NoError(t, m.ReleaseAt(2))
	assert.Equal(t, []int{1, 3}, contents(m))

	assert.ErrorIs(t, m.ReleaseAt(2), ErrOutOfRange)
	assert.ErrorIs(t, m.ReleaseAt(-1), ErrOutOfRange)
}

func TestReleaseTruncatesTail(t *testing.T) {
	m := NewCompact[int](0)
	fill(t, m, 1, 2, 3, 4, 5)

	require.NoError(t, m.Release(m.At(2)))
	assert.Equal(t, []int{1, 2}, contents(m))

	other := NewCompact[int](0)
	fill(t, other, 9)
	assert.ErrorIs(t, m.Release(other.At(0)), ErrOutOfRange)

	m.Clear()
	assert.Equal(t, 0, m.Count())
}

func TestChangeCapacityPreservesIndices(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected []int
	}{
		{"grow", 32, []int{10, 20, 30, 40, 50}},
		{"exact", 5, []int{10, 20, 30, 40, 50}},
		{"shrink below count", 3, []int{10, 20, 30}},
		{"empty", 0, []int{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := NewCompact[int](8)
			fill(t, m, 10, 20, 30, 40, 50)

			require.NoError(t, m.ChangeCapacity(test.capacity))
			assert.Equal(t, test.capacity, m.Capacity())
			assert.Equal(t, test.expected, contents(m))
		})
	}
}

func TestGrowAfterZeroCapacity(t *testing.T) {
	m := NewCompact[int](4)
	require.NoError(t, m.ChangeCapacity(0))

	fill(t, m, 7)
	assert.Equal(t, InitSize, m.Capacity())
	assert.Equal(t, []int{7}, contents(m))
}

func TestShrinkMemory(t *testing.T) {
	m := NewCompact[int](64)
	fill(t, m, 1, 2, 3, 4, 5, 6)

	require.NoError(t, m.ShrinkMemory())
	assert.Equal(t, 6, m.Capacity())

	require.NoError(t, m.ReleaseFrom(1))
	require.NoError(t, m.ShrinkMemory())
	assert.Equal(t, InitSize, m.Capacity())
	assert.Equal(t, []int{1}, contents(m))
}

func TestOutOfMemory(t *testing.T) {
	m := NewCompactWithLimit[int](2, 3)
	fill(t, m, 1, 2, 3)

	_, err := m.Allocate()
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 3, m.Count())

	assert.ErrorIs(t, m.ChangeCapacity(4), ErrOutOfMemory)
}

func TestDefaultLimit(t *testing.T) {
	assert.Equal(t, maxCapacity, defaultLimit[struct{}]())

	limit := defaultLimit[[64]byte]()
	assert.Greater(t, limit, 0)
	assert.LessOrEqual(t, limit, maxCapacity)
	assert.GreaterOrEqual(t, defaultLimit[byte](), limit)

	assert.Equal(t, limit, NewCompact[[64]byte](0).limit)
}

func TestIndexOfAndAddressOf(t *testing.T) {
	m := NewCompact[int](8)
	fill(t, m, 1, 2, 3)

	for i := 0; i < m.Count(); i++ {
		assert.Equal(t, i, m.IndexOf(m.At(i)))
		assert.Same(t, m.At(i), m.AddressOf(m.At(i)))
	}

	foreign := 5
	assert.Equal(t, InvalidIndex, m.IndexOf(&foreign))
	assert.Nil(t, m.AddressOf(&foreign))
	assert.Equal(t, InvalidIndex, m.IndexOf(nil))
}

func TestIndexOfZeroSizedRecords(t *testing.T) {
	m := NewCompact[struct{}](4)

	_, err := m.Allocate()
	require.NoError(t, err)

	assert.Equal(t, 0, m.IndexOf(m.At(0)))
}

func TestSwap(t *testing.T) {
	m := NewCompact[int](0)
	fill(t, m, 1, 2, 3)

	require.NoError(t, m.Swap(0, 2))
	assert.Equal(t, []int{3, 2, 1}, contents(m))
	assert.ErrorIs(t, m.Swap(0, 3), ErrOutOfRange)
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewCompact[int](0)
	fill(t, m, 1, 2, 3)

	c := m.Clone()
	eq := func(a, b int) bool { return a == b }

	assert.True(t, m.Equal(c, eq))
	assert.Equal(t, m.Capacity(), c.Capacity())

	*c.At(0) = 42
	assert.False(t, m.Equal(c, eq))
	assert.Equal(t, 1, *m.At(0))
}

func TestAtPanicsOutsideLiveRegion(t *testing.T) {
	m := NewCompact[int](8)
	fill(t, m, 1)

	assert.Panics(t, func() { m.At(1) })
}
