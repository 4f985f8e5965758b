package mm

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/pbnjay/memory"
)

// This package defines the compact memory manager,
// a dense block of records where the live ones
// always occupy the prefix [0, count)

const (
	InitSize = 4

	// InvalidIndex is returned by IndexOf for
	// records that do not live in the block
	InvalidIndex = -1

	maxCapacity = 1 << 40
)

var (
	ErrOutOfRange  = errors.New("index out of range")
	ErrOutOfMemory = errors.New("out of memory")
)

// Physical memory in bytes, zero when the platform does not tell
var totalMemory = memory.TotalMemory()

type Compact[T any] struct {
	blocks []T
	count  int
	limit  int
}

// NewCompact creates a manager limited to as many
// records as fit into physical memory
func NewCompact[T any](capacity int) *Compact[T] {
	return NewCompactWithLimit[T](capacity, defaultLimit[T]())
}

func defaultLimit[T any]() int {
	var zero T

	size := uint64(unsafe.Sizeof(zero))
	if size == 0 || totalMemory == 0 || totalMemory/size > maxCapacity {
		return maxCapacity
	}

	return int(totalMemory / size)
}

// NewCompactWithLimit creates a manager which refuses
// to grow beyond limit records
func NewCompactWithLimit[T any](capacity, limit int) *Compact[T] {
	if capacity <= 0 {
		capacity = InitSize
	}

	if limit < capacity {
		limit = capacity
	}

	return &Compact[T]{blocks: make([]T, capacity), limit: limit}
}

func (m *Compact[T]) Count() int { return m.count }

func (m *Compact[T]) Capacity() int { return len(m.blocks) }

// Allocate constructs a zero record at the end of the live region.
// The returned pointer is only valid until the next call that may grow the block.
func (m *Compact[T]) Allocate() (*T, error) {
	return m.AllocateAt(m.count)
}

// AllocateAt shifts [index, count) one slot to the right
// and constructs a zero record at index.
func (m *Compact[T]) AllocateAt(index int) (*T, error) {
	if index < 0 || index > m.count {
		return nil, fmt.Errorf("allocate at %d with %d records: %w", index, m.count, ErrOutOfRange)
	}

	if m.count == len(m.blocks) {
		if err := m.grow(); err != nil {
			return nil, err
		}
	}

	if index < m.count {
		copy(m.blocks[index+1:m.count+1], m.blocks[index:m.count])
	}

	var zero T

	m.blocks[index] = zero
	m.count++

	return &m.blocks[index], nil
}

// ReleaseAt destroys the record at index and closes the gap.
func (m *Compact[T]) ReleaseAt(index int) error {
	if index < 0 || index >= m.count {
		return fmt.Errorf("release at %d with %d records: %w", index, m.count, ErrOutOfRange)
	}

	copy(m.blocks[index:m.count-1], m.blocks[index+1:m.count])

	var zero T

	m.count--
	m.blocks[m.count] = zero

	return nil
}

// Release destroys p and every record after it.
func (m *Compact[T]) Release(p *T) error {
	i := m.IndexOf(p)
	if i == InvalidIndex {
		return fmt.Errorf("release of foreign record: %w", ErrOutOfRange)
	}

	return m.ReleaseFrom(i)
}

// ReleaseFrom truncates the live region to [0, index).
func (m *Compact[T]) ReleaseFrom(index int) error {
	if index < 0 || index > m.count {
		return fmt.Errorf("release from %d with %d records: %w", index, m.count, ErrOutOfRange)
	}

	var zero T

	for i := index; i < m.count; i++ {
		m.blocks[i] = zero
	}

	m.count = index

	return nil
}

func (m *Compact[T]) Clear() {
	_ = m.ReleaseFrom(0)
}

// ChangeCapacity moves the live records to a new block of the given size.
// Indices survive the move, pointers obtained before do not.
func (m *Compact[T]) ChangeCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("capacity %d: %w", capacity, ErrOutOfRange)
	}

	if capacity > m.limit {
		return fmt.Errorf("capacity %d exceeds limit %d: %w", capacity, m.limit, ErrOutOfMemory)
	}

	if capacity == len(m.blocks) {
		return nil
	}

	if capacity < m.count {
		if err := m.ReleaseFrom(capacity); err != nil {
			return err
		}
	}

	blocks := make([]T, capacity)
	copy(blocks, m.blocks[:m.count])
	m.blocks = blocks

	return nil
}

// ShrinkMemory trims the capacity down to the live count,
// but never below InitSize.
func (m *Compact[T]) ShrinkMemory() error {
	capacity := m.count
	if capacity < InitSize {
		capacity = InitSize
	}

	return m.ChangeCapacity(capacity)
}

func (m *Compact[T]) grow() error {
	capacity := 2 * len(m.blocks)
	if capacity == 0 {
		capacity = InitSize
	}

	if capacity > m.limit {
		capacity = m.limit
	}

	if capacity <= m.count {
		return fmt.Errorf("cannot grow past %d records: %w", m.count, ErrOutOfMemory)
	}

	return m.ChangeCapacity(capacity)
}

// At returns the live record at index. It panics on
// an index outside of [0, count), like slice indexing.
func (m *Compact[T]) At(index int) *T {
	if index < 0 || index >= m.count {
		panic(fmt.Sprintf("mm: index %d out of range [0, %d)", index, m.count))
	}

	return &m.blocks[index]
}

// IndexOf translates a record pointer into its position,
// or InvalidIndex when p does not point into the live region.
func (m *Compact[T]) IndexOf(p *T) int {
	if p == nil || m.count == 0 {
		return InvalidIndex
	}

	size := unsafe.Sizeof(m.blocks[0])
	if size == 0 {
		for i := 0; i < m.count; i++ {
			if &m.blocks[i] == p {
				return i
			}
		}

		return InvalidIndex
	}

	var (
		base = uintptr(unsafe.Pointer(&m.blocks[0]))
		addr = uintptr(unsafe.Pointer(p))
	)

	if addr < base {
		return InvalidIndex
	}

	offset := addr - base
	if offset%size != 0 || offset/size >= uintptr(m.count) {
		return InvalidIndex
	}

	return int(offset / size)
}

func (m *Compact[T]) AddressOf(p *T) *T {
	if m.IndexOf(p) == InvalidIndex {
		return nil
	}

	return p
}

func (m *Compact[T]) Swap(i, j int) error {
	if i < 0 || i >= m.count || j < 0 || j >= m.count {
		return fmt.Errorf("swap %d and %d with %d records: %w", i, j, m.count, ErrOutOfRange)
	}

	m.blocks[i], m.blocks[j] = m.blocks[j], m.blocks[i]

	return nil
}

// Assign replaces the content of m with a copy of other,
// taking over its capacity.
func (m *Compact[T]) Assign(other *Compact[T]) {
	if m == other {
		return
	}

	m.blocks = make([]T, len(other.blocks))
	m.count = other.count
	m.limit = other.limit

	copy(m.blocks, other.blocks[:other.count])
}

func (m *Compact[T]) Clone() *Compact[T] {
	c := &Compact[T]{}
	c.Assign(m)

	return c
}

// Equal compares the live regions record by record.
func (m *Compact[T]) Equal(other *Compact[T], eq func(a, b T) bool) bool {
	if m == other {
		return true
	}

	if m.count != other.count {
		return false
	}

	for i := 0; i < m.count; i++ {
		if !eq(m.blocks[i], other.blocks[i]) {
			return false
		}
	}

	return true
}
