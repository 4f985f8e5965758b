package table

import (
	"fmt"

	"github.com/nStangl/ds-tables/amt"
	"github.com/nStangl/ds-tables/mm"
	"golang.org/x/exp/constraints"
)

type (
	// UnsortedSequenceTable keeps its items in insertion order,
	// every lookup is a linear scan
	UnsortedSequenceTable[K constraints.Ordered, V any] struct {
		seq *amt.ImplicitSequence[Item[K, V]]
	}

	// SortedSequenceTable keeps its items in strictly
	// ascending key order and looks them up by binary search
	SortedSequenceTable[K constraints.Ordered, V any] struct {
		seq *amt.ImplicitSequence[Item[K, V]]
	}

	SequenceIterator[K constraints.Ordered, V any] struct {
		iter *amt.SequenceIterator[Item[K, V]]
	}
)

var (
	_ Table[int, int]    = (*UnsortedSequenceTable[int, int])(nil)
	_ Table[int, int]    = (*SortedSequenceTable[int, int])(nil)
	_ Iterator[int, int] = (*SequenceIterator[int, int])(nil)
)

func NewUnsortedSequenceTable[K constraints.Ordered, V any]() *UnsortedSequenceTable[K, V] {
	return &UnsortedSequenceTable[K, V]{seq: amt.NewImplicitSequence[Item[K, V]](mm.InitSize)}
}

func (t *UnsortedSequenceTable[K, V]) indexOf(key K) int {
	return t.seq.FindIndex(func(i *Item[K, V]) bool { return i.Key == key })
}

func (t *UnsortedSequenceTable[K, V]) Insert(key K, data V) error {
	if t.indexOf(key) != mm.InvalidIndex {
		return errKeyExists(key)
	}

	item, err := t.seq.InsertLast()
	if err != nil {
		return fmt.Errorf("failed to allocate item for %v: %w", key, err)
	}

	item.Key = key
	item.Data = data

	return nil
}

func (t *UnsortedSequenceTable[K, V]) TryFind(key K) (V, bool) {
	i := t.indexOf(key)
	if i == mm.InvalidIndex {
		var zero V
		return zero, false
	}

	return t.seq.Access(i).Data, true
}

func (t *UnsortedSequenceTable[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *UnsortedSequenceTable[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

// Remove moves the item to the end of the sequence
// so it can be dropped without shifting the rest
func (t *UnsortedSequenceTable[K, V]) Remove(key K) (V, error) {
	i := t.indexOf(key)
	if i == mm.InvalidIndex {
		var zero V
		return zero, errKeyNotFound(key)
	}

	data := t.seq.Access(i).Data

	if last := t.seq.Size() - 1; i != last {
		if err := t.seq.Swap(i, last); err != nil {
			return data, fmt.Errorf("failed to move %v to the end: %w", key, err)
		}
	}

	if err := t.seq.RemoveLast(); err != nil {
		return data, fmt.Errorf("failed to release %v: %w", key, err)
	}

	return data, nil
}

func (t *UnsortedSequenceTable[K, V]) Size() int { return t.seq.Size() }

func (t *UnsortedSequenceTable[K, V]) IsEmpty() bool { return t.seq.IsEmpty() }

func (t *UnsortedSequenceTable[K, V]) Clear() { t.seq.Clear() }

func (t *UnsortedSequenceTable[K, V]) Clone() Table[K, V] { return t.clone() }

func (t *UnsortedSequenceTable[K, V]) clone() *UnsortedSequenceTable[K, V] {
	return &UnsortedSequenceTable[K, V]{seq: cloneItems(t.seq)}
}

func (t *UnsortedSequenceTable[K, V]) Iterator() Iterator[K, V] {
	return &SequenceIterator[K, V]{iter: t.seq.Iterator()}
}

func NewSortedSequenceTable[K constraints.Ordered, V any]() *SortedSequenceTable[K, V] {
	return &SortedSequenceTable[K, V]{seq: amt.NewImplicitSequence[Item[K, V]](mm.InitSize)}
}

// search narrows [first, last) around key. It returns the index of
// the item with the key, or the index of its nearest neighbour
// when the key is absent, or mm.InvalidIndex on an empty table.
func (t *SortedSequenceTable[K, V]) search(key K) (int, bool) {
	first, last := 0, t.seq.Size()
	if last == 0 {
		return mm.InvalidIndex, false
	}

	for first < last {
		mid := first + (last-first)/2

		switch k := t.seq.Access(mid).Key; {
		case k < key:
			first = mid + 1
		case k > key:
			last = mid
		default:
			return mid, true
		}
	}

	// first is where key would go; the neighbour is
	// the item there, or the last one past the end
	if first == t.seq.Size() {
		first--
	}

	return first, false
}

func (t *SortedSequenceTable[K, V]) Insert(key K, data V) error {
	var (
		item *Item[K, V]
		err  error
	)

	if t.seq.IsEmpty() {
		item, err = t.seq.InsertFirst()
	} else {
		i, found := t.search(key)
		if found {
			return errKeyExists(key)
		}

		if key > t.seq.Access(i).Key {
			item, err = t.seq.InsertAt(i + 1)
		} else {
			item, err = t.seq.InsertAt(i)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to allocate item for %v: %w", key, err)
	}

	item.Key = key
	item.Data = data

	return nil
}

func (t *SortedSequenceTable[K, V]) TryFind(key K) (V, bool) {
	i, found := t.search(key)
	if !found {
		var zero V
		return zero, false
	}

	return t.seq.Access(i).Data, true
}

func (t *SortedSequenceTable[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *SortedSequenceTable[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

func (t *SortedSequenceTable[K, V]) Remove(key K) (V, error) {
	i, found := t.search(key)
	if !found {
		var zero V
		return zero, errKeyNotFound(key)
	}

	data := t.seq.Access(i).Data

	if err := t.seq.Remove(i); err != nil {
		return data, fmt.Errorf("failed to release %v: %w", key, err)
	}

	return data, nil
}

// First returns the item with the smallest key
func (t *SortedSequenceTable[K, V]) First() (Item[K, V], error) {
	if t.seq.IsEmpty() {
		return Item[K, V]{}, ErrEmpty
	}

	return *t.seq.AccessFirst(), nil
}

// Last returns the item with the largest key
func (t *SortedSequenceTable[K, V]) Last() (Item[K, V], error) {
	if t.seq.IsEmpty() {
		return Item[K, V]{}, ErrEmpty
	}

	return *t.seq.AccessLast(), nil
}

func (t *SortedSequenceTable[K, V]) Size() int { return t.seq.Size() }

func (t *SortedSequenceTable[K, V]) IsEmpty() bool { return t.seq.IsEmpty() }

func (t *SortedSequenceTable[K, V]) Clear() { t.seq.Clear() }

func (t *SortedSequenceTable[K, V]) Clone() Table[K, V] {
	return &SortedSequenceTable[K, V]{seq: cloneItems(t.seq)}
}

func (t *SortedSequenceTable[K, V]) Iterator() Iterator[K, V] {
	return &SequenceIterator[K, V]{iter: t.seq.Iterator()}
}

func (i *SequenceIterator[K, V]) Next() bool { return i.iter.Next() }

func (i *SequenceIterator[K, V]) Value() Item[K, V] { return *i.iter.Value() }

func cloneItems[K constraints.Ordered, V any](seq *amt.ImplicitSequence[Item[K, V]]) *amt.ImplicitSequence[Item[K, V]] {
	c := seq.Clone()

	for it := c.Iterator(); it.Next(); {
		item := it.Value()
		if item.Synonyms != nil {
			item.Synonyms = append([]V(nil), item.Synonyms...)
		}
	}

	return c
}
