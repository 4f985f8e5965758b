package table

import (
	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"golang.org/x/exp/constraints"
)

type (
	// LinkedSequenceTable keeps its items unsorted in a singly
	// linked list. New items go to the front of the list.
	LinkedSequenceTable[K constraints.Ordered, V any] struct {
		list *singlylinkedlist.List
	}

	LinkedSequenceIterator[K constraints.Ordered, V any] struct {
		iter singlylinkedlist.Iterator
	}
)

var (
	_ Table[int, int]    = (*LinkedSequenceTable[int, int])(nil)
	_ Iterator[int, int] = (*LinkedSequenceIterator[int, int])(nil)
)

func NewLinkedSequenceTable[K constraints.Ordered, V any]() *LinkedSequenceTable[K, V] {
	return &LinkedSequenceTable[K, V]{list: singlylinkedlist.New()}
}

func (t *LinkedSequenceTable[K, V]) find(key K) (int, Item[K, V]) {
	i, v := t.list.Find(func(_ int, v interface{}) bool {
		return v.(Item[K, V]).Key == key
	})

	if i < 0 {
		return i, Item[K, V]{}
	}

	return i, v.(Item[K, V])
}

func (t *LinkedSequenceTable[K, V]) Insert(key K, data V) error {
	if i, _ := t.find(key); i >= 0 {
		return errKeyExists(key)
	}

	t.list.Prepend(Item[K, V]{Key: key, Data: data})

	return nil
}

func (t *LinkedSequenceTable[K, V]) TryFind(key K) (V, bool) {
	i, item := t.find(key)
	return item.Data, i >= 0
}

func (t *LinkedSequenceTable[K, V]) Find(key K) (V, error) { return find[K, V](t, key) }

func (t *LinkedSequenceTable[K, V]) Contains(key K) bool { return contains[K, V](t, key) }

// Remove swaps the item with the head of the list
// and unlinks the head, which needs no walk
func (t *LinkedSequenceTable[K, V]) Remove(key K) (V, error) {
	i, item := t.find(key)
	if i < 0 {
		return item.Data, errKeyNotFound(key)
	}

	if i != 0 {
		t.list.Swap(i, 0)
	}

	t.list.Remove(0)

	return item.Data, nil
}

func (t *LinkedSequenceTable[K, V]) Size() int { return t.list.Size() }

func (t *LinkedSequenceTable[K, V]) IsEmpty() bool { return t.list.Empty() }

func (t *LinkedSequenceTable[K, V]) Clear() { t.list.Clear() }

func (t *LinkedSequenceTable[K, V]) Clone() Table[K, V] {
	c := singlylinkedlist.New()

	for it := t.list.Iterator(); it.Next(); {
		item := it.Value().(Item[K, V])
		if item.Synonyms != nil {
			item.Synonyms = append([]V(nil), item.Synonyms...)
		}

		c.Add(item)
	}

	return &LinkedSequenceTable[K, V]{list: c}
}

func (t *LinkedSequenceTable[K, V]) Iterator() Iterator[K, V] {
	return &LinkedSequenceIterator[K, V]{iter: t.list.Iterator()}
}

func (i *LinkedSequenceIterator[K, V]) Next() bool { return i.iter.Next() }

func (i *LinkedSequenceIterator[K, V]) Value() Item[K, V] { return i.iter.Value().(Item[K, V]) }
