package table

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// This package defines the associative tables:
// sequence backed, hashed and tree shaped key value
// dictionaries sharing one Table contract

type (
	Table[K constraints.Ordered, V any] interface {
		Sizable
		Iterable[K, V]

		Insert(K, V) error
		TryFind(K) (V, bool)
		Find(K) (V, error)
		Contains(K) bool
		Remove(K) (V, error)
		IsEmpty() bool
		Clear()
		Clone() Table[K, V]
	}

	Sizable interface {
		Size() int
	}

	Iterable[K constraints.Ordered, V any] interface {
		Iterator() Iterator[K, V]
	}

	// Iterator is a single forward traversal. Every call
	// to Iterable.Iterator starts a new one from the beginning.
	Iterator[K constraints.Ordered, V any] interface {
		Next() bool
		Value() Item[K, V]
	}

	Item[K constraints.Ordered, V any] struct {
		Key  K
		Data V

		// Extra values sharing Key, only filled
		// by SearchTree.InsertWithDuplicates
		Synonyms []V
	}

	finder[K constraints.Ordered, V any] interface {
		TryFind(K) (V, bool)
	}
)

var (
	ErrKeyExists   = errors.New("key already exists")
	ErrKeyNotFound = errors.New("key not found")
	ErrEmpty       = errors.New("structure is empty")
)

func find[K constraints.Ordered, V any](t finder[K, V], key K) (V, error) {
	v, ok := t.TryFind(key)
	if !ok {
		return v, fmt.Errorf("find %v: %w", key, ErrKeyNotFound)
	}

	return v, nil
}

func contains[K constraints.Ordered, V any](t finder[K, V], key K) bool {
	_, ok := t.TryFind(key)
	return ok
}

func errKeyExists[K constraints.Ordered](key K) error {
	return fmt.Errorf("insert %v: %w", key, ErrKeyExists)
}

func errKeyNotFound[K constraints.Ordered](key K) error {
	return fmt.Errorf("remove %v: %w", key, ErrKeyNotFound)
}

// Equal reports whether both tables have the same size
// and every key of a maps to an equal value in b
func Equal[K constraints.Ordered, V comparable](a, b Table[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

func EqualFunc[K constraints.Ordered, V any](a, b Table[K, V], eq func(V, V) bool) bool {
	if a.Size() != b.Size() {
		return false
	}

	for it := a.Iterator(); it.Next(); {
		item := it.Value()

		v, ok := b.TryFind(item.Key)
		if !ok || !eq(item.Data, v) {
			return false
		}
	}

	return true
}

// Items drains a fresh traversal of t into a slice
func Items[K constraints.Ordered, V any](t Iterable[K, V]) []Item[K, V] {
	var items []Item[K, V]

	for it := t.Iterator(); it.Next(); {
		items = append(items, it.Value())
	}

	return items
}

// Keys drains a fresh traversal of t, keeping only the keys
func Keys[K constraints.Ordered, V any](t Iterable[K, V]) []K {
	var keys []K

	for it := t.Iterator(); it.Next(); {
		keys = append(keys, it.Value().Key)
	}

	return keys
}
