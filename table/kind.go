package table

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/exp/constraints"
)

type Kind uint8

const (
	Unsorted Kind = iota + 1
	Sorted
	Hash
	BST
	Treap
	RedBlack
	Linked
)

var (
	kindStr = []string{"unsorted", "sorted", "hash", "bst", "treap", "redblack", "linked"}

	ErrUnknownKind = errors.New("unknown table kind")
)

func (k Kind) String() string {
	if k < Unsorted || k > Linked {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}

	return kindStr[k-1]
}

func Kinds() []Kind {
	return []Kind{Unsorted, Sorted, Hash, BST, Treap, RedBlack, Linked}
}

func ParseKind(s string) (Kind, error) {
	for i, name := range kindStr {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Kind(i + 1), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// New creates an empty table of the given kind. The rng
// only matters for treaps, the hash table uses MD5Hash.
func New[K constraints.Ordered, V any](kind Kind, rng *rand.Rand) (Table[K, V], error) {
	switch kind {
	case Unsorted:
		return NewUnsortedSequenceTable[K, V](), nil
	case Sorted:
		return NewSortedSequenceTable[K, V](), nil
	case Hash:
		t, err := NewHashTable[K, V](nil, DefaultCapacity)
		if err != nil {
			return nil, err
		}

		return t, nil
	case BST:
		return NewBinarySearchTree[K, V](), nil
	case Treap:
		return NewTreap[K, V](rng), nil
	case RedBlack:
		return NewRedBlackTree[K, V](), nil
	case Linked:
		return NewLinkedSequenceTable[K, V](), nil
	default:
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}
}
