package analyzer

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/nStangl/ds-tables/table"
)

type (
	OperationKind uint8

	// IntTable is the table shape every table analyzer measures
	IntTable = table.Table[int, int]

	// tableOperation keeps the keys it inserted so find and
	// remove always pick a key that is present
	tableOperation struct {
		kind OperationKind
		rng  *rand.Rand
		keys []int
		key  int
	}
)

const (
	Insert OperationKind = iota + 1
	Find
	Remove
)

var (
	operationStr = []string{"insert", "find", "remove"}

	ErrUnknownOperation = errors.New("unknown operation")
)

var _ Operation[IntTable] = (*tableOperation)(nil)

func (k OperationKind) String() string {
	if k < Insert || k > Remove {
		return fmt.Sprintf("operation(%d)", uint8(k))
	}

	return operationStr[k-1]
}

func Operations() []OperationKind {
	return []OperationKind{Insert, Find, Remove}
}

func ParseOperation(s string) (OperationKind, error) {
	for i, name := range operationStr {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return OperationKind(i + 1), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownOperation)
}

func (o *tableOperation) Reset() { o.keys = o.keys[:0] }

func (o *tableOperation) Grow(t IntTable, n int) error {
	for n > 0 {
		k := o.rng.Int()

		if err := t.Insert(k, k); err != nil {
			if errors.Is(err, table.ErrKeyExists) {
				continue
			}

			return err
		}

		o.keys = append(o.keys, k)
		n--
	}

	return nil
}

func (o *tableOperation) Before(t IntTable) error {
	if o.kind == Insert {
		for o.key = o.rng.Int(); t.Contains(o.key); o.key = o.rng.Int() {
		}

		return nil
	}

	if len(o.keys) == 0 {
		return table.ErrEmpty
	}

	o.key = o.keys[o.rng.Intn(len(o.keys))]

	return nil
}

func (o *tableOperation) Execute(t IntTable) error {
	var err error

	switch o.kind {
	case Insert:
		err = t.Insert(o.key, o.key)
	case Find:
		_, err = t.Find(o.key)
	case Remove:
		_, err = t.Remove(o.key)
	}

	return err
}

// After undoes Insert and Remove so the size only
// changes through Grow
func (o *tableOperation) After(t IntTable) error {
	var err error

	switch o.kind {
	case Insert:
		_, err = t.Remove(o.key)
	case Remove:
		err = t.Insert(o.key, o.key)
	}

	return err
}

// NewTableAnalyzer measures op on tables of the given kind. Keys are
// random ints drawn from a generator seeded with seed.
func NewTableAnalyzer(kind table.Kind, op OperationKind, seed int64) (*Complexity[IntTable], error) {
	if op < Insert || op > Remove {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownOperation)
	}

	rng := rand.New(rand.NewSource(seed))

	if _, err := table.New[int, int](kind, rng); err != nil {
		return nil, err
	}

	prototype := func() IntTable {
		t, _ := table.New[int, int](kind, rng)
		return t
	}

	name := fmt.Sprintf("%s-%s", kind, op)

	return NewComplexity[IntTable](name, prototype, &tableOperation{kind: op, rng: rng}), nil
}

// NewTableSuite builds one analyzer per table kind and operation
// named in cfg, all of them configured from cfg
func NewTableSuite(cfg Config) (*Composite, error) {
	var (
		kinds []table.Kind
		ops   []OperationKind
	)

	for _, s := range cfg.Tables {
		k, err := table.ParseKind(s)
		if err != nil {
			return nil, err
		}

		kinds = append(kinds, k)
	}

	for _, s := range cfg.Operations {
		op, err := ParseOperation(s)
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)
	}

	suite := NewComposite("tables")

	for i, k := range kinds {
		for j, op := range ops {
			a, err := NewTableAnalyzer(k, op, cfg.Seed+int64(i*len(ops)+j))
			if err != nil {
				return nil, err
			}

			suite.Add(a)
		}
	}

	Configure(suite, cfg)

	return suite, nil
}
