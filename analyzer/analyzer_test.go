package analyzer

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nStangl/ds-tables/table"
	"github.com/nStangl/ds-tables/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func small(a Analyzer, dir string) {
	Configure(a, Config{Directory: dir, Replications: 3, StepSize: 50, StepCount: 4})
}

func TestTableAnalyzerWritesCSV(t *testing.T) {
	for _, kind := range table.Kinds() {
		for _, op := range Operations() {
			t.Run(kind.String()+"-"+op.String(), func(t *testing.T) {
				a, err := NewTableAnalyzer(kind, op, 1)
				require.NoError(t, err)

				dir := t.TempDir()
				small(a, dir)

				assert.Equal(t, Ready, a.State())
				require.NoError(t, a.Analyze(context.Background()))
				assert.Equal(t, Succeeded, a.State())

				records, err := util.ReadCSV(filepath.Join(dir, a.Name()+".csv"), ';')
				require.NoError(t, err)
				require.Len(t, records, 4)
				assert.Equal(t, []string{"50", "100", "150", "200"}, records[0])

				for _, row := range records[1:] {
					require.Len(t, row, 4)

					for _, cell := range row {
						ns, err := strconv.ParseInt(cell, 10, 64)
						require.NoError(t, err)
						assert.GreaterOrEqual(t, ns, int64(0))
					}
				}

				assert.Len(t, a.Samples(), 3)
			})
		}
	}
}

type sizeOnly struct{ n int }

func (s *sizeOnly) Size() int { return s.n }

type countingOperation struct {
	resets, grown, executed int
	fail                    error
}

func (o *countingOperation) Reset() { o.resets++ }

func (o *countingOperation) Grow(s *sizeOnly, n int) error {
	s.n += n
	o.grown += n
	return nil
}

func (o *countingOperation) Before(*sizeOnly) error { return nil }

func (o *countingOperation) Execute(*sizeOnly) error {
	o.executed++
	return o.fail
}

func (o *countingOperation) After(*sizeOnly) error { return nil }

func TestComplexityGrowsEveryReplication(t *testing.T) {
	var (
		op = &countingOperation{}
		c  = NewComplexity[*sizeOnly]("counting", func() *sizeOnly { return &sizeOnly{} }, op)
	)

	Configure(c, Config{Directory: t.TempDir(), Replications: 2, StepSize: 10, StepCount: 3})

	require.NoError(t, c.Analyze(context.Background()))

	assert.Equal(t, 2, op.resets)
	assert.Equal(t, 60, op.grown)
	assert.Equal(t, 6, op.executed)
	assert.Equal(t, []int{10, 20, 30}, c.Sizes())
}

func TestFailedRunCanBeRepeated(t *testing.T) {
	var (
		boom = errors.New("boom")
		op   = &countingOperation{fail: boom}
		c    = NewComplexity[*sizeOnly]("failing", func() *sizeOnly { return &sizeOnly{} }, op)
	)

	Configure(c, Config{Directory: t.TempDir(), Replications: 1, StepSize: 1, StepCount: 1})

	err := c.Analyze(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, c.State())

	op.fail = nil
	require.NoError(t, c.Analyze(context.Background()))
	assert.Equal(t, Succeeded, c.State())
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no replications", Config{Directory: "x", Replications: 0, StepSize: 1, StepCount: 1}},
		{"negative step size", Config{Directory: "x", Replications: 1, StepSize: -1, StepCount: 1}},
		{"no steps", Config{Directory: "x", Replications: 1, StepSize: 1, StepCount: 0}},
		{"no directory", Config{Replications: 1, StepSize: 1, StepCount: 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := NewTableAnalyzer(table.Hash, Find, 1)
			require.NoError(t, err)

			Configure(a, test.cfg)

			assert.ErrorIs(t, a.Analyze(context.Background()), ErrInvalidSettings)
			assert.Equal(t, Ready, a.State())
		})
	}
}

func TestCompositeCollectsErrors(t *testing.T) {
	var (
		boom = errors.New("boom")
		ok   = NewComplexity[*sizeOnly]("ok", func() *sizeOnly { return &sizeOnly{} }, &countingOperation{})
		bad  = NewComplexity[*sizeOnly]("bad", func() *sizeOnly { return &sizeOnly{} }, &countingOperation{fail: boom})
		c    = NewComposite("all", bad, ok)
	)

	Configure(c, Config{Directory: t.TempDir(), Replications: 1, StepSize: 5, StepCount: 2})

	err := c.Analyze(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, bad.State())
	assert.Equal(t, Succeeded, ok.State())
}

func TestCompositeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := &countingOperation{}
	c := NewComposite("all", NewComplexity[*sizeOnly]("never", func() *sizeOnly { return &sizeOnly{} }, op))

	assert.ErrorIs(t, c.Analyze(ctx), context.Canceled)
	assert.Equal(t, 0, op.executed)
}

func TestTableSuite(t *testing.T) {
	cfg := Config{
		Directory:    t.TempDir(),
		Replications: 2,
		StepSize:     20,
		StepCount:    2,
		Tables:       []string{"treap", "hash"},
		Operations:   []string{"insert", "remove"},
		Seed:         7,
	}

	suite, err := NewTableSuite(cfg)
	require.NoError(t, err)
	require.Len(t, suite.Children(), 4)

	var out bytes.Buffer
	suite.SetHistogramOutput(&out)

	require.NoError(t, suite.Analyze(context.Background()))

	for _, name := range []string{"treap-insert", "treap-remove", "hash-insert", "hash-remove"} {
		assert.FileExists(t, filepath.Join(cfg.Directory, name+".csv"))
		assert.Contains(t, out.String(), name+" at size 40")
	}

	cfg.Tables = []string{"btree"}
	_, err = NewTableSuite(cfg)
	assert.ErrorIs(t, err, table.ErrUnknownKind)

	cfg.Tables, cfg.Operations = []string{"bst"}, []string{"update"}
	_, err = NewTableSuite(cfg)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		parsed, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	_, err := NewTableAnalyzer(table.BST, OperationKind(9), 1)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}
