package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/nStangl/ds-tables/table"
	"github.com/nStangl/ds-tables/util"
	log "github.com/sirupsen/logrus"
)

type (
	// Operation is the measured action. Only Execute is timed,
	// Before and After prepare it and restore the structure.
	Operation[S table.Sizable] interface {
		// Reset forgets everything about the previous structure
		Reset()
		// Grow adds n new items to s
		Grow(s S, n int) error
		Before(S) error
		Execute(S) error
		After(S) error
	}

	// Complexity times an operation on structures of growing size.
	// Every replication starts from a fresh structure and grows it to
	// stepSize, 2*stepSize and so on, measuring once at every size.
	Complexity[S table.Sizable] struct {
		*Leaf

		prototype func() S
		operation Operation[S]
		samples   [][]time.Duration
	}
)

const (
	histogramBins  = 5
	histogramWidth = 40
)

var _ Analyzer = (*Complexity[table.Sizable])(nil)

func NewComplexity[S table.Sizable](name string, prototype func() S, operation Operation[S]) *Complexity[S] {
	return &Complexity[S]{
		Leaf:      NewLeaf(name),
		prototype: prototype,
		operation: operation,
	}
}

func (c *Complexity[S]) Analyze(ctx context.Context) error {
	return c.run(ctx, c.analyze)
}

// Samples returns the durations of the latest successful run,
// one row per replication and one column per step
func (c *Complexity[S]) Samples() [][]time.Duration { return c.samples }

// Sizes returns the structure size measured at every step
func (c *Complexity[S]) Sizes() []int {
	sizes := make([]int, c.stepCount)
	for i := range sizes {
		sizes[i] = c.stepSize * (i + 1)
	}

	return sizes
}

func (c *Complexity[S]) Path() string {
	return filepath.Join(c.directory, c.name+".csv")
}

func (c *Complexity[S]) analyze(ctx context.Context, logger *log.Entry) error {
	var (
		sizes   = c.Sizes()
		samples = make([][]time.Duration, c.replications)
	)

	for r := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}

		s := c.prototype()
		c.operation.Reset()

		samples[r] = make([]time.Duration, len(sizes))

		for step, size := range sizes {
			d, err := c.measure(s, size)
			if err != nil {
				return fmt.Errorf("replication %d at size %d: %w", r, size, err)
			}

			samples[r][step] = d
		}

		if (r+1)%10 == 0 {
			logger.Debugf("%d/%d replications done", r+1, len(samples))
		}
	}

	c.samples = samples

	if err := util.WriteCSV(c.Path(), separator, c.records()); err != nil {
		return err
	}

	logger.Infof("wrote %s", c.Path())

	if c.histogram != nil {
		return c.printHistogram()
	}

	return nil
}

func (c *Complexity[S]) measure(s S, size int) (time.Duration, error) {
	if n := size - s.Size(); n > 0 {
		if err := c.operation.Grow(s, n); err != nil {
			return 0, fmt.Errorf("failed to grow: %w", err)
		}
	}

	if err := c.operation.Before(s); err != nil {
		return 0, fmt.Errorf("failed to prepare: %w", err)
	}

	start := time.Now()
	err := c.operation.Execute(s)
	d := time.Since(start)

	if err != nil {
		return 0, fmt.Errorf("failed to execute: %w", err)
	}

	if err := c.operation.After(s); err != nil {
		return 0, fmt.Errorf("failed to restore: %w", err)
	}

	return d, nil
}

// records lays the samples out as a header of sizes
// followed by one row of nanoseconds per replication
func (c *Complexity[S]) records() [][]string {
	var (
		sizes   = c.Sizes()
		records = make([][]string, 0, len(c.samples)+1)
		header  = make([]string, len(sizes))
	)

	for i, size := range sizes {
		header[i] = strconv.Itoa(size)
	}

	records = append(records, header)

	for _, row := range c.samples {
		record := make([]string, len(row))
		for i, d := range row {
			record[i] = strconv.FormatInt(d.Nanoseconds(), 10)
		}

		records = append(records, record)
	}

	return records
}

// printHistogram shows the spread of the samples at the largest size
func (c *Complexity[S]) printHistogram() error {
	var (
		last     = make([]float64, 0, len(c.samples))
		distinct = make(map[float64]struct{})
	)

	for _, row := range c.samples {
		v := float64(row[len(row)-1].Nanoseconds())
		last = append(last, v)
		distinct[v] = struct{}{}
	}

	fmt.Fprintf(c.histogram, "%s at size %d (in nanoseconds)\n", c.name, c.stepSize*c.stepCount)

	if len(distinct) < 2 {
		_, err := fmt.Fprintf(c.histogram, "%d samples of %.0f\n", len(last), last[0])
		return err
	}

	h := histogram.Hist(util.Min(histogramBins, len(distinct)), last)

	return histogram.Fprint(c.histogram, h, histogram.Linear(histogramWidth))
}
