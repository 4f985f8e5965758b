package analyzer

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Composite runs its children one after another. A failing
// child does not stop the others, all errors are returned.
type Composite struct {
	name     string
	children []Analyzer
}

var _ Analyzer = (*Composite)(nil)

func NewComposite(name string, children ...Analyzer) *Composite {
	return &Composite{name: name, children: children}
}

func (c *Composite) Add(a Analyzer) { c.children = append(c.children, a) }

func (c *Composite) Children() []Analyzer { return c.children }

func (c *Composite) Name() string { return c.name }

func (c *Composite) Analyze(ctx context.Context) error {
	var result error

	for i, a := range c.children {
		if err := ctx.Err(); err != nil {
			return multierr.Append(result, err)
		}

		log.WithField("composite", c.name).Infof("running %s (%d/%d)", a.Name(), i+1, len(c.children))

		if err := a.Analyze(ctx); err != nil {
			result = multierr.Append(result, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}

	return result
}

func (c *Composite) SetOutputDirectory(dir string) {
	for _, a := range c.children {
		a.SetOutputDirectory(dir)
	}
}

func (c *Composite) SetReplicationCount(n int) {
	for _, a := range c.children {
		a.SetReplicationCount(n)
	}
}

func (c *Composite) SetStepSize(n int) {
	for _, a := range c.children {
		a.SetStepSize(n)
	}
}

func (c *Composite) SetStepCount(n int) {
	for _, a := range c.children {
		a.SetStepCount(n)
	}
}

func (c *Composite) SetHistogramOutput(w io.Writer) {
	for _, a := range c.children {
		a.SetHistogramOutput(w)
	}
}
