package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type (
	// Leaf holds the settings shared by every concrete analyzer
	// and tracks the state of its latest run
	Leaf struct {
		name         string
		directory    string
		replications int
		stepSize     int
		stepCount    int
		histogram    io.Writer
		machine      *fsm.FSM
	}

	State = string
)

const (
	Ready     State = "ready"
	Running   State = "running"
	Succeeded State = "succeeded"
	Failed    State = "failed"
)

const (
	Start   = "start"
	Succeed = "succeed"
	Fail    = "fail"
)

var transitions = fsm.Events{
	{Name: Start, Src: []string{Ready, Succeeded, Failed}, Dst: Running},
	{Name: Succeed, Src: []string{Running}, Dst: Succeeded},
	{Name: Fail, Src: []string{Running}, Dst: Failed},
}

func NewLeaf(name string) *Leaf {
	return &Leaf{
		name:         name,
		directory:    os.TempDir(),
		replications: DefaultReplications,
		stepSize:     DefaultStepSize,
		stepCount:    DefaultStepCount,
		machine:      fsm.NewFSM(Ready, transitions, newCallbacks()),
	}
}

// Every event carries the run's logger as its first argument
func newCallbacks() fsm.Callbacks {
	return fsm.Callbacks{
		"enter_state": func(ctx context.Context, e *fsm.Event) {
			e.Args[0].(*log.Entry).Debugf("%s -> %s", e.Src, e.Dst)
		},
		Succeed: func(ctx context.Context, e *fsm.Event) {
			e.Args[0].(*log.Entry).Info("analysis finished")
		},
		Fail: func(ctx context.Context, e *fsm.Event) {
			e.Args[0].(*log.Entry).WithError(e.Args[1].(error)).Error("analysis failed")
		},
	}
}

func (l *Leaf) Name() string { return l.name }

func (l *Leaf) State() State { return l.machine.Current() }

func (l *Leaf) SetOutputDirectory(dir string) { l.directory = dir }

func (l *Leaf) SetReplicationCount(n int) { l.replications = n }

func (l *Leaf) SetStepSize(n int) { l.stepSize = n }

func (l *Leaf) SetStepCount(n int) { l.stepCount = n }

func (l *Leaf) SetHistogramOutput(w io.Writer) { l.histogram = w }

func (l *Leaf) validate() error {
	switch {
	case l.replications <= 0:
		return fmt.Errorf("%s: replication count %d: %w", l.name, l.replications, ErrInvalidSettings)
	case l.stepSize <= 0:
		return fmt.Errorf("%s: step size %d: %w", l.name, l.stepSize, ErrInvalidSettings)
	case l.stepCount <= 0:
		return fmt.Errorf("%s: step count %d: %w", l.name, l.stepCount, ErrInvalidSettings)
	case l.directory == "":
		return fmt.Errorf("%s: no output directory: %w", l.name, ErrInvalidSettings)
	}

	return nil
}

// run drives fn through the lifecycle of a single analysis
func (l *Leaf) run(ctx context.Context, fn func(context.Context, *log.Entry) error) error {
	if err := l.validate(); err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{"analyzer": l.name, "run": uuid.New()})

	if err := l.machine.Event(ctx, Start, logger); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.name, err)
	}

	if err := os.MkdirAll(l.directory, os.ModePerm); err != nil {
		return l.fail(ctx, logger, fmt.Errorf("failed to create output directory: %w", err))
	}

	if err := fn(ctx, logger); err != nil {
		return l.fail(ctx, logger, err)
	}

	if err := l.machine.Event(ctx, Succeed, logger); err != nil {
		return fmt.Errorf("failed to finish %s: %w", l.name, err)
	}

	return nil
}

func (l *Leaf) fail(ctx context.Context, logger *log.Entry, err error) error {
	if ferr := l.machine.Event(ctx, Fail, logger, err); ferr != nil {
		return multierr.Append(err, ferr)
	}

	return err
}
