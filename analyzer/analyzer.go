package analyzer

import (
	"context"
	"errors"
	"io"
)

type (
	// Analyzer measures something and writes its findings
	// into the output directory
	Analyzer interface {
		Name() string
		Analyze(context.Context) error

		SetOutputDirectory(string)
		SetReplicationCount(int)
		SetStepSize(int)
		SetStepCount(int)

		// SetHistogramOutput enables histograms, nil disables them
		SetHistogramOutput(io.Writer)
	}

	Config struct {
		Directory    string
		Replications int
		StepSize     int
		StepCount    int
		Tables       []string
		Operations   []string
		Histogram    bool
		Seed         int64
		Loglevel     string
	}
)

const (
	DefaultReplications = 100
	DefaultStepSize     = 10000
	DefaultStepCount    = 10

	separator = ';'
)

var ErrInvalidSettings = errors.New("invalid analyzer settings")

// Configure pushes the numeric settings and the output directory of cfg into a
func Configure(a Analyzer, cfg Config) {
	a.SetOutputDirectory(cfg.Directory)
	a.SetReplicationCount(cfg.Replications)
	a.SetStepSize(cfg.StepSize)
	a.SetStepCount(cfg.StepCount)
}
