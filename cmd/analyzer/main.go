package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nStangl/ds-tables/analyzer"
	"github.com/nStangl/ds-tables/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.0.1"

var (
	cfg     analyzer.Config
	rootCmd = &cobra.Command{
		Use:     "analyzer",
		Short:   "analyzer",
		Long:    "Measures insert, find and remove on every table implementation for growing sizes",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			cmd.SilenceUsage = true

			if unparsed := util.ExtractUnknownArgs(cmd.Flags(), args); len(unparsed) == 1 {
				cfg.Loglevel = unparsed[0]
			}

			setLogLevel(cfg.Loglevel)

			suite, err := analyzer.NewTableSuite(cfg)
			if err != nil {
				return fmt.Errorf("failed to create analyzers: %w", err)
			}

			if cfg.Histogram {
				suite.SetHistogramOutput(os.Stdout)
			}

			log.Infof("created %d analyzers writing to %s", len(suite.Children()), cfg.Directory)

			// Catch the interrupts (ctrl+c)
			quit := make(chan os.Signal, 1)

			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			go func() {
				select {
				case <-quit:
					log.Info("analysis about to stop")
					cancel()
				case <-ctx.Done():
				}
			}()

			start := time.Now()

			if err := suite.Analyze(ctx); err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			log.Infof("analysis took %s", time.Since(start))

			return nil
		},
	}
)

func init() {
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stdout)

	rootCmd.PersistentFlags().StringVarP(&cfg.Directory, "directory", "d", "analysis", "Directory the CSV files are written to, it is created if missing")
	rootCmd.PersistentFlags().IntVarP(&cfg.Replications, "replications", "r", analyzer.DefaultReplications, "How many times every measurement is repeated")
	rootCmd.PersistentFlags().IntVarP(&cfg.StepSize, "step-size", "s", analyzer.DefaultStepSize, "How many items are added between two measurements")
	rootCmd.PersistentFlags().IntVarP(&cfg.StepCount, "step-count", "c", analyzer.DefaultStepCount, "How many measurements every replication takes")
	rootCmd.PersistentFlags().StringSliceVarP(&cfg.Tables, "tables", "t", []string{"unsorted", "sorted", "hash", "bst", "treap", "redblack", "linked"}, "Tables to analyze")
	rootCmd.PersistentFlags().StringSliceVarP(&cfg.Operations, "operations", "p", []string{"insert", "find", "remove"}, "Operations to analyze")
	rootCmd.PersistentFlags().BoolVar(&cfg.Histogram, "histogram", false, "Print a histogram of the largest step of every analyzer")
	rootCmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", time.Now().UnixNano(), "Seed of the key generators")
	rootCmd.PersistentFlags().StringVarP(&cfg.Loglevel, "loglevel", "o", "INFO", "Loglevel, e.g., INFO, ALL, . . .")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "all":
		log.SetLevel(log.DebugLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
		fmt.Printf("Invalid log level '%s'. Setting log level to 'info'\n", level)
	}

	log.SetOutput(os.Stderr)
}
