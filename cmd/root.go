package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmarec/stewardshift/config"
	"github.com/tmarec/stewardshift/core/plan"
	"github.com/tmarec/stewardshift/infra/logger"
	"github.com/tmarec/stewardshift/pkg/export"
	"github.com/tmarec/stewardshift/pkg/report"
)

var (
	exportCSV string
	matrixCSV string
	quiet     bool
	timeLimit time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "stewardshift <config>",
	Short: "Optimize employee shift schedules with mixed-integer programming",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
	// A failed solve already produces a full report on stdout.
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&exportCSV, "export-csv", "", "export schedule rows to a CSV file")
	rootCmd.Flags().StringVar(&matrixCSV, "matrix-csv", "", "export schedule matrix to a CSV file")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress detailed output (only show summary)")
	rootCmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "abort the solve after this duration (0 = none)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg := logger.New("stewardshift")
	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, warn := range config.Warnings(cfg) {
		logg.Warnf("%s", warn)
	}

	if timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	planner := plan.New(cfg, plan.WithLogger(logg))
	res, err := planner.Plan(ctx)
	if res == nil {
		return err
	}

	var infeasible *plan.InfeasibleModelError
	if err != nil && !errors.As(err, &infeasible) {
		logg.Errorf("planning failed: %v", err)
	}
	if rerr := report.Write(os.Stdout, res, quiet); rerr != nil {
		return rerr
	}
	if !res.Usable() {
		return fmt.Errorf("no usable schedule: status %s", res.Status)
	}

	if exportCSV != "" {
		if err := writeFile(exportCSV, func(f *os.File) error {
			return export.WriteSimpleCSV(f, res)
		}); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		logg.Infof("schedule exported to %s", exportCSV)
	}
	if matrixCSV != "" {
		if err := writeFile(matrixCSV, func(f *os.File) error {
			return export.WriteMatrixCSV(f, res, export.DefaultShiftMarker)
		}); err != nil {
			return fmt.Errorf("export matrix csv: %w", err)
		}
		logg.Infof("schedule exported to %s (matrix format)", matrixCSV)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
