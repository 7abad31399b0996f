package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/facility-sim/facility-sim/sim"
	"github.com/facility-sim/facility-sim/sim/display"
	"github.com/facility-sim/facility-sim/sim/trace"
)

// runFlags holds the values bound to the run subcommand's flags.
type runFlags struct {
	configPath  string  // YAML config file
	envFile     string  // dotenv file with FACILITY_* variables
	seed        int64   // Master seed for arrival and service draws
	operators   int     // Operator pool size
	arrivalProb float64 // Per-tick arrival probability
	ticks       int     // Ticks to run (0 = until interrupted)
	cadence     string  // Tick schedule, cron syntax
	realtime    bool    // Sleep between ticks instead of jumping virtual time
	display     bool    // Render the queue/operator table every tick
	clearScreen bool    // Clear the terminal before each table
	traceLevel  string  // Decision trace verbosity
	logLevel    string  // Log verbosity level
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "facility-sim",
	Short: "Tick-driven simulator for a single-queue, multi-operator service facility",
}

// newRunCmd builds the run subcommand with its own flag storage.
func newRunCmd() *cobra.Command {
	f := &runFlags{}
	c := &cobra.Command{
		Use:   "run",
		Short: "Run the facility simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, f)
		},
	}
	bindRunFlags(c, f)
	return c
}

// bindRunFlags registers the run flags on c, storing values in f.
func bindRunFlags(c *cobra.Command, f *runFlags) {
	c.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to YAML configuration file")
	c.Flags().StringVar(&f.envFile, "env-file", ".env", "Path to dotenv file with FACILITY_* overrides (ignored if missing)")
	c.Flags().Int64Var(&f.seed, "seed", sim.DefaultSeed, "Seed for arrival and service-time draws")
	c.Flags().IntVar(&f.operators, "operators", sim.DefaultOperators, "Number of operators serving the queue")
	c.Flags().Float64Var(&f.arrivalProb, "arrival-prob", sim.DefaultArrivalProbability, "Probability that a client arrives on a tick")
	c.Flags().IntVar(&f.ticks, "ticks", DefaultTicks, "Number of ticks to simulate (0 = until interrupted)")
	c.Flags().StringVar(&f.cadence, "cadence", sim.DefaultCadence, "Tick schedule in cron syntax")
	c.Flags().BoolVar(&f.realtime, "realtime", false, "Run against the wall clock, sleeping between ticks")
	c.Flags().BoolVar(&f.display, "display", true, "Print the queue and operator table after every tick")
	c.Flags().BoolVar(&f.clearScreen, "clear", false, "Clear the terminal before each table")
	c.Flags().StringVar(&f.traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	c.Flags().StringVar(&f.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

func runSimulation(cmd *cobra.Command, f *runFlags) error {
	level, err := logrus.ParseLevel(f.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", f.logLevel, err)
	}
	logrus.SetLevel(level)

	opts, err := resolveRunOptions(cmd, f)
	if err != nil {
		return err
	}

	var clock sim.Clock = sim.NewManualClock(time.Now().Truncate(time.Second))
	if opts.Realtime {
		clock = sim.WallClock{}
	}
	var observer sim.Observer
	if opts.Display {
		observer = display.NewTableRenderer(cmd.OutOrStdout(), opts.ClearScreen)
	}

	s, err := sim.NewSimulator(opts.Sim, clock, observer)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation failed: %w", err)
	}
	logrus.Infof("Wall time: %s", time.Since(startTime))

	s.Metrics.Print(cmd.OutOrStdout())
	if s.Trace != nil {
		printTraceSummary(cmd.OutOrStdout(), trace.Summarize(s.Trace))
	}
	return nil
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Assignments          : %d\n", summary.TotalAssignments)
	fmt.Fprintf(w, "Releases             : %d\n", summary.TotalReleases)
	fmt.Fprintf(w, "Mean Wait            : %s\n", summary.MeanWait)
	fmt.Fprintf(w, "Mean Service         : %s\n", summary.MeanService)
	fmt.Fprintf(w, "Operators Used       : %d\n", summary.OperatorsUsed)
	ids := make([]int, 0, len(summary.OperatorAssignment))
	for id := range summary.OperatorAssignment {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  operator_%-3d       : %d clients\n", id, summary.OperatorAssignment[id])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}
