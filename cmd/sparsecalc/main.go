// SPDX-License-Identifier: MIT

// Command sparsecalc adds, subtracts or multiplies two sparse matrices stored
// in the rows=/cols=/(r, c, v) text format, and renders sparsity plots.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/sparsecalc/calc"
	"github.com/katalvlaran/sparsecalc/config"
	"github.com/katalvlaran/sparsecalc/sparseio"
	"github.com/katalvlaran/sparsecalc/spy"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// compute flags
	opFlag       string
	outFlag      string
	strictBounds bool
	epsilonFlag  float64

	// spy flags
	spyOut    string
	spyFormat string

	// Resolved at startup by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	// stdin is where the operator prompt reads from.
	stdin io.Reader = os.Stdin
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sparsecalc",
	Short: "Sparse matrix calculator",
	Long: `sparsecalc reads two sparse matrices written as

  rows=<n>
  cols=<m>
  (<row>, <col>, <value>)
  ...

applies +, - or * and writes the result in the same format.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// computeCmd runs one operation over two matrix files
var computeCmd = &cobra.Command{
	Use:   "compute <matrix-a> <matrix-b>",
	Short: "Add, subtract or multiply two sparse matrices",
	Long: `Computes A <op> B and writes the resulting sparse matrix.

When --op is omitted the operation is read interactively from stdin.

Examples:
  sparsecalc compute --op + a.txt b.txt
  sparsecalc compute --op '*' --out - a.txt b.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runCompute,
}

// spyCmd renders a sparsity pattern plot
var spyCmd = &cobra.Command{
	Use:   "spy <matrix>",
	Short: "Render the sparsity pattern of a matrix",
	Long: `Plots one marker per stored entry (column on X, row on Y).

The image format follows the --out extension; with --out - the image is
written to stdout in --format.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpy,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")

	// compute flags
	computeCmd.Flags().StringVar(&opFlag, "op", "", "Operation: +, - or * (prompted when empty)")
	computeCmd.Flags().StringVar(&outFlag, "out", "", "Result path, - for stdout (default from config: result.txt)")
	computeCmd.Flags().BoolVar(&strictBounds, "strict-bounds", false, "Reject entries outside the declared rows/cols")
	computeCmd.Flags().Float64Var(&epsilonFlag, "epsilon", 0, "Zero tolerance for multiplication results (default from config)")

	// spy flags
	spyCmd.Flags().StringVar(&spyOut, "out", "", "Image path, - for stdout (default spy.<format>)")
	spyCmd.Flags().StringVar(&spyFormat, "format", "", "Image format when writing to stdout (default from config: png)")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(spyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies explicit flags on top and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("out") && cmd == computeCmd {
		cfg.Compute.Output = outFlag
	}
	if flags.Changed("strict-bounds") {
		cfg.Compute.StrictBounds = strictBounds
	}
	if flags.Changed("epsilon") {
		cfg.Compute.Epsilon = epsilonFlag
	}
	if flags.Changed("format") {
		cfg.Spy.Format = spyFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err = newLogger(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// newLogger builds a zap logger writing to stderr, so that stdout stays free
// for results.
func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := lc.ZapLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// runCompute executes a single operation over two matrix files
func runCompute(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	op, err := resolveOp(opFlag, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	r := &calc.Runner{
		Logger:       logger,
		Stdout:       cmd.OutOrStdout(),
		StrictBounds: cfg.Compute.StrictBounds,
		MulOptions:   cfg.MulOptions(),
	}
	res, err := r.Run(ctx, calc.Job{
		Op:     op,
		PathA:  args[0],
		PathB:  args[1],
		Output: cfg.Compute.Output,
	})
	if err != nil {
		return err
	}
	if res.Output != calc.StdoutPath {
		fmt.Fprintf(cmd.ErrOrStderr(), "Result written to %s\n", res.Output)
	}

	return nil
}

// resolveOp parses the --op value, or prompts for one when it is empty.
func resolveOp(flagValue string, prompt io.Writer) (calc.Op, error) {
	if flagValue != "" {
		return calc.ParseOp(flagValue)
	}

	return promptOperation(stdin, prompt)
}

// runSpy renders the sparsity plot of one matrix file
func runSpy(cmd *cobra.Command, args []string) error {
	m, err := sparseio.ParseFile(args[0])
	if err != nil {
		return err
	}

	opts := []spy.Option{
		spy.WithSize(vg.Length(cfg.Spy.WidthInches)*vg.Inch, vg.Length(cfg.Spy.HeightInches)*vg.Inch),
		spy.WithTitle(fmt.Sprintf("%s (%dx%d, nnz=%d)", filepath.Base(args[0]), m.Rows(), m.Cols(), m.NNZ())),
	}

	out := spyOut
	if out == "" {
		out = "spy." + cfg.Spy.Format
	}
	if out == "-" {
		return spy.Render(cmd.OutOrStdout(), m, cfg.Spy.Format, opts...)
	}
	if err = spy.Save(out, m, opts...); err != nil {
		return err
	}
	logger.Info("Sparsity plot written", zap.String("path", out), zap.Int("nnz", m.NNZ()))

	return nil
}
