package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/idxstore/internal/baseline"
	"github.com/roach88/idxstore/internal/bench"
	"github.com/roach88/idxstore/internal/config"
	"github.com/roach88/idxstore/internal/store"
)

// BenchOptions holds flags for the bench command. Flags that are set
// override the config file.
type BenchOptions struct {
	*RootOptions
	Records       int
	RepeatEach    int
	Prefix        string
	MinIndexSizes []int
	SQLite        bool
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the find workload on every target",
		Long: `Populate each target with the synthetic workload and time two filters:
a text_a lookup expected to hit 11 records and a number lookup expected to
hit records/repeat_each records. All targets must return the same sets.

Examples:
  idxstore bench
  idxstore bench --records 20000 --min-index-size 5 --sqlite
  idxstore bench -v --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Records, "records", 0, "number of records (multiple of 1000, >1000)")
	cmd.Flags().IntVar(&opts.RepeatEach, "repeat-each", 0, "number column cycle length (>500)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "text prefix for generated records")
	cmd.Flags().IntSliceVar(&opts.MinIndexSizes, "min-index-size", nil, "store min index size (repeatable)")
	cmd.Flags().BoolVar(&opts.SQLite, "sqlite", false, "also run the in-memory SQLite baseline")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	logger := out.Logger()
	ctx := cmd.Context()

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	opts.applyConfig(cfg, cmd)

	w := bench.Workload{Prefix: opts.Prefix, Records: opts.Records, RepeatEach: opts.RepeatEach}
	if err := w.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid workload", err)
	}

	reg := prometheus.NewRegistry()
	metrics := store.NewMetrics(reg)

	var targets []bench.Target
	if cfg.HasBaseline(config.BaselineNaive) {
		targets = append(targets, bench.BaselineTarget("naive", baseline.NewCollection(w.Records)))
	}
	if opts.SQLite {
		db, err := baseline.OpenSQLite(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening sqlite baseline", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("error closing sqlite baseline", "error", closeErr)
			}
		}()
		targets = append(targets, bench.SQLiteTarget("sqlite", db))
	}
	for _, n := range opts.MinIndexSizes {
		s, err := store.New(n,
			store.WithCapacity(w.Records),
			store.WithLogger(logger),
			store.WithMetrics(metrics),
		)
		if err != nil {
			return WrapExitError(ExitCommandError, "creating store", err)
		}
		targets = append(targets, bench.StoreTarget(fmt.Sprintf("store/min=%d", n), s))
	}

	report := &bench.Report{Workload: w}
	for _, t := range targets {
		logger.Info("running find benchmark", "target", t.Name, "records", w.Records)
		res, err := bench.RunFind(ctx, t, w, logger)
		if err != nil {
			return WrapExitError(ExitFailure, "benchmark "+t.Name, err)
		}
		report.Results = append(report.Results, res)
		if opts.Format != "json" {
			fmt.Fprintln(out.Writer, res)
		}
	}

	if opts.Verbose {
		logMetrics(logger, reg)
	}

	if opts.Format == "json" {
		if err := out.Success(report); err != nil {
			return err
		}
	}
	if !report.Valid() {
		return NewExitError(ExitFailure, "benchmark targets returned wrong or diverging results")
	}
	return nil
}

// applyConfig fills every flag the user did not set from cfg.
func (o *BenchOptions) applyConfig(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("records") {
		o.Records = cfg.Bench.Records
	}
	if !flags.Changed("repeat-each") {
		o.RepeatEach = cfg.Bench.RepeatEach
	}
	if !flags.Changed("prefix") {
		o.Prefix = cfg.Bench.Prefix
	}
	if !flags.Changed("min-index-size") {
		o.MinIndexSizes = cfg.Store.MinIndexSizes
	}
	if !flags.Changed("sqlite") {
		o.SQLite = cfg.HasBaseline(config.BaselineSQLite)
	}
}

// logMetrics writes every counter and gauge sample in reg at Debug level.
func logMetrics(logger *slog.Logger, reg prometheus.Gatherer) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("gathering metrics failed", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			logger.Debug("metric", "name", mf.GetName(), "labels", strings.Join(labels, ","), "value", value)
		}
	}
}
