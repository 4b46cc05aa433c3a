package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/idxstore/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	MinIndexSizes []int // overrides store.min_index_sizes
}

// CheckRun is the outcome of one scenario against one target.
type CheckRun struct {
	Scenario string          `json:"scenario"`
	Target   string          `json:"target"`
	Pass     bool            `json:"pass"`
	Checks   []harness.Check `json:"checks"`
}

// CheckReport is the overall check result.
type CheckReport struct {
	Runs   []CheckRun `json:"runs"`
	Passed int        `json:"passed"`
	Failed int        `json:"failed"`
	Total  int        `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [scenario.yaml...]",
		Short: "Run scenario checks against the store and the naive baseline",
		Long: `Run scenario files against the naive baseline and one store per
configured min index size. With no arguments the builtin scenarios run.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Command error (bad config, unreadable scenario, etc.)

Examples:
  idxstore check
  idxstore check --min-index-size 1 --min-index-size 3 my.yaml
  idxstore check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.MinIndexSizes, "min-index-size", nil, "store min index size (repeatable)")

	return cmd
}

func runCheck(opts *CheckOptions, files []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	logger := out.Logger()

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	sizes := cfg.Store.MinIndexSizes
	if cmd.Flags().Changed("min-index-size") {
		sizes = opts.MinIndexSizes
	}

	scenarios, err := loadScenarios(files)
	if err != nil {
		return err
	}

	report := CheckReport{Runs: []CheckRun{}}
	for _, sc := range scenarios {
		results, err := harness.RunAll(sc, sizes, logger)
		if err != nil {
			return WrapExitError(ExitCommandError, "building targets", err)
		}
		for _, res := range results {
			report.Runs = append(report.Runs, CheckRun{
				Scenario: res.Scenario,
				Target:   res.Target,
				Pass:     res.Pass,
				Checks:   res.Checks,
			})
			report.Total++
			if res.Pass {
				report.Passed++
			} else {
				report.Failed++
			}
		}
	}

	if opts.Format == "json" {
		if err := out.Success(report); err != nil {
			return err
		}
	} else {
		writeCheckText(out, report)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario runs failed", report.Failed, report.Total))
	}
	return nil
}

func loadScenarios(files []string) ([]*harness.Scenario, error) {
	if len(files) == 0 {
		scenarios, err := harness.BuiltinScenarios()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading builtin scenarios", err)
		}
		return scenarios, nil
	}

	scenarios := make([]*harness.Scenario, 0, len(files))
	for _, f := range files {
		sc, err := harness.LoadScenario(f)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, f, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func writeCheckText(out *OutputFormatter, report CheckReport) {
	w := out.Writer
	for _, run := range report.Runs {
		mark := "✓"
		if !run.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s [%s]\n", mark, run.Scenario, run.Target)
		for _, c := range run.Checks {
			if out.Verbose || !c.OK {
				fmt.Fprintf(w, "  %s\n", c)
			}
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", report.Passed, report.Failed, report.Total)
}
