package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ergochat/readline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/idxstore/internal/record"
	"github.com/roach88/idxstore/internal/store"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	MinIndexSize int
	HistoryFile  string
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),

	readline.PcItem("insert"),
	readline.PcItem("delete"),
	readline.PcItem("filter",
		readline.PcItem("id"),
		readline.PcItem("text_a"),
		readline.PcItem("number"),
		readline.PcItem("text_b"),
	),
	readline.PcItem("get"),

	readline.PcItem("size"),
	readline.PcItem("stats"),
	readline.PcItem("check"),

	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive shell over a single store",
		Long: `Open an interactive shell over an empty store. Type "help" for the
command list. Text arguments may be double-quoted to include spaces or to
pass an empty string.

Examples:
  idxstore repl
  idxstore repl --min-index-size 3 --history .idxstore_history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MinIndexSize, "min-index-size", store.DefaultMinIndexSize, "min partial key length")
	cmd.Flags().StringVar(&opts.HistoryFile, "history", "", "history file (none when empty)")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, err := store.New(opts.MinIndexSize,
		store.WithLogger(out.Logger()),
		store.WithMetrics(store.NewMetrics(prometheus.NewRegistry())),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "creating store", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "idx> ",
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "opening terminal", err)
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	sh := NewShell(s, out)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		err = sh.Exec(line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			_ = out.Error(errorCode(err), err.Error(), nil)
		}
	}
}

// Shell executes repl command lines against a store.
type Shell struct {
	store *store.Store
	out   *OutputFormatter
}

// NewShell creates a shell over s.
func NewShell(s *store.Store, out *OutputFormatter) *Shell {
	return &Shell{store: s, out: out}
}

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage")

// Exec runs one command line. It returns io.EOF for exit and quit.
func (sh *Shell) Exec(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "insert":
		return sh.insert(args)
	case "delete":
		return sh.delete(args)
	case "filter":
		return sh.filter(args)
	case "get":
		return sh.get(args)
	case "size":
		return sh.out.Success(sh.store.Size())
	case "stats":
		return sh.stats()
	case "check":
		if err := sh.store.CheckConsistency(); err != nil {
			return err
		}
		return sh.out.Success("consistent")
	case "help":
		return sh.out.Success(strings.TrimSpace(helpText))
	case "exit", "quit":
		return io.EOF
	default:
		return fmt.Errorf("%w: unknown command %q, try help", ErrUsage, cmd)
	}
}

const helpText = `
insert <id> <text_a> <number> <text_b>   add a record
delete <id>                              remove a record
filter <column> [value]                  find records; columns: id text_a number text_b
get <id>                                 show one record
size                                     number of records
stats                                    record and index key counts
check                                    verify indexes against storage
exit                                     leave the shell
`

func (sh *Shell) insert(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: insert <id> <text_a> <number> <text_b>", ErrUsage)
	}
	id, err := store.ParseID(args[0])
	if err != nil {
		return err
	}
	n, err := store.ParseNumber(args[2])
	if err != nil {
		return err
	}
	applied := sh.store.Insert(record.Record{ID: id, TextA: args[1], Number: n, TextB: args[3]})
	return sh.applied("insert", id, applied)
}

func (sh *Shell) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", ErrUsage)
	}
	id, err := store.ParseID(args[0])
	if err != nil {
		return err
	}
	return sh.applied("delete", id, sh.store.DeleteByID(id))
}

func (sh *Shell) applied(op string, id uint32, applied bool) error {
	if sh.out.Format == "json" {
		return sh.out.Success(map[string]any{"op": op, "id": id, "applied": applied})
	}
	if applied {
		return sh.out.Success(fmt.Sprintf("%s %d: ok", op, id))
	}
	return sh.out.Success(fmt.Sprintf("%s %d: no change", op, id))
}

func (sh *Shell) filter(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: filter <column> [value]", ErrUsage)
	}
	value := ""
	if len(args) == 2 {
		value = args[1]
	}
	recs, err := sh.store.Filter(record.ParseColumn(args[0]), value)
	if err != nil {
		return err
	}
	record.SortByID(recs)
	return sh.records(recs)
}

func (sh *Shell) get(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: get <id>", ErrUsage)
	}
	id, err := store.ParseID(args[0])
	if err != nil {
		return err
	}
	rec, ok := sh.store.Get(id)
	if !ok {
		return sh.records(nil)
	}
	return sh.records([]record.Record{rec})
}

func (sh *Shell) records(recs []record.Record) error {
	if sh.out.Format == "json" {
		if recs == nil {
			recs = []record.Record{}
		}
		return sh.out.Success(recs)
	}
	w := sh.out.Writer
	for _, r := range recs {
		fmt.Fprintln(w, r)
	}
	fmt.Fprintf(w, "(%d records)\n", len(recs))
	return nil
}

func (sh *Shell) stats() error {
	st := sh.store.Stats()
	if sh.out.Format == "json" {
		return sh.out.Success(st)
	}
	return sh.out.Success(fmt.Sprintf("records=%d min_index_size=%d number_keys=%d text_a_keys=%d text_b_keys=%d",
		st.Records, st.MinIndexSize, st.NumberKeys, st.TextAKeys, st.TextBKeys))
}

// splitArgs splits line on whitespace. A token starting with a double quote
// runs to its closing quote and is unquoted with Go string syntax.
func splitArgs(line string) ([]string, error) {
	var args []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: unterminated quoted argument", ErrUsage)
			}
			arg, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUsage, err)
			}
			args = append(args, arg)
			rest = strings.TrimSpace(rest[len(quoted):])
			continue
		}
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		args = append(args, rest[:end])
		rest = strings.TrimSpace(rest[end:])
	}
	return args, nil
}

// errorCode maps shell errors to output codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return "E_USAGE"
	case errors.Is(err, store.ErrInvalidInput):
		return "E_INVALID_INPUT"
	case errors.Is(err, store.ErrInconsistent):
		return "E_INCONSISTENT"
	default:
		return "E_INTERNAL"
	}
}
