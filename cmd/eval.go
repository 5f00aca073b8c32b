package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourorg/calcctl/internal/batch"
	"github.com/yourorg/calcctl/internal/calc"
	"github.com/yourorg/calcctl/internal/render"
)

const (
	formatPlain = "plain"
	formatTable = "table"
	formatJSON  = "json"
)

type evalOptions struct {
	format      string
	file        string
	concurrency int
	remote      bool
}

func newEvalCmd(globals *globalOptions) *cobra.Command {
	opts := &evalOptions{format: formatPlain}

	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: "Evaluate one or more arithmetic expressions with arbitrary-precision decimals.\n" +
			"Expressions come from arguments, --file (one per line), or stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, globals, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: plain|table|json")
	cmd.Flags().StringVar(&opts.file, "file", "", "Read expressions from a file, one per line")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Max expressions evaluated in parallel")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Evaluate via the calc service instead of locally")

	return cmd
}

func runEval(cmd *cobra.Command, globals *globalOptions, opts *evalOptions, args []string) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	expressions, err := collectExpressions(cmd, opts, args)
	if err != nil {
		return err
	}
	if len(expressions) == 0 {
		return errors.New("no expressions to evaluate")
	}

	eval := localEval
	if opts.remote {
		client, err := buildClient(globals.profile)
		if err != nil {
			return err
		}
		eval = client.Evaluate
	}

	results, err := batch.Evaluate(cmd.Context(), expressions, opts.concurrency, eval)
	if err != nil {
		return fmt.Errorf("evaluate expressions: %w", err)
	}

	if err := renderResults(cmd, opts.format, results); err != nil {
		return err
	}
	return exitStatus(results)
}

func localEval(_ context.Context, expression string) (decimal.Decimal, error) {
	return calc.Evaluate(expression)
}

func validateFormat(format string) error {
	switch format {
	case formatPlain, formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected plain, table, or json)", format)
	}
}

// collectExpressions gathers inputs from args, then --file, then stdin when
// it is not a terminal.
func collectExpressions(cmd *cobra.Command, opts *evalOptions, args []string) ([]string, error) {
	expressions := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			expressions = append(expressions, trimmed)
		}
	}

	if opts.file != "" {
		fromFile, err := readExpressionLines(opts.file)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, fromFile...)
	}

	if len(expressions) == 0 {
		fromStdin, err := readStdinExpressions(cmd)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, fromStdin...)
	}

	return expressions, nil
}

func readExpressionLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expressions file: %w", err)
	}
	defer f.Close()

	var expressions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			expressions = append(expressions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read expressions file: %w", err)
	}
	return expressions, nil
}

func readStdinExpressions(cmd *cobra.Command) ([]string, error) {
	reader := cmd.InOrStdin()

	// An interactive terminal with no arguments is a usage error rather
	// than a silent wait for input.
	if f, ok := reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}

	var expressions []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			expressions = append(expressions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return expressions, nil
}

func renderResults(cmd *cobra.Command, format string, results []batch.Result) error {
	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return render.ResultsJSON(out, results)
	case formatTable:
		return render.ResultsTable(out, results)
	default:
		return render.ResultsPlain(out, results)
	}
}

// exitStatus folds per-expression failures into the command's exit code.
func exitStatus(results []batch.Result) error {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(results))
	}
	return nil
}
