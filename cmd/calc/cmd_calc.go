package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/XJIeI5/calculator/internal/calculator"
	"github.com/XJIeI5/calculator/internal/parser"
	"github.com/XJIeI5/calculator/internal/provider"
	"github.com/spf13/cobra"
)

// evaluator computes one line and formats the result; ok is false for a
// blank line.
type evaluator func(line string) (res string, ok bool, err error)

func newEvaluator(domain string, infix bool) (evaluator, []string, error) {
	switch domain {
	case "real":
		reg := provider.NewReal()
		return bind(calculator.NewReal(reg), infix, provider.FormatReal), reg.Names(), nil
	case "complex":
		cx, reals := provider.NewComplex(), provider.NewReal()
		names := append(cx.Names(), reals.Names()...)
		slices.Sort(names)
		return bind(calculator.NewComplex(cx, reals), infix, provider.FormatComplex), slices.Compact(names), nil
	default:
		return nil, nil, fmt.Errorf("unknown domain %q", domain)
	}
}

func bind[T any](calc *calculator.Calculator[T], infix bool, format func(T) string) evaluator {
	return func(line string) (string, bool, error) {
		tokens := strings.Fields(line)
		if infix {
			var err error
			if tokens, err = parser.ParseToPrefix(line, calc.Provider()); err != nil {
				return "", false, err
			}
		}
		v, ok, err := calc.ComputeTokens(tokens)
		if err != nil || !ok {
			return "", ok, err
		}
		return format(v), true, nil
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runCalc(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())
	eval, _, err := newEvaluator(domainName, infix)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		line := strings.Join(args, " ")
		res, ok, err := eval(line)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), res)
		}
		return nil
	}
	return repl(cmd.InOrStdin(), cmd.OutOrStdout(), eval, logger)
}

// repl evaluates stdin line by line. A failing line is reported and the
// loop goes on; the returned error is non-nil if any line failed.
func repl(in io.Reader, out io.Writer, eval evaluator, logger *slog.Logger) error {
	var failed int
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		res, ok, err := eval(line)
		if err != nil {
			failed++
			logger.Debug("line failed", "line", n, "expr", line, "err", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if ok {
			fmt.Fprintln(out, res)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d expressions failed", failed)
	}
	return nil
}

func listOps(cmd *cobra.Command, args []string) error {
	_, names, err := newEvaluator(domainName, false)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
	return nil
}
