// cmd/mathex: command-line front end for mathex
//
// Expressions are read as JSON or YAML trees (see mathex.DecodeJSON):
//
//	mathex eval -f f.json x=2
//	mathex diff -f f.yaml --wrt x --check x=3
//	mathex symbols -f f.json
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/njchilds90/mathex"
)

type options struct {
	file     string
	logLevel string
	wrt      string
	order    int
	check    bool
}

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "mathex",
		Short:        "Evaluate and differentiate expression trees",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(cmd.ErrOrStderr(), opts.logLevel)
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "-", "expression file (.json, .yaml, .yml, or - for JSON on stdin)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	root.AddCommand(
		newEvalCmd(stdin, opts),
		newDiffCmd(stdin, opts),
		newSymbolsCmd(stdin, opts),
	)
	return root
}

func newEvalCmd(stdin io.Reader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [name=value ...]",
		Short: "Evaluate the expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadExpr(opts.file, stdin)
			if err != nil {
				return err
			}
			ctx, err := parseAssignments(args)
			if err != nil {
				return err
			}
			v, err := e.Eval(ctx)
			if err != nil {
				return err
			}
			slog.Debug("evaluated", slog.String("expr", e.String()), slog.Float64("value", v))
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(v))
			return nil
		},
	}
}

func newDiffCmd(stdin io.Reader, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [name=value ...]",
		Short: "Differentiate the expression, optionally evaluating the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.order < 0 {
				return errors.New("--order must be >= 0")
			}
			e, err := loadExpr(opts.file, stdin)
			if err != nil {
				return err
			}
			ctx, err := parseAssignments(args)
			if err != nil {
				return err
			}
			d := mathex.DiffN(e, opts.wrt, opts.order)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.String())
			if len(ctx) == 0 {
				if opts.check {
					return errors.New("--check needs a point to evaluate at")
				}
				return nil
			}
			v, err := d.Eval(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "value: %s\n", formatFloat(v))
			if opts.check {
				return checkDerivative(out, e, ctx, opts.wrt, opts.order, v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.wrt, "wrt", "x", "variable to differentiate with respect to")
	cmd.Flags().IntVar(&opts.order, "order", 1, "derivative order")
	cmd.Flags().BoolVar(&opts.check, "check", false, "cross-check the value with dual numbers and finite differences")
	return cmd
}

func newSymbolsCmd(stdin io.Reader, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the free variables of the expression",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadExpr(opts.file, stdin)
			if err != nil {
				return err
			}
			for _, name := range mathex.FreeSymbols(e) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
