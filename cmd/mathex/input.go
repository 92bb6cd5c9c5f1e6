package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/njchilds90/mathex"
)

const (
	dualTol    = 1e-9
	numericTol = 1e-3
)

func initLogger(w io.Writer, level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l})))
}

// loadExpr reads an expression tree from path, or JSON from stdin when path
// is "-".
func loadExpr(path string, stdin io.Reader) (mathex.Expr, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return mathex.DecodeYAML(data)
	}
	return mathex.DecodeJSON(data)
}

// parseAssignments turns name=value arguments into a context.
func parseAssignments(args []string) (mathex.Context, error) {
	ctx := make(mathex.Context, len(args))
	for _, a := range args {
		name, raw, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid assignment %q, want name=value", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s", name)
		}
		ctx[name] = v
	}
	return ctx, nil
}

// checkDerivative compares the symbolic derivative value against dual-number
// AD (orders 1 and 2) and a central difference (order 1).
func checkDerivative(w io.Writer, e mathex.Expr, ctx mathex.Context, wrt string, order int, symbolic float64) error {
	var ad float64
	switch order {
	case 1:
		d, err := mathex.EvalDual(e, ctx, wrt)
		if err != nil {
			return err
		}
		ad = d.Emag
	case 2:
		d, err := mathex.EvalHyperdual(e, ctx, wrt)
		if err != nil {
			return err
		}
		ad = d.E1E2mag
	default:
		return errors.Errorf("--check supports order 1 or 2, got %d", order)
	}
	fmt.Fprintf(w, "dual: %s\n", formatFloat(ad))
	if !agree(symbolic, ad, dualTol) {
		return errors.Errorf("symbolic %v and dual %v disagree", symbolic, ad)
	}

	// A central difference steps across points where the derivative is
	// undefined, so it is only compared against a defined value.
	if order == 1 && !math.IsNaN(symbolic) {
		num, err := mathex.NumericDerivative(e, ctx, wrt, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "numeric: %s\n", formatFloat(num))
		if !scalar.EqualWithinAbsOrRel(symbolic, num, numericTol, numericTol) {
			return errors.Errorf("symbolic %v and numeric %v disagree", symbolic, num)
		}
	}
	return nil
}

// agree compares within tol; two NaNs agree.
func agree(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}
