package mathex

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
)

// ============================================================
// Top-level convenience functions
// ============================================================

// Diff returns d(expr)/d(varName).
func Diff(expr Expr, varName string) Expr {
	mustExpr(expr, "expression")
	return expr.Diff(varName)
}

func Diff2(expr Expr, varName string) Expr {
	return Diff(Diff(expr, varName), varName)
}

// DiffN differentiates n times. n == 0 returns a clone of expr.
func DiffN(expr Expr, varName string, n int) Expr {
	mustExpr(expr, "expression")
	if n < 0 {
		panic("mathex: negative derivative order")
	}
	result := expr.Clone()
	for i := 0; i < n; i++ {
		result = result.Diff(varName)
	}
	return result
}

// Subs replaces every varName in expr with a copy of value. A nil value
// panics even when varName does not occur.
func Subs(expr Expr, varName string, value Expr) Expr {
	mustExpr(expr, "expression")
	mustExpr(value, "substitution value")
	return expr.Subs(varName, value)
}

// FreeSymbols returns the sorted, distinct variable names in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	collectSymbols(e, seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Variable:
		out[v.name] = struct{}{}
	case *Unary:
		collectSymbols(v.arg, out)
	case *Binary:
		collectSymbols(v.left, out)
		collectSymbols(v.right, out)
	}
}

// ============================================================
// Numerical differentiation
// ============================================================

// DefaultStep is the finite-difference step used when NumericDerivative is
// called with step <= 0.
const DefaultStep = 1e-4

// NumericDerivative estimates d(expr)/d(wrt) at ctx with a central
// difference. ctx must bind wrt; it is not modified.
func NumericDerivative(expr Expr, ctx Context, wrt string, step float64) (float64, error) {
	mustExpr(expr, "expression")
	x, ok := ctx[wrt]
	if !ok {
		return 0, errors.WithStack(&UndefinedVariableError{Name: wrt})
	}
	if step <= 0 {
		step = DefaultStep
	}
	local := make(Context, len(ctx))
	for k, v := range ctx {
		local[k] = v
	}
	var evalErr error
	f := func(at float64) float64 {
		local[wrt] = at
		v, err := expr.Eval(local)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return v
	}
	d := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central, Step: step})
	if evalErr != nil {
		return 0, evalErr
	}
	return d, nil
}
