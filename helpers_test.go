package mathex_test

import (
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/njchilds90/mathex"
)

const (
	exactTol = 1e-9
	fdTol    = 1e-3
	fdStep   = 1e-4
)

func evalOK(t *testing.T, e mathex.Expr, ctx mathex.Context) float64 {
	t.Helper()
	v, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("eval %s: %v", e, err)
	}
	return v
}

func assertClose(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbsOrRel(got, want, tol, tol) {
		t.Errorf("%s: want %v, got %v", what, want, got)
	}
}

// centralDiff is the finite-difference oracle for symbolic derivatives.
func centralDiff(t *testing.T, e mathex.Expr, ctx mathex.Context, wrt string) float64 {
	t.Helper()
	local := mathex.Context{}
	for k, v := range ctx {
		local[k] = v
	}
	f := func(x float64) float64 {
		local[wrt] = x
		return evalOK(t, e, local)
	}
	return fd.Derivative(f, ctx[wrt], &fd.Settings{Formula: fd.Central, Step: fdStep})
}

// nodes lists every node of e in pre-order.
func nodes(e mathex.Expr) []mathex.Expr {
	out := []mathex.Expr{e}
	switch n := e.(type) {
	case *mathex.Unary:
		out = append(out, nodes(n.Arg())...)
	case *mathex.Binary:
		out = append(out, nodes(n.Left())...)
		out = append(out, nodes(n.Right())...)
	}
	return out
}

// assertNoSharing fails when a and b have a node in common, or when either
// tree reaches the same node twice.
func assertNoSharing(t *testing.T, a, b mathex.Expr) {
	t.Helper()
	seen := map[mathex.Expr]string{}
	for _, n := range nodes(a) {
		if _, dup := seen[n]; dup {
			t.Fatalf("node %s appears twice in %s", n, a)
		}
		seen[n] = "a"
	}
	for _, n := range nodes(b) {
		if owner, dup := seen[n]; dup {
			if owner == "a" {
				t.Fatalf("node %s is shared between %s and %s", n, a, b)
			}
			t.Fatalf("node %s appears twice in %s", n, b)
		}
		seen[n] = "b"
	}
}
