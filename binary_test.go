package mathex_test

import (
	"math"
	"testing"

	"github.com/njchilds90/mathex"
)

// quadratic builds x^2 - 10x + 16.
func quadratic() mathex.Expr {
	x := mathex.V("x")
	return mathex.Add(mathex.Sub(mathex.Pow(x, mathex.C(2)), mathex.Mul(mathex.C(10), x)), mathex.C(16))
}

func TestBinary_Eval_Quadratic(t *testing.T) {
	f := quadratic()
	for _, tt := range []struct{ at, want float64 }{{2, 0}, {8, 0}, {0, 16}} {
		if got := evalOK(t, f, mathex.Context{"x": tt.at}); got != tt.want {
			t.Errorf("f(%v): want %v, got %v", tt.at, tt.want, got)
		}
	}
}

func TestBinary_Eval(t *testing.T) {
	x, y := mathex.V("x"), mathex.V("y")
	ctx := mathex.Context{"x": 6, "y": 4}
	tests := []struct {
		name string
		expr mathex.Expr
		want float64
	}{
		{"add", mathex.Add(x, y), 10},
		{"sub", mathex.Sub(x, y), 2},
		{"mul", mathex.Mul(x, y), 24},
		{"div", mathex.Div(x, y), 1.5},
		{"pow", mathex.Pow(x, y), 1296},
		{"fractional pow", mathex.Pow(y, mathex.C(0.5)), 2},
		{"negative pow", mathex.Pow(y, mathex.C(-1)), 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.expr.String(), evalOK(t, tt.expr, ctx), tt.want, exactTol)
		})
	}
}

func TestBinary_Eval_DomainPropagates(t *testing.T) {
	x := mathex.V("x")
	if v := evalOK(t, mathex.Div(mathex.C(1), x), mathex.Context{"x": 0}); !math.IsInf(v, 1) {
		t.Errorf("1/0 should be +Inf, got %v", v)
	}
	if v := evalOK(t, mathex.Div(x, x), mathex.Context{"x": 0}); !math.IsNaN(v) {
		t.Errorf("0/0 should be NaN, got %v", v)
	}
	if v := evalOK(t, mathex.Pow(x, mathex.C(1.0/3)), mathex.Context{"x": -8}); !math.IsNaN(v) {
		t.Errorf("(-8)^(1/3) should be NaN, got %v", v)
	}
}

func TestBinary_Diff_MatchesCentralDifference(t *testing.T) {
	x, y := mathex.V("x"), mathex.V("y")
	u := mathex.Add(mathex.Mul(x, x), mathex.Sin(y))
	v := mathex.Add(mathex.Exp(mathex.Mul(mathex.C(0.3), x)), mathex.Mul(x, y))
	tests := []struct {
		name string
		expr mathex.Expr
	}{
		{"sum", mathex.Add(u, v)},
		{"difference", mathex.Sub(u, v)},
		{"product", mathex.Mul(u, v)},
		{"quotient", mathex.Div(u, v)},
		{"constant exponent", mathex.Pow(u, mathex.C(3))},
		{"variable exponent", mathex.Pow(v, u)},
		{"constant base", mathex.Pow(mathex.C(1.5), u)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ctx := range []mathex.Context{
				{"x": 0.4, "y": 1.2},
				{"x": 1.1, "y": -0.5},
			} {
				for _, wrt := range []string{"x", "y"} {
					got := evalOK(t, tt.expr.Diff(wrt), ctx)
					assertClose(t, "d/d"+wrt+" "+tt.expr.String(), got, centralDiff(t, tt.expr, ctx, wrt), fdTol)
				}
			}
		})
	}
}

func TestBinary_Diff_PowConstantExponent(t *testing.T) {
	x := mathex.V("x")
	d := mathex.Pow(x, mathex.C(2)).Diff("x")
	if got := evalOK(t, d, mathex.Context{"x": 3}); got != 6 {
		t.Errorf("d/dx x^2 at 3: want 6, got %v", got)
	}
	for _, n := range nodes(d) {
		if u, ok := n.(*mathex.Unary); ok && u.Op() == mathex.OpLn {
			t.Fatalf("simple power rule should not take a logarithm: %s", d)
		}
	}
	// negative bases stay defined on the simple path
	if got := evalOK(t, d, mathex.Context{"x": -2}); got != -4 {
		t.Errorf("d/dx x^2 at -2: want -4, got %v", got)
	}
}

func TestBinary_Diff_PowGeneralRule(t *testing.T) {
	x := mathex.V("x")
	d := mathex.Pow(mathex.C(2), x).Diff("x")
	assertClose(t, "d/dx 2^x at 3", evalOK(t, d, mathex.Context{"x": 3}), 8*math.Ln2, exactTol)

	// an exponent that only evaluates to a constant still takes the general
	// rule, which is undefined for negative bases
	g := mathex.Pow(x, mathex.Sqrt(mathex.C(4))).Diff("x")
	assertClose(t, "d/dx x^sqrt(4) at 3", evalOK(t, g, mathex.Context{"x": 3}), 6, exactTol)
	if v := evalOK(t, g, mathex.Context{"x": -2}); !math.IsNaN(v) {
		t.Errorf("general rule at a negative base should be NaN, got %v", v)
	}
}

func TestBinary_Diff_ChainRule(t *testing.T) {
	x := mathex.V("x")
	g := mathex.Ln(mathex.Add(mathex.Abs(mathex.Pow(x, mathex.C(3))), mathex.C(10)))
	d := g.Diff("x")
	for _, at := range []float64{-1.7, -0.4, 0.9, 2.5} {
		ctx := mathex.Context{"x": at}
		want := centralDiff(t, g, ctx, "x")
		assertClose(t, "d/dx ln(|x^3| + 10)", evalOK(t, d, ctx), want, fdTol)
		// closed form: 3x^2 sign(x^3) / (|x^3| + 10)
		x3 := at * at * at
		assertClose(t, "closed form", evalOK(t, d, ctx), 3*at*at*math.Copysign(1, x3)/(math.Abs(x3)+10), exactTol)
	}
}

func TestBinary_Diff_Quadratic(t *testing.T) {
	d := quadratic().Diff("x")
	for _, tt := range []struct{ at, want float64 }{{3, -4}, {5, 0}, {0, -10}} {
		assertClose(t, "f'", evalOK(t, d, mathex.Context{"x": tt.at}), tt.want, exactTol)
	}
}

func TestBinary_Diff_Independent(t *testing.T) {
	x, y := mathex.V("x"), mathex.V("y")
	for _, e := range []mathex.Expr{
		mathex.Mul(x, y),
		mathex.Div(mathex.Sin(x), mathex.Add(x, y)),
		mathex.Pow(x, mathex.C(4)),
		mathex.Pow(x, y),
		quadratic(),
	} {
		d := e.Diff("x")
		assertNoSharing(t, e, d)
		assertNoSharing(t, d, mathex.Diff(d, "x"))
	}
}

func TestBinary_Clone(t *testing.T) {
	x, y := mathex.V("x"), mathex.V("y")
	orig := mathex.Div(mathex.Mul(x, mathex.Sin(y)), mathex.Sub(x, mathex.C(2)))
	cl := orig.Clone()
	assertNoSharing(t, orig, cl)
	if !cl.Equal(orig) {
		t.Fatalf("clone %s differs from %s", cl, orig)
	}
	for _, ctx := range []mathex.Context{
		{"x": 3, "y": 0.5},
		{"x": -1, "y": 2},
		{"x": 2, "y": 1},
	} {
		a, errA := orig.Eval(ctx)
		b, errB := cl.Eval(ctx)
		if errA != nil || errB != nil {
			t.Fatalf("eval: %v / %v", errA, errB)
		}
		if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			t.Errorf("at %v: original %v, clone %v", ctx, a, b)
		}
	}

	// rewriting the original leaves the clone alone
	before := cl.String()
	orig = mathex.Subs(orig, "x", mathex.C(100))
	if cl.String() != before {
		t.Errorf("clone changed to %s", cl)
	}
	if orig.Equal(cl) {
		t.Error("substituted tree should differ from the clone")
	}
}

func TestBinary_BuildersCloneOperands(t *testing.T) {
	x := mathex.V("x")
	b := mathex.Mul(x, x).(*mathex.Binary)
	if b.Left() == mathex.Expr(x) || b.Right() == mathex.Expr(x) || b.Left() == b.Right() {
		t.Error("builder children must be fresh clones")
	}
}

func TestBinary_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil left", func() { mathex.Add(nil, mathex.V("x")) }},
		{"nil right", func() { mathex.Pow(mathex.V("x"), nil) }},
		{"nil NewBinary operand", func() { mathex.NewBinary(mathex.OpMul, mathex.C(1), nil) }},
		{"unknown operator", func() { mathex.NewBinary(mathex.BinaryOp(42), mathex.C(1), mathex.C(2)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestBinaryOp_ParseAndSymbol(t *testing.T) {
	symbols := map[mathex.BinaryOp]string{
		mathex.OpAdd: "+", mathex.OpSub: "-", mathex.OpMul: "*", mathex.OpDiv: "/", mathex.OpPow: "^",
	}
	for op, sym := range symbols {
		got, ok := mathex.ParseBinaryOp(op.String())
		if !ok || got != op {
			t.Errorf("ParseBinaryOp(%q) = %v, %v", op.String(), got, ok)
		}
		if op.Symbol() != sym {
			t.Errorf("%s symbol: want %q, got %q", op, sym, op.Symbol())
		}
	}
	if _, ok := mathex.ParseBinaryOp("mod"); ok {
		t.Error("mod is not a supported operator")
	}
}
