package mathex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

// ============================================================
// Forward-mode automatic differentiation
// ============================================================

// EvalDual evaluates expr and its derivative with respect to wrt in a single
// pass over the tree. The result's Real part equals expr.Eval(ctx) and its
// Emag part is d(expr)/d(wrt) at ctx. ctx must bind wrt.
func EvalDual(expr Expr, ctx Context, wrt string) (dual.Number, error) {
	return evalAD(expr, ctx, wrt, dualOps)
}

// EvalHyperdual is EvalDual carried to second order: E1mag holds the first
// derivative and E1E2mag the second.
func EvalHyperdual(expr Expr, ctx Context, wrt string) (hyperdual.Number, error) {
	return evalAD(expr, ctx, wrt, hyperdualOps)
}

// adOps is the arithmetic an AD number type has to provide.
type adOps[T any] struct {
	lift    func(v float64) T
	seed    func(v float64) T
	isConst func(x T) bool
	real    func(x T) float64

	add     func(x, y T) T
	mul     func(x, y T) T
	scale   func(f float64, x T) T
	powReal func(x T, p float64) T
	inv     func(x T) T
	sin     func(x T) T
	cos     func(x T) T
	tan     func(x T) T
	exp     func(x T) T
	log     func(x T) T
	sqrt    func(x T) T

	// kink keeps the real part of x and makes every derivative part NaN.
	kink func(x T) T
}

var dualOps = &adOps[dual.Number]{
	lift:    func(v float64) dual.Number { return dual.Number{Real: v} },
	seed:    func(v float64) dual.Number { return dual.Number{Real: v, Emag: 1} },
	isConst: func(x dual.Number) bool { return x.Emag == 0 },
	real:    func(x dual.Number) float64 { return x.Real },
	add:     dual.Add,
	mul:     dual.Mul,
	scale:   dual.Scale,
	powReal: dual.PowReal,
	inv:     dual.Inv,
	sin:     dual.Sin,
	cos:     dual.Cos,
	tan:     dual.Tan,
	exp:     dual.Exp,
	log:     dual.Log,
	sqrt:    dual.Sqrt,
	kink: func(x dual.Number) dual.Number {
		return dual.Number{Real: x.Real, Emag: math.NaN()}
	},
}

var hyperdualOps = &adOps[hyperdual.Number]{
	lift: func(v float64) hyperdual.Number { return hyperdual.Number{Real: v} },
	seed: func(v float64) hyperdual.Number { return hyperdual.Number{Real: v, E1mag: 1, E2mag: 1} },
	isConst: func(x hyperdual.Number) bool {
		return x.E1mag == 0 && x.E2mag == 0 && x.E1E2mag == 0
	},
	real:    func(x hyperdual.Number) float64 { return x.Real },
	add:     hyperdual.Add,
	mul:     hyperdual.Mul,
	scale:   hyperdual.Scale,
	powReal: hyperdual.PowReal,
	inv:     hyperdual.Inv,
	sin:     hyperdual.Sin,
	cos:     hyperdual.Cos,
	tan:     hyperdual.Tan,
	exp:     hyperdual.Exp,
	log:     hyperdual.Log,
	sqrt:    hyperdual.Sqrt,
	kink: func(x hyperdual.Number) hyperdual.Number {
		nan := math.NaN()
		return hyperdual.Number{Real: x.Real, E1mag: nan, E2mag: nan, E1E2mag: nan}
	},
}

func evalAD[T any](e Expr, ctx Context, wrt string, ops *adOps[T]) (T, error) {
	var zero T
	switch n := e.(type) {
	case *Constant:
		return ops.lift(n.value), nil
	case *Variable:
		v, ok := ctx[n.name]
		if !ok {
			return zero, errors.WithStack(&UndefinedVariableError{Name: n.name})
		}
		if n.name == wrt {
			return ops.seed(v), nil
		}
		return ops.lift(v), nil
	case *Unary:
		x, err := evalAD(n.arg, ctx, wrt, ops)
		if err != nil {
			return zero, err
		}
		return applyUnaryAD(n.op, x, ops), nil
	case *Binary:
		l, err := evalAD(n.left, ctx, wrt, ops)
		if err != nil {
			return zero, err
		}
		r, err := evalAD(n.right, ctx, wrt, ops)
		if err != nil {
			return zero, err
		}
		return applyBinaryAD(n.op, l, r, ops), nil
	}
	panic("mathex: unknown expression type " + e.exprType())
}

func applyUnaryAD[T any](op UnaryOp, x T, ops *adOps[T]) T {
	switch op {
	case OpNeg:
		return ops.scale(-1, x)
	case OpSin:
		return ops.sin(x)
	case OpCos:
		return ops.cos(x)
	case OpTan:
		return ops.tan(x)
	case OpSec:
		return ops.inv(ops.cos(x))
	case OpCsc:
		return ops.inv(ops.sin(x))
	case OpCot:
		return ops.inv(ops.tan(x))
	case OpLn:
		return ops.log(x)
	case OpLog10:
		return ops.scale(1/math.Ln10, ops.log(x))
	case OpExp:
		return ops.exp(x)
	case OpSqrt:
		return ops.sqrt(x)
	case OpAbs:
		// |u|' = u'|u|/u has no value at u == 0.
		if ops.real(x) == 0 {
			return ops.kink(x)
		}
		if ops.real(x) < 0 {
			return ops.scale(-1, x)
		}
		return x
	}
	panic("mathex: unreachable unary operator " + op.String())
}

func applyBinaryAD[T any](op BinaryOp, l, r T, ops *adOps[T]) T {
	switch op {
	case OpAdd:
		return ops.add(l, r)
	case OpSub:
		return ops.add(l, ops.scale(-1, r))
	case OpMul:
		return ops.mul(l, r)
	case OpDiv:
		return ops.mul(l, ops.inv(r))
	case OpPow:
		// An exponent that does not depend on wrt keeps math.Pow semantics
		// for negative bases.
		if ops.isConst(r) {
			return ops.powReal(l, ops.real(r))
		}
		return ops.exp(ops.mul(r, ops.log(l)))
	}
	panic("mathex: unreachable binary operator " + op.String())
}
