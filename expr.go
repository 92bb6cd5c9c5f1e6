// Package mathex is an embeddable engine for float64 math expressions.
//
// Expressions are trees built programmatically from constants, variables,
// unary functions and binary operators:
//
//	x := mathex.V("x")
//	f := mathex.Add(mathex.Sub(mathex.Pow(x, mathex.C(2)), mathex.Mul(mathex.C(10), x)), mathex.C(16))
//	v, err := f.Eval(mathex.Context{"x": 2}) // 0
//	df := f.Diff("x")                         // 2x - 10, unsimplified
//
// Every tree is immutable once built. Builders and differentiation rules clone
// their operands, so no two parents ever share a node and a tree returned by
// Clone, Diff or Subs is fully independent of its source.
//
// Numeric domain problems (division by zero, log of a negative number, ...)
// are not errors: they surface as IEEE NaN or Inf. The only evaluation error is
// a variable missing from the Context.
package mathex

import (
	"fmt"

	"github.com/pkg/errors"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is implemented by the four node kinds of this package:
// *Constant, *Variable, *Unary and *Binary.
type Expr interface {
	// Eval folds the tree to a number, resolving variables through ctx.
	Eval(ctx Context) (float64, error)
	// Clone returns a deep copy that shares no node with the receiver.
	Clone() Expr
	// Diff returns a new tree for the derivative with respect to varName.
	Diff(varName string) Expr
	// Subs returns a new tree with every varName replaced by a copy of value.
	Subs(varName string, value Expr) Expr
	Equal(other Expr) bool
	String() string
	LaTeX() string

	exprType() string
	toJSON() map[string]interface{}
	precedence() int
}

// Context maps variable names to their values during evaluation.
type Context map[string]float64

// ============================================================
// Errors
// ============================================================

// ErrUndefinedVariable matches, under errors.Is, any error produced by
// evaluating a variable that is absent from the Context.
var ErrUndefinedVariable = errors.New("undefined variable")

// UndefinedVariableError reports which variable could not be resolved.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("mathex: undefined variable %q", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool { return target == ErrUndefinedVariable }

func mustExpr(e Expr, what string) {
	if e == nil {
		panic("mathex: nil " + what)
	}
}
