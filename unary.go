package mathex

import (
	"fmt"
	"math"
)

// ============================================================
// Unary: one-argument function application
// ============================================================

// UnaryOp identifies the function a Unary node applies.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpSin
	OpCos
	OpTan
	OpSec
	OpCsc
	OpCot
	OpLn
	OpLog10
	OpExp
	OpSqrt
	OpAbs
)

var unaryOpNames = [...]string{
	OpNeg:   "neg",
	OpSin:   "sin",
	OpCos:   "cos",
	OpTan:   "tan",
	OpSec:   "sec",
	OpCsc:   "csc",
	OpCot:   "cot",
	OpLn:    "ln",
	OpLog10: "log10",
	OpExp:   "exp",
	OpSqrt:  "sqrt",
	OpAbs:   "abs",
}

func (op UnaryOp) valid() bool { return op >= OpNeg && op <= OpAbs }

func (op UnaryOp) String() string {
	if !op.valid() {
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
	return unaryOpNames[op]
}

// ParseUnaryOp maps a name such as "sin" or "log10" back to its UnaryOp.
func ParseUnaryOp(name string) (UnaryOp, bool) {
	for i, n := range unaryOpNames {
		if n == name {
			return UnaryOp(i), true
		}
	}
	return 0, false
}

type Unary struct {
	op  UnaryOp
	arg Expr
}

// NewUnary applies op to arg. The node takes arg as is; callers that keep
// using arg elsewhere must pass arg.Clone().
func NewUnary(op UnaryOp, arg Expr) *Unary {
	if !op.valid() {
		panic(fmt.Sprintf("mathex: unknown unary operator %d", int(op)))
	}
	mustExpr(arg, op.String()+" operand")
	return &Unary{op: op, arg: arg}
}

func (u *Unary) Op() UnaryOp { return u.op }
func (u *Unary) Arg() Expr   { return u.arg }

func Sin(e Expr) Expr   { return unaryOf(OpSin, e) }
func Cos(e Expr) Expr   { return unaryOf(OpCos, e) }
func Tan(e Expr) Expr   { return unaryOf(OpTan, e) }
func Sec(e Expr) Expr   { return unaryOf(OpSec, e) }
func Csc(e Expr) Expr   { return unaryOf(OpCsc, e) }
func Cot(e Expr) Expr   { return unaryOf(OpCot, e) }
func Ln(e Expr) Expr    { return unaryOf(OpLn, e) }
func Log10(e Expr) Expr { return unaryOf(OpLog10, e) }
func Exp(e Expr) Expr   { return unaryOf(OpExp, e) }
func Sqrt(e Expr) Expr  { return unaryOf(OpSqrt, e) }
func Abs(e Expr) Expr   { return unaryOf(OpAbs, e) }

// Neg negates e. A constant operand folds to a new Constant.
func Neg(e Expr) Expr {
	mustExpr(e, "neg operand")
	if c, ok := e.(*Constant); ok {
		return C(-c.value)
	}
	return unaryOf(OpNeg, e)
}

func unaryOf(op UnaryOp, e Expr) Expr {
	mustExpr(e, op.String()+" operand")
	return NewUnary(op, e.Clone())
}

func (u *Unary) Eval(ctx Context) (float64, error) {
	v, err := u.arg.Eval(ctx)
	if err != nil {
		return 0, err
	}
	switch u.op {
	case OpNeg:
		return -v, nil
	case OpSin:
		return math.Sin(v), nil
	case OpCos:
		return math.Cos(v), nil
	case OpTan:
		return math.Tan(v), nil
	case OpSec:
		return 1 / math.Cos(v), nil
	case OpCsc:
		return 1 / math.Sin(v), nil
	case OpCot:
		return 1 / math.Tan(v), nil
	case OpLn:
		return math.Log(v), nil
	case OpLog10:
		return math.Log10(v), nil
	case OpExp:
		return math.Exp(v), nil
	case OpSqrt:
		return math.Sqrt(v), nil
	case OpAbs:
		return math.Abs(v), nil
	}
	panic("mathex: unreachable unary operator " + u.op.String())
}

func (u *Unary) Clone() Expr { return &Unary{op: u.op, arg: u.arg.Clone()} }

// Diff applies the chain rule. du is used exactly once per rule; every other
// reference to the argument goes through a fresh clone.
func (u *Unary) Diff(varName string) Expr {
	du := u.arg.Diff(varName)
	arg := u.arg.Clone
	switch u.op {
	case OpNeg:
		return NewUnary(OpNeg, du)
	case OpSin:
		return NewBinary(OpMul, du, NewUnary(OpCos, arg()))
	case OpCos:
		return NewUnary(OpNeg, NewBinary(OpMul, du, NewUnary(OpSin, arg())))
	case OpTan:
		// du * sec(u)^2
		return NewBinary(OpMul, du,
			NewBinary(OpPow, NewUnary(OpSec, arg()), C(2)))
	case OpSec:
		// du * (tan(u) * sec(u))
		return NewBinary(OpMul, du,
			NewBinary(OpMul, NewUnary(OpTan, arg()), NewUnary(OpSec, arg())))
	case OpCsc:
		// -(du * (csc(u) * cot(u)))
		return NewUnary(OpNeg, NewBinary(OpMul, du,
			NewBinary(OpMul, NewUnary(OpCsc, arg()), NewUnary(OpCot, arg()))))
	case OpCot:
		// -(du * csc(u)^2)
		return NewUnary(OpNeg, NewBinary(OpMul, du,
			NewBinary(OpPow, NewUnary(OpCsc, arg()), C(2))))
	case OpLn:
		return NewBinary(OpDiv, du, arg())
	case OpLog10:
		// du / (ln(10) * u)
		return NewBinary(OpDiv, du, NewBinary(OpMul, C(math.Ln10), arg()))
	case OpExp:
		return NewBinary(OpMul, du, NewUnary(OpExp, arg()))
	case OpSqrt:
		// du / (2 * sqrt(u))
		return NewBinary(OpDiv, du, NewBinary(OpMul, C(2), NewUnary(OpSqrt, arg())))
	case OpAbs:
		// du * (|u| / u)
		return NewBinary(OpMul, du,
			NewBinary(OpDiv, NewUnary(OpAbs, arg()), arg()))
	}
	panic("mathex: unreachable unary operator " + u.op.String())
}

func (u *Unary) Subs(varName string, value Expr) Expr {
	return &Unary{op: u.op, arg: u.arg.Subs(varName, value)}
}

func (u *Unary) Equal(other Expr) bool {
	o, ok := other.(*Unary)
	return ok && u.op == o.op && u.arg.Equal(o.arg)
}

func (u *Unary) exprType() string { return "unary" }

func (u *Unary) precedence() int {
	if u.op == OpNeg {
		return precNeg
	}
	return precAtom
}

func (u *Unary) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "unary", "op": u.op.String(), "arg": u.arg.toJSON()}
}
