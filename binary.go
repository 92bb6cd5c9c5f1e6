package mathex

import (
	"fmt"
	"math"
)

// ============================================================
// Binary: two-operand arithmetic
// ============================================================

// BinaryOp identifies the operator of a Binary node.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var binaryOpNames = [...]string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
	OpPow: "pow",
}

var binaryOpSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

func (op BinaryOp) valid() bool { return op >= OpAdd && op <= OpPow }

func (op BinaryOp) String() string {
	if !op.valid() {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return binaryOpNames[op]
}

// Symbol returns the infix spelling of op, e.g. "+" for OpAdd.
func (op BinaryOp) Symbol() string {
	if !op.valid() {
		return "?"
	}
	return binaryOpSymbols[op]
}

// ParseBinaryOp maps "add", "sub", "mul", "div" or "pow" back to its BinaryOp.
func ParseBinaryOp(name string) (BinaryOp, bool) {
	for i, n := range binaryOpNames {
		if n == name {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

type Binary struct {
	op          BinaryOp
	left, right Expr
}

// NewBinary combines left and right with op. The node takes both operands
// as is; callers that keep using them must pass clones.
func NewBinary(op BinaryOp, left, right Expr) *Binary {
	if !op.valid() {
		panic(fmt.Sprintf("mathex: unknown binary operator %d", int(op)))
	}
	mustExpr(left, op.String()+" left operand")
	mustExpr(right, op.String()+" right operand")
	return &Binary{op: op, left: left, right: right}
}

func (b *Binary) Op() BinaryOp { return b.op }
func (b *Binary) Left() Expr   { return b.left }
func (b *Binary) Right() Expr  { return b.right }

// Add, Sub, Mul and Div fold two constants into one; any other operand pair
// builds a node over clones of a and b.
func Add(a, b Expr) Expr { return arith(OpAdd, a, b) }
func Sub(a, b Expr) Expr { return arith(OpSub, a, b) }
func Mul(a, b Expr) Expr { return arith(OpMul, a, b) }
func Div(a, b Expr) Expr { return arith(OpDiv, a, b) }

// Pow raises base to exp. It never folds, so Pow(C(2), C(3)) stays a tree.
func Pow(base, exp Expr) Expr { return binaryOf(OpPow, base, exp) }

func arith(op BinaryOp, a, b Expr) Expr {
	mustExpr(a, op.String()+" left operand")
	mustExpr(b, op.String()+" right operand")
	ca, okA := a.(*Constant)
	cb, okB := b.(*Constant)
	if okA && okB {
		return C(applyBinary(op, ca.value, cb.value))
	}
	return binaryOf(op, a, b)
}

func binaryOf(op BinaryOp, a, b Expr) Expr {
	mustExpr(a, op.String()+" left operand")
	mustExpr(b, op.String()+" right operand")
	return NewBinary(op, a.Clone(), b.Clone())
}

func applyBinary(op BinaryOp, l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	case OpPow:
		return math.Pow(l, r)
	}
	panic("mathex: unreachable binary operator " + op.String())
}

func (b *Binary) Eval(ctx Context) (float64, error) {
	l, err := b.left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	r, err := b.right.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return applyBinary(b.op, l, r), nil
}

func (b *Binary) Clone() Expr {
	return &Binary{op: b.op, left: b.left.Clone(), right: b.right.Clone()}
}

// Diff applies the sum, difference, product, quotient and power rules.
// du and dv are used once each; u and v are re-cloned per reference.
func (b *Binary) Diff(varName string) Expr {
	u, v := b.left.Clone, b.right.Clone
	switch b.op {
	case OpAdd:
		return NewBinary(OpAdd, b.left.Diff(varName), b.right.Diff(varName))
	case OpSub:
		return NewBinary(OpSub, b.left.Diff(varName), b.right.Diff(varName))
	case OpMul:
		// du*v + u*dv
		return NewBinary(OpAdd,
			NewBinary(OpMul, b.left.Diff(varName), v()),
			NewBinary(OpMul, u(), b.right.Diff(varName)))
	case OpDiv:
		// (du*v - u*dv) / v^2
		return NewBinary(OpDiv,
			NewBinary(OpSub,
				NewBinary(OpMul, b.left.Diff(varName), v()),
				NewBinary(OpMul, u(), b.right.Diff(varName))),
			NewBinary(OpPow, v(), C(2)))
	case OpPow:
		return b.diffPow(varName)
	}
	panic("mathex: unreachable binary operator " + b.op.String())
}

// diffPow takes the simple power rule when the exponent is a literal
// constant; that path never calls ln on the base, so negative bases stay
// defined. Every other exponent gets the general rule
// u^v * (dv*ln(u) + v*du/u).
func (b *Binary) diffPow(varName string) Expr {
	u, v := b.left.Clone, b.right.Clone
	du := b.left.Diff(varName)
	if c, ok := b.right.(*Constant); ok {
		// du * (c * u^(c-1))
		return NewBinary(OpMul, du,
			NewBinary(OpMul, C(c.value), NewBinary(OpPow, u(), C(c.value-1))))
	}
	dv := b.right.Diff(varName)
	return NewBinary(OpMul,
		NewBinary(OpPow, u(), v()),
		NewBinary(OpAdd,
			NewBinary(OpMul, dv, NewUnary(OpLn, u())),
			NewBinary(OpDiv, NewBinary(OpMul, v(), du), u())))
}

func (b *Binary) Subs(varName string, value Expr) Expr {
	return &Binary{op: b.op, left: b.left.Subs(varName, value), right: b.right.Subs(varName, value)}
}

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

func (b *Binary) exprType() string { return "binary" }

func (b *Binary) precedence() int { return binaryPrecedence(b.op) }

func (b *Binary) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "binary",
		"op":    b.op.String(),
		"left":  b.left.toJSON(),
		"right": b.right.toJSON(),
	}
}
