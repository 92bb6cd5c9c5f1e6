package mathex

import "strings"

// Binding strength used to decide where String and LaTeX need parentheses.
const (
	precAdd = iota + 1
	precMul
	precNeg
	precPow
	precAtom
)

func binaryPrecedence(op BinaryOp) int {
	switch op {
	case OpAdd, OpSub:
		return precAdd
	case OpMul, OpDiv:
		return precMul
	}
	return precPow
}

// needsParens reports whether child must be bracketed when it appears on the
// given side of a binary operator. Pow is right-associative; sub and div are
// not associative on the right. A negative right operand is always bracketed.
func needsParens(op BinaryOp, child Expr, right bool) bool {
	p, cp := binaryPrecedence(op), child.precedence()
	if !right {
		if op == OpPow {
			return cp <= precPow
		}
		return cp < p
	}
	switch {
	case cp == precNeg:
		return true
	case cp < p:
		return true
	case cp == p:
		return op == OpSub || op == OpDiv
	}
	return false
}

func (b *Binary) String() string {
	var sb strings.Builder
	writeOperand(&sb, b.left.String(), needsParens(b.op, b.left, false), "(", ")")
	switch b.op {
	case OpAdd, OpSub:
		sb.WriteString(" " + b.op.Symbol() + " ")
	default:
		sb.WriteString(b.op.Symbol())
	}
	writeOperand(&sb, b.right.String(), needsParens(b.op, b.right, true), "(", ")")
	return sb.String()
}

func (b *Binary) LaTeX() string {
	if b.op == OpDiv {
		return `\frac{` + b.left.LaTeX() + `}{` + b.right.LaTeX() + `}`
	}
	var sb strings.Builder
	paren := needsParens(b.op, b.left, false) || (b.op == OpPow && isSuperscript(b.left))
	writeOperand(&sb, b.left.LaTeX(), paren, `\left(`, `\right)`)
	switch b.op {
	case OpAdd, OpSub:
		sb.WriteString(" " + b.op.Symbol() + " ")
	case OpMul:
		sb.WriteString(` \cdot `)
	case OpPow:
		sb.WriteString("^{" + b.right.LaTeX() + "}")
		return sb.String()
	}
	writeOperand(&sb, b.right.LaTeX(), needsParens(b.op, b.right, true), `\left(`, `\right)`)
	return sb.String()
}

// isSuperscript reports whether e renders in LaTeX as a superscript, which
// cannot take a second exponent without brackets.
func isSuperscript(e Expr) bool {
	u, ok := e.(*Unary)
	return ok && u.op == OpExp
}

func writeOperand(sb *strings.Builder, s string, paren bool, lp, rp string) {
	if paren {
		sb.WriteString(lp)
		sb.WriteString(s)
		sb.WriteString(rp)
		return
	}
	sb.WriteString(s)
}

func (u *Unary) String() string {
	if u.op == OpNeg {
		if u.arg.precedence() < precPow {
			return "-(" + u.arg.String() + ")"
		}
		return "-" + u.arg.String()
	}
	return u.op.String() + "(" + u.arg.String() + ")"
}

func (u *Unary) LaTeX() string {
	a := u.arg.LaTeX()
	switch u.op {
	case OpNeg:
		if u.arg.precedence() < precPow {
			return `-\left(` + a + `\right)`
		}
		return "-" + a
	case OpSin, OpCos, OpTan, OpSec, OpCsc, OpCot, OpLn:
		return `\` + u.op.String() + `\left(` + a + `\right)`
	case OpLog10:
		return `\log_{10}\left(` + a + `\right)`
	case OpExp:
		return "e^{" + a + "}"
	case OpSqrt:
		return `\sqrt{` + a + `}`
	case OpAbs:
		return `\left|` + a + `\right|`
	}
	return `\operatorname{` + u.op.String() + `}\left(` + a + `\right)`
}
