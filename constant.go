package mathex

import (
	"math"
	"strconv"
)

// ============================================================
// Constant: literal float64 leaf
// ============================================================

type Constant struct{ value float64 }

// C returns a Constant holding v. It is the entry point for raw numbers
// into builder calls: Mul(C(10), x).
func C(v float64) *Constant { return &Constant{value: v} }

// NewConstant is the long form of C.
func NewConstant(v float64) *Constant { return C(v) }

func (c *Constant) Value() float64 { return c.value }

func (c *Constant) Eval(Context) (float64, error) { return c.value, nil }
func (c *Constant) Clone() Expr                   { return &Constant{value: c.value} }
func (c *Constant) Diff(string) Expr              { return C(0) }
func (c *Constant) Subs(string, Expr) Expr        { return c.Clone() }
func (c *Constant) Equal(other Expr) bool {
	o, ok := other.(*Constant)
	return ok && c.value == o.value
}
func (c *Constant) exprType() string { return "const" }

func (c *Constant) String() string { return formatFloat(c.value) }

func (c *Constant) LaTeX() string {
	switch {
	case math.IsInf(c.value, 1):
		return `\infty`
	case math.IsInf(c.value, -1):
		return `-\infty`
	case math.IsNaN(c.value):
		return `\mathrm{NaN}`
	}
	return formatFloat(c.value)
}

func (c *Constant) precedence() int {
	if c.value < 0 || math.IsInf(c.value, -1) {
		return precNeg
	}
	return precAtom
}

func (c *Constant) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "value": c.value}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
