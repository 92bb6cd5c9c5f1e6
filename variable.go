package mathex

import "github.com/pkg/errors"

// ============================================================
// Variable: named leaf resolved at evaluation time
// ============================================================

type Variable struct{ name string }

// V returns the variable called name. An empty name panics.
func V(name string) *Variable {
	if name == "" {
		panic("mathex: empty variable name")
	}
	return &Variable{name: name}
}

// NewVariable is the long form of V.
func NewVariable(name string) *Variable { return V(name) }

func (v *Variable) Name() string { return v.name }

func (v *Variable) Eval(ctx Context) (float64, error) {
	val, ok := ctx[v.name]
	if !ok {
		return 0, errors.WithStack(&UndefinedVariableError{Name: v.name})
	}
	return val, nil
}

func (v *Variable) Clone() Expr { return &Variable{name: v.name} }

func (v *Variable) Diff(varName string) Expr {
	if v.name == varName {
		return C(1)
	}
	return C(0)
}

func (v *Variable) Subs(varName string, value Expr) Expr {
	if v.name == varName {
		mustExpr(value, "substitution value")
		return value.Clone()
	}
	return v.Clone()
}

func (v *Variable) Equal(other Expr) bool {
	o, ok := other.(*Variable)
	return ok && v.name == o.name
}

func (v *Variable) String() string   { return v.name }
func (v *Variable) LaTeX() string    { return v.name }
func (v *Variable) exprType() string { return "var" }
func (v *Variable) precedence() int  { return precAtom }
func (v *Variable) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "var", "name": v.name}
}
