package mathex

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ============================================================
// JSON / YAML Serialization
// ============================================================

// ToJSON encodes e as nested {"type": ...} objects. Trees holding NaN or
// infinite constants cannot be encoded.
func ToJSON(e Expr) (string, error) {
	mustExpr(e, "expression")
	b, err := json.Marshal(e.toJSON())
	if err != nil {
		return "", errors.Wrap(err, "mathex: encode expression")
	}
	return string(b), nil
}

// TreeOf returns the generic map form of e, the same shape ToJSON encodes.
func TreeOf(e Expr) map[string]interface{} {
	mustExpr(e, "expression")
	return e.toJSON()
}

// DecodeJSON parses a whole JSON document into an expression.
func DecodeJSON(data []byte) (Expr, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "mathex: decode JSON")
	}
	return FromJSON(raw)
}

// DecodeYAML parses a YAML document using the same tree shape as JSON.
func DecodeYAML(data []byte) (Expr, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "mathex: decode YAML")
	}
	m, ok := normalizeYAML(raw).(map[string]interface{})
	if !ok {
		return nil, errors.New("mathex: decode YAML: expression must be a mapping")
	}
	return FromJSON(m)
}

// normalizeYAML turns yaml.v2's map[interface{}]interface{} into the
// map[string]interface{} shape encoding/json produces.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	}
	return v
}

// FromJSON builds an expression from its decoded object form.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, errors.New("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}

	subExpr := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, errors.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", typ, field)
		}
		return e, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", errors.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", errors.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "const":
		v, ok := data["value"]
		if !ok {
			return nil, errors.New("const: missing 'value'")
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, errors.Errorf("const: 'value' must be a number, got %T", v)
		}
		return C(f), nil

	case "var":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return V(name), nil

	case "unary":
		name, err := subString("op")
		if err != nil {
			return nil, err
		}
		op, ok := ParseUnaryOp(name)
		if !ok {
			return nil, errors.Errorf("unary: unknown op %q", name)
		}
		arg, err := subExpr("arg")
		if err != nil {
			return nil, err
		}
		return NewUnary(op, arg), nil

	case "binary":
		name, err := subString("op")
		if err != nil {
			return nil, err
		}
		op, ok := ParseBinaryOp(name)
		if !ok {
			return nil, errors.Errorf("binary: unknown op %q", name)
		}
		left, err := subExpr("left")
		if err != nil {
			return nil, err
		}
		right, err := subExpr("right")
		if err != nil {
			return nil, err
		}
		return NewBinary(op, left, right), nil
	}
	return nil, errors.Errorf("unknown expression type: %s", typ)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
