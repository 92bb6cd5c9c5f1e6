package mathex

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MaxToolDiffOrder caps the order accepted by diffn. Derivative trees grow
// geometrically with the order.
const MaxToolDiffOrder = 6

// DerivativeAt is the result of the derivative_at tool.
type DerivativeAt struct {
	Value    float64 `json:"value"`
	Symbolic float64 `json:"symbolic"`
	Dual     float64 `json:"dual"`
}

// HandleToolCall executes one tool request. Failures are reported in the
// response's Error field, never as a panic for bad input.
func HandleToolCall(req ToolRequest) (resp ToolResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = ToolResponse{Error: fmt.Sprint(rec)}
		}
	}()

	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, errors.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("invalid type for param %s", key)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, errors.Wrapf(err, "param %s", key)
		}
		return e, nil
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", errors.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", errors.Errorf("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getContext := func(key string) (Context, error) {
		v, ok := req.Params[key]
		if !ok {
			return Context{}, nil
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("param %s must be an object of numbers", key)
		}
		ctx := make(Context, len(raw))
		for name, val := range raw {
			f, ok := toFloat(val)
			if !ok {
				return nil, errors.Errorf("param %s.%s must be a number", key, name)
			}
			ctx[name] = f
		}
		return ctx, nil
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: e.LaTeX(), String: e.String()}
	}
	respondNumber := func(v float64) ToolResponse {
		if !isFinite(v) {
			return ToolResponse{String: formatFloat(v)}
		}
		return ToolResponse{Result: v, String: formatFloat(v)}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "eval":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		ctx, err := getContext("vars")
		if err != nil {
			return fail(err)
		}
		v, err := e.Eval(ctx)
		if err != nil {
			return fail(err)
		}
		return respondNumber(v)

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Diff(e, v))

	case "diffn":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		nAny, ok := req.Params["n"]
		if !ok {
			return ToolResponse{Error: "missing param: n"}
		}
		nF, ok := toFloat(nAny)
		if !ok {
			return ToolResponse{Error: "param n must be a number"}
		}
		if nF != math.Trunc(nF) {
			return ToolResponse{Error: "param n must be an integer"}
		}
		if nF < 0 || nF > MaxToolDiffOrder {
			return ToolResponse{Error: fmt.Sprintf("param n must be between 0 and %d", MaxToolDiffOrder)}
		}
		return respond(DiffN(e, v, int(nF)))

	case "derivative_at":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		ctx, err := getContext("vars")
		if err != nil {
			return fail(err)
		}
		d := Diff(e, v)
		sym, err := d.Eval(ctx)
		if err != nil {
			return fail(err)
		}
		ad, err := EvalDual(e, ctx, v)
		if err != nil {
			return fail(err)
		}
		res := DerivativeAt{Value: ad.Real, Symbolic: sym, Dual: ad.Emag}
		if !isFinite(res.Value) || !isFinite(res.Symbolic) || !isFinite(res.Dual) {
			return ToolResponse{String: d.String(), LaTeX: d.LaTeX(),
				Error: "derivative is not finite at the given point"}
		}
		return ToolResponse{Result: res, String: d.String(), LaTeX: d.LaTeX()}

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Subs(e, v, val))

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		syms := FreeSymbols(e)
		return ToolResponse{Result: syms, String: strings.Join(syms, ", ")}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: e.LaTeX(), LaTeX: e.LaTeX(), String: e.String()}

	case "mcp_spec":
		var spec interface{}
		if err := json.Unmarshal([]byte(MCPToolSpec()), &spec); err != nil {
			return fail(err)
		}
		return ToolResponse{Result: spec}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %q", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("eval", "Evaluate an expression. vars maps variable names to numbers", []string{"expr"}, map[string]string{"expr": "object", "vars": "object"}),
		ts("diff", "First derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("diffn", fmt.Sprintf("nth derivative. Requires n (int, 0 to %d)", MaxToolDiffOrder), []string{"expr", "var", "n"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("derivative_at", "Value and derivative at a point, symbolic and by dual numbers", []string{"expr", "var", "vars"}, map[string]string{"expr": "object", "var": "string", "vars": "object"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
