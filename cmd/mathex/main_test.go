package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadraticJSON = `{"type":"binary","op":"add",
 "left":{"type":"binary","op":"sub",
  "left":{"type":"binary","op":"pow","left":{"type":"var","name":"x"},"right":{"type":"const","value":2}},
  "right":{"type":"binary","op":"mul","left":{"type":"const","value":10},"right":{"type":"var","name":"x"}}},
 "right":{"type":"const","value":16}}`

// run executes the CLI with stdin as the JSON input and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(strings.NewReader(stdin))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCmd(t *testing.T) {
	for _, tt := range []struct{ at, want string }{{"2", "0"}, {"8", "0"}, {"0", "16"}, {"3", "-5"}} {
		out, err := run(t, quadraticJSON, "eval", "x="+tt.at)
		if err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("f(%s): want %s, got %q", tt.at, tt.want, out)
		}
	}
}

func TestEvalCmd_UndefinedVariable(t *testing.T) {
	_, err := run(t, quadraticJSON, "eval", "y=1")
	if err == nil || !strings.Contains(err.Error(), `undefined variable "x"`) {
		t.Errorf("want undefined variable error, got %v", err)
	}
}

func TestDiffCmd(t *testing.T) {
	out, err := run(t, quadraticJSON, "diff", "x=3")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[1] != "value: -4" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDiffCmd_Check(t *testing.T) {
	chain := `{"type":"unary","op":"ln","arg":{"type":"binary","op":"add",
	 "left":{"type":"unary","op":"abs","arg":{"type":"binary","op":"pow","left":{"type":"var","name":"x"},"right":{"type":"const","value":3}}},
	 "right":{"type":"const","value":10}}}`
	for _, order := range []string{"1", "2"} {
		out, err := run(t, chain, "diff", "--check", "--order", order, "x=1.5")
		if err != nil {
			t.Fatalf("order %s: %v\n%s", order, err, out)
		}
		if !strings.Contains(out, "dual: ") {
			t.Errorf("order %s: missing dual line in %q", order, out)
		}
		if order == "1" && !strings.Contains(out, "numeric: ") {
			t.Errorf("missing numeric line in %q", out)
		}
	}
}

func TestDiffCmd_CheckAbsAtZero(t *testing.T) {
	abs := `{"type":"unary","op":"abs","arg":{"type":"var","name":"x"}}`
	out, err := run(t, abs, "diff", "--check", "x=0")
	if err != nil {
		t.Fatalf("undefined derivative should agree across methods: %v\n%s", err, out)
	}
	if !strings.Contains(out, "value: NaN") || !strings.Contains(out, "dual: NaN") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDiffCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"check without point", []string{"diff", "--check"}, "needs a point"},
		{"negative order", []string{"diff", "--order=-1"}, "--order must be >= 0"},
		{"check order 3", []string{"diff", "--check", "--order", "3", "x=1"}, "order 1 or 2"},
		{"bad assignment", []string{"diff", "x"}, "want name=value"},
		{"bad value", []string{"eval", "x=abc"}, "invalid value for x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, quadraticJSON, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSymbolsCmd_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.yaml")
	doc := `
type: binary
op: mul
left: {type: var, name: y}
right:
  type: unary
  op: sin
  arg: {type: var, name: a}
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "symbols", "-f", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "a\ny\n" {
		t.Errorf("want a and y, got %q", out)
	}
}

func TestLoadExpr_MissingFile(t *testing.T) {
	_, err := run(t, "", "eval", "-f", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "nope.json") {
		t.Errorf("want read error naming the file, got %v", err)
	}
}

func TestParseAssignments(t *testing.T) {
	ctx, err := parseAssignments([]string{"x=1.5", " y = -2 ", "z=1e3"})
	if err != nil {
		t.Fatal(err)
	}
	if ctx["x"] != 1.5 || ctx["y"] != -2 || ctx["z"] != 1000 || len(ctx) != 3 {
		t.Errorf("unexpected context %v", ctx)
	}
	for _, bad := range []string{"=1", "x", "x=", "x=1=2"} {
		if _, err := parseAssignments([]string{bad}); err == nil {
			t.Errorf("%q should be rejected", bad)
		}
	}
}
