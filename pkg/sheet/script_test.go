package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRunScript(t *testing.T) {
	s := loadBudget(t)

	script := `
# change inputs
set a 10
get total
set b -1
get total
get half
`
	var out bytes.Buffer
	if err := RunScript(s, strings.NewReader(script), &out); err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}

	want := "total = 13\ntotal = 9\nhalf = 4.5\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestRunScriptPrint(t *testing.T) {
	s := loadBudget(t)

	var out bytes.Buffer
	if err := RunScript(s, strings.NewReader("print\n"), &out); err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}

	want := "a = 2\nb = 3\nhalf = 2.5\ntotal = 5\ndiff = -1\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		script string
		want   error
		line   string
	}{
		{"set a", ErrScript, "line 1"},
		{"\nset a x", ErrScript, "line 2"},
		{"jump", ErrScript, "line 1"},
		{"get", ErrScript, "line 1"},
		{"print all", ErrScript, "line 1"},
		{"set total 1", ErrReadOnly, "line 1"},
		{"get nope", ErrUnknownName, "line 1"},
	}

	for _, tt := range tests {
		s := loadBudget(t)
		err := RunScript(s, strings.NewReader(tt.script), &bytes.Buffer{})
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.script, tt.want, err)
			continue
		}
		if !strings.HasPrefix(err.Error(), tt.line) {
			t.Errorf("%q: expected %s prefix, got %q", tt.script, tt.line, err)
		}
	}
}

func TestParseAssignment(t *testing.T) {
	name, v, err := ParseAssignment("a=4.5")
	if err != nil || name != "a" || v != 4.5 {
		t.Errorf("expected a=4.5, got %q=%v (%v)", name, v, err)
	}

	for _, bad := range []string{"a", "=1", "a=x", "a=NaN", "a=-Inf"} {
		if _, _, err := ParseAssignment(bad); !errors.Is(err, ErrScript) {
			t.Errorf("%q: expected ErrScript, got %v", bad, err)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		3000000: "3000000",
		0.5:     "0.5",
		-1:      "-1",
	}
	for v, want := range tests {
		if got := FormatValue(v); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", v, got, want)
		}
	}
}
