package pipeline

import (
	"context"
	"errors"
	"testing"
)

// fakeEngine scripts the model's replies.
type fakeEngine struct {
	transcript    string
	transcribeErr error
	computed      string
	computeErr    error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }

func (f *fakeEngine) Transcribe(ctx context.Context, image []byte, mime string) (string, error) {
	return f.transcript, f.transcribeErr
}

func (f *fakeEngine) Compute(ctx context.Context, expr string) (string, error) {
	return f.computed, f.computeErr
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		err        error
		want       string
	}{
		{"plain", "34+54+67+87", nil, "34+54+67+87"},
		{"label prefix", "Expression: 2+3*4", nil, "2+3*4"},
		{"answer prefix", "ANSWER = 5-1", nil, "5-1"},
		{"stray equals sign", "12*3 =", nil, "12*3"},
		{"stray letters", "7a+b2", nil, "7+2"},
		{"whitespace collapsed", "  1 +\n 2  ", nil, "1 + 2"},
		{"model error passthrough", "ERROR: No expression found", nil, "ERROR: No expression found"},
		{"no digits", "hello there", nil, "ERROR: Could not recognize a valid expression in the image."},
		{"digits without operator", "12345", nil, "ERROR: Could not recognize a valid expression in the image."},
		{"empty transcript", "", nil, "ERROR: Could not recognize a valid expression in the image."},
		{"transport failure", "", errors.New("dial tcp: timeout"), "ERROR: Failed to communicate with the AI model for extraction."},
	}

	s := &Solver{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &fakeEngine{transcript: tt.transcript, transcribeErr: tt.err}
			got := s.Extract(context.Background(), eng, []byte{0xFF, 0xD8}, "image/jpeg")
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"34+54+67+87",
		"Expression: 2+3*4 = 14",
		"abc12*3def",
		"(1 + 2) * 3",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}

func TestEvaluateLocal(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"34+54+67+87", "242"},
		{"10/4", "2.5"},
		{"-3+4", "1"},
		{"1 + 2", "3"},
		{"1 2+3", "ERROR: Invalid or unrecognized mathematical expression."},
		{"3 4", "ERROR: Invalid or unrecognized mathematical expression."},
		{"3++4", "ERROR: Invalid operator sequence."},
		{"5*/2", "ERROR: Invalid operator sequence."},
		{"3+ +4", "ERROR: Invalid operator sequence."},
		{"3+-4", "ERROR: Invalid operator sequence."},
		{"2x+1", "ERROR: Expression contains invalid characters."},
		{"1+2; rm -rf", "ERROR: Expression contains invalid characters."},
		{"5/0", "ERROR: Calculation resulted in an invalid number."},
		{"3+", "ERROR: Invalid or unrecognized mathematical expression."},
		{"(2+3", "ERROR: Invalid or unrecognized mathematical expression."},
		{"", "ERROR: Invalid or unrecognized mathematical expression."},
	}

	s := &Solver{}
	for _, tt := range tests {
		got := s.Evaluate(context.Background(), nil, tt.expr)
		if got != tt.want {
			t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

// Every charset-accepted string either yields a finite number or a tagged
// error; the boundary never produces anything else.
func TestEvaluateLocalTotal(t *testing.T) {
	inputs := []string{
		"1+1", "((((", "))))", ".", "...", "+", "-", "1/3", "9*9*9",
		"0.0/1", "  ", "()", "1..2+3",
	}
	s := &Solver{}
	for _, in := range inputs {
		got := s.Evaluate(context.Background(), nil, in)
		if got == "" {
			t.Errorf("Evaluate(%q) returned empty string", in)
		}
	}
}

func TestEvaluateRemote(t *testing.T) {
	tests := []struct {
		name     string
		computed string
		err      error
		want     string
	}{
		{"integer", "242", nil, "242"},
		{"verbatim decimal", "242.0", nil, "242.0"},
		{"model error passthrough", "ERROR: Invalid expression", nil, "ERROR: Invalid expression"},
		{"prose reply", "The answer is 242", nil, "ERROR: AI returned an invalid numerical format."},
		{"non-finite", "Infinity", nil, "ERROR: AI returned an invalid numerical format."},
		{"transport failure", "", errors.New("quota exceeded"), "ERROR: Failed to communicate with the AI model for evaluation."},
	}

	s := &Solver{RemoteEval: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &fakeEngine{computed: tt.computed, computeErr: tt.err}
			got := s.Evaluate(context.Background(), eng, "34+54+67+87")
			if got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveEndToEnd(t *testing.T) {
	s := &Solver{}
	eng := &fakeEngine{transcript: "34+54+67+87"}

	expr, res := s.Solve(context.Background(), eng, []byte{0xFF, 0xD8}, "image/jpeg")
	if expr != "34+54+67+87" {
		t.Fatalf("Solve expression = %q, want %q", expr, "34+54+67+87")
	}
	if res != "242" {
		t.Fatalf("Solve result = %q, want %q", res, "242")
	}
}

func TestSolveExtractionFailureSkipsEvaluator(t *testing.T) {
	s := &Solver{}
	eng := &fakeEngine{transcribeErr: errors.New("boom")}

	expr, res := s.Solve(context.Background(), eng, []byte{0xFF, 0xD8}, "image/jpeg")
	if !IsTagged(expr) {
		t.Fatalf("Solve expression = %q, want tagged error", expr)
	}
	if res != "" {
		t.Fatalf("Solve result = %q, want empty", res)
	}
}
