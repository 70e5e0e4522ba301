package telegram

import (
	"testing"
	"time"

	"snapcalc/internal/store"
)

func TestFormatHistory(t *testing.T) {
	if got := formatHistory(nil); got != "No solves yet." {
		t.Fatalf("empty history = %q, want %q", got, "No solves yet.")
	}

	ts := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	rows := []store.SolveRow{
		{CreatedAt: ts, Expression: "34+54+67+87", Result: "242", Engine: "gemini"},
		{CreatedAt: ts.Add(-time.Hour), Expression: "(2+3)*4", Result: "20", Engine: "gpt"},
	}
	want := "Recent solves:\n" +
		"2026-08-29 10:30  34+54+67+87 = 242  (gemini)\n" +
		"2026-08-29 09:30  (2+3)*4 = 20  (gpt)"
	if got := formatHistory(rows); got != want {
		t.Fatalf("formatHistory = %q, want %q", got, want)
	}
}
