package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapcalc/internal/pipeline"
	"snapcalc/internal/vision"
)

type fakeEngine struct {
	transcript    string
	transcribeErr error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }

func (f *fakeEngine) Transcribe(ctx context.Context, image []byte, mime string) (string, error) {
	return f.transcript, f.transcribeErr
}

func (f *fakeEngine) Compute(ctx context.Context, expr string) (string, error) {
	return "", nil
}

func newTestHandle(transcript string) *Handle {
	eng := &fakeEngine{transcript: transcript}
	engs := &vision.Engines{Gemini: eng, OpenAI: eng}
	return New(engs, &pipeline.Solver{}, nil)
}

func postJSON(t *testing.T, fn http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func imageB64() string {
	return base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0})
}

func TestSolveHandler(t *testing.T) {
	h := newTestHandle("34+54+67+87")
	rec := postJSON(t, h.Solve, SolveRequest{ImageB64: imageB64()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Expression != "34+54+67+87" || resp.Result != "242" {
		t.Fatalf("got %+v, want expression 34+54+67+87 result 242", resp)
	}
}

func TestSolveHandlerTaggedError(t *testing.T) {
	h := newTestHandle("just some handwriting")
	rec := postJSON(t, h.Solve, SolveRequest{ImageB64: imageB64()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (tagged errors ride in the payload)", rec.Code)
	}
	var resp SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !pipeline.IsTagged(resp.Expression) {
		t.Fatalf("expression = %q, want tagged error", resp.Expression)
	}
	if resp.Result != "" {
		t.Fatalf("result = %q, want empty", resp.Result)
	}
}

func TestExtractHandlerDataURL(t *testing.T) {
	h := newTestHandle("2+3*4")
	rec := postJSON(t, h.Extract, ExtractRequest{ImageB64: "data:image/png;base64," + imageB64()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Expression != "2+3*4" {
		t.Fatalf("expression = %q, want 2+3*4", resp.Expression)
	}
}

func TestEvaluateHandler(t *testing.T) {
	h := newTestHandle("")
	rec := postJSON(t, h.Evaluate, EvaluateRequest{Expression: "(2+3)*4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp EvaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != "20" {
		t.Fatalf("result = %q, want 20", resp.Result)
	}
}

func TestShouldRecord(t *testing.T) {
	tests := []struct {
		expr, result string
		want         bool
	}{
		{"34+54+67+87", "242", true},
		{"ERROR: Could not recognize a valid expression in the image.", "", false},
		{"5/0", "ERROR: Calculation resulted in an invalid number.", false},
	}
	for _, tt := range tests {
		if got := shouldRecord(tt.expr, tt.result); got != tt.want {
			t.Errorf("shouldRecord(%q, %q) = %v, want %v", tt.expr, tt.result, got, tt.want)
		}
	}
}

func TestHandlersRejectBadInput(t *testing.T) {
	h := newTestHandle("2+2")

	// GET is not allowed.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Solve(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	// Broken base64.
	rec = postJSON(t, h.Solve, SolveRequest{ImageB64: "!!not-base64!!"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad base64 status = %d, want 400", rec.Code)
	}

	// Unknown engine.
	rec = postJSON(t, h.Solve, SolveRequest{ImageB64: imageB64(), LLMName: "llama"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("unknown engine status = %d, want 502", rec.Code)
	}
}
