package handle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"snapcalc/internal/pipeline"
	"snapcalc/internal/store"
	"snapcalc/internal/vision"
)

type Handle struct {
	engs   *vision.Engines
	solver *pipeline.Solver
	repo   *store.SolveRepo // nil when history is disabled
}

func New(engs *vision.Engines, solver *pipeline.Solver, repo *store.SolveRepo) *Handle {
	return &Handle{
		engs:   engs,
		solver: solver,
		repo:   repo,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestTimeout honors X-Request-Timeout (seconds) or ?timeoutSec, default 180s.
func requestTimeout(r *http.Request) time.Duration {
	deadline := 180 * time.Second
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return deadline
}

func sha256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// shouldRecord keeps only fully successful solves in the history; the
// Telegram path applies the same policy.
func shouldRecord(expr, result string) bool {
	return !pipeline.IsTagged(expr) && !pipeline.IsTagged(result)
}

// record persists a finished solve; failures are operator-visible only.
func (h *Handle) record(ctx context.Context, eng vision.Engine, imageHash, expr, result string) {
	if h.repo == nil || !shouldRecord(expr, result) {
		return
	}
	err := h.repo.Insert(ctx, store.SolveRow{
		Source:     "http",
		ImageHash:  imageHash,
		Engine:     eng.Name(),
		Model:      eng.GetModel(),
		Expression: expr,
		Result:     result,
	})
	if err != nil {
		log.Printf("store: insert solve failed: %v", err)
	}
}
