package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"snapcalc/internal/util"
)

type SolveRequest struct {
	LLMName  string `json:"llm_name"`
	ImageB64 string `json:"image_b64"`
	MimeType string `json:"mime_type"`
}

type SolveResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Solve runs extraction and evaluation back to back. When extraction fails,
// the tagged message occupies the expression field and result stays empty.
func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	img, mimeHint, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil || len(img) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad image_b64"})
		return
	}
	mime := util.PickMIME(req.MimeType, mimeHint, img)

	engine, err := h.engs.GetEngine(req.LLMName)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "solve error: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r))
	defer cancel()

	expr, res := h.solver.Solve(ctx, engine, img, mime)
	h.record(ctx, engine, sha256Hex(img), expr, res)

	writeJSON(w, http.StatusOK, SolveResponse{Expression: expr, Result: res})
}
