package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"snapcalc/internal/util"
)

type ExtractRequest struct {
	LLMName  string `json:"llm_name"`
	ImageB64 string `json:"image_b64"`
	MimeType string `json:"mime_type"`
}

type ExtractResponse struct {
	Expression string `json:"expression"`
}

func (h *Handle) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req ExtractRequest
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
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "extract error: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r))
	defer cancel()

	expr := h.solver.Extract(ctx, engine, img, mime)
	writeJSON(w, http.StatusOK, ExtractResponse{Expression: expr})
}
