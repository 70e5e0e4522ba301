package handle

import (
	"context"
	"encoding/json"
	"net/http"
)

type EvaluateRequest struct {
	LLMName    string `json:"llm_name"`
	Expression string `json:"expression"`
}

type EvaluateResponse struct {
	Result string `json:"result"`
}

func (h *Handle) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	engine, err := h.engs.GetEngine(req.LLMName)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "evaluate error: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r))
	defer cancel()

	res := h.solver.Evaluate(ctx, engine, req.Expression)
	writeJSON(w, http.StatusOK, EvaluateResponse{Result: res})
}
