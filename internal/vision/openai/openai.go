package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"snapcalc/internal/util"
	"snapcalc/internal/vision"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Transcribe(ctx context.Context, image []byte, mime string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}
	if mime == "" {
		mime = util.SniffMimeHTTP(image)
	}
	b64 := base64.StdEncoding.EncodeToString(image)
	dataURL := util.MakeDataURL(mime, b64)

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": vision.TranscribePrompt},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "Transcribe the expression from the image."},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
				},
			},
		},
		"temperature": 0,
	}
	return e.chat(ctx, "transcribe", body)
}

func (e *Engine) Compute(ctx context.Context, expr string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}
	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": vision.ComputePrompt},
			map[string]any{"role": "user", "content": expr},
		},
		"temperature": 0,
	}
	return e.chat(ctx, "compute", body)
}

func (e *Engine) chat(ctx context.Context, op string, body map[string]any) (string, error) {
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai %s %d: %s", op, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai %s: empty response", op)
	}
	return util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content)), nil
}
