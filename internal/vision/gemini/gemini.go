package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"snapcalc/internal/util"
	"snapcalc/internal/vision"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Transcribe(ctx context.Context, image []byte, mime string) (string, error) {
	if mime == "" {
		mime = util.SniffMimeHTTP(image)
	}
	parts := []genai.Part{
		genai.Text("Transcribe the expression from the image."),
		&genai.Blob{MIMEType: mime, Data: image},
	}
	return e.generate(ctx, vision.TranscribePrompt, parts)
}

func (e *Engine) Compute(ctx context.Context, expr string) (string, error) {
	parts := []genai.Part{genai.Text(expr)}
	return e.generate(ctx, vision.ComputePrompt, parts)
}

func (e *Engine) generate(ctx context.Context, system string, parts []genai.Part) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "text/plain",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	// Retry transient failures.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", fmt.Errorf("gemini: empty response")
		}
		return util.StripCodeFences(strings.TrimSpace(txt)), nil
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}
	return ""
}

func ptrFloat32(f float32) *float32 { return &f }
