package vision

import (
	"context"
	"errors"
	"sync"
)

// Engine is one multimodal LLM provider. Transcribe reads the arithmetic
// expression off an image; Compute asks the model to do the arithmetic
// (used only when remote evaluation is configured).
type Engine interface {
	Name() string
	GetModel() string
	Transcribe(ctx context.Context, image []byte, mime string) (string, error)
	Compute(ctx context.Context, expr string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	switch llmName {
	case "", "gemini":
		return e.Gemini, nil
	case "gpt", "openai":
		return e.OpenAI, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gemini' or 'gpt'")
	}
}

// Manager keeps a per-chat engine choice with a shared default.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
