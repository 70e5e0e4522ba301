package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	DefaultEngine string // "gemini" | "gpt"
	EvalMode      string // "local" | "remote"

	DatabaseURL   string // optional, enables solve history
	TelegramToken string // bot command only
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DefaultEngine: getEnv("DEFAULT_ENGINE", "gemini"),
		EvalMode:      getEnv("EVAL_MODE", "local"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}

// Validate checks the pieces every command needs up front, so a missing key
// fails at startup instead of on the first request.
func (c *Config) Validate() error {
	switch c.DefaultEngine {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when DEFAULT_ENGINE=gemini")
		}
	case "gpt", "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when DEFAULT_ENGINE=%s", c.DefaultEngine)
		}
	default:
		return fmt.Errorf("unknown DEFAULT_ENGINE %q; use 'gemini' or 'gpt'", c.DefaultEngine)
	}
	switch c.EvalMode {
	case "local", "remote":
	default:
		return fmt.Errorf("unknown EVAL_MODE %q; use 'local' or 'remote'", c.EvalMode)
	}
	return nil
}
