package commands

import (
	"github.com/spf13/cobra"

	"snapcalc/internal/config"
	"snapcalc/internal/pipeline"
	"snapcalc/internal/vision"
	"snapcalc/internal/vision/gemini"
	"snapcalc/internal/vision/openai"
)

func Execute() error {
	root := &cobra.Command{
		Use:           "snapcalc",
		Short:         "Photo-to-result arithmetic: OCR an expression with an LLM, then evaluate it",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), botCmd(), evalCmd())
	return root.Execute()
}

func buildEngines(cfg *config.Config) *vision.Engines {
	return &vision.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	}
}

func buildSolver(cfg *config.Config) *pipeline.Solver {
	return &pipeline.Solver{RemoteEval: cfg.EvalMode == "remote"}
}
