package commands

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"snapcalc/internal/config"
	"snapcalc/internal/telegram"
	"snapcalc/internal/vision"
)

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot (long polling)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				log.Fatalf("config: %v", err)
			}
			if cfg.TelegramToken == "" {
				log.Fatal("TELEGRAM_BOT_TOKEN is required for the bot")
			}

			repo, err := openRepo(cfg)
			if err != nil {
				log.Fatalf("store: %v", err)
			}

			bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
			if err != nil {
				return err
			}
			bot.Debug = false

			engines := buildEngines(cfg)
			def, err := engines.GetEngine(cfg.DefaultEngine)
			if err != nil {
				log.Fatalf("config: %v", err)
			}

			r := &telegram.Router{
				Bot:        bot,
				EngManager: vision.NewManager(def),
				Solver:     buildSolver(cfg),
				SolveRepo:  repo,

				GeminiAPIKey: cfg.GeminiAPIKey,
				GeminiModel:  cfg.GeminiModel,
				OpenAIAPIKey: cfg.OpenAIAPIKey,
				OpenAIModel:  cfg.OpenAIModel,
			}

			u := tgbotapi.NewUpdate(0)
			u.Timeout = 30
			updates := bot.GetUpdatesChan(u)

			log.Printf("bot @%s started (default engine=%s)", bot.Self.UserName, def.Name())
			for upd := range updates {
				go r.HandleUpdate(upd)
			}
			return nil
		},
	}
}
