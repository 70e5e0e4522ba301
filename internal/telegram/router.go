package telegram

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snapcalc/internal/store"
	"snapcalc/internal/vision"
	"snapcalc/internal/vision/gemini"
	"snapcalc/internal/vision/openai"
)

type Router struct {
	Bot        *tgbotapi.BotAPI
	EngManager *vision.Manager
	Solver     Solver
	SolveRepo  *store.SolveRepo // nil when history is disabled

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// Solver is the pipeline surface the bot needs.
type Solver interface {
	Solve(ctx context.Context, eng vision.Engine, image []byte, mime string) (string, string)
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	r.send(upd.Message.Chat.ID, "Send a photo of an arithmetic expression and I will compute it. Commands: /engine, /health, /history")
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send a photo of an arithmetic expression — I will read it and compute the result.\nCommands: /health, /engine, /history")
	case "health":
		r.send(cid, "OK, engine: "+r.EngManager.Get(cid).Name())
	case "engine":
		r.switchEngine(cid, upd.Message.Text)
	case "history":
		r.showHistory(cid)
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) switchEngine(cid int64, text string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(text, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(cid)
		r.send(cid, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")\nUsage:\n/engine gemini [model]\n/engine gpt [model]")
		return
	}
	name := strings.ToLower(args[0])
	var mdl string
	if len(args) > 1 {
		mdl = args[1]
	}
	switch name {
	case "gemini":
		if mdl == "" {
			mdl = r.GeminiModel
		}
		r.EngManager.Set(cid, gemini.New(r.GeminiAPIKey, mdl))
		r.send(cid, "Switched to gemini ("+mdl+")")
	case "gpt", "openai":
		if mdl == "" {
			mdl = r.OpenAIModel
		}
		r.EngManager.Set(cid, openai.New(r.OpenAIAPIKey, mdl))
		r.send(cid, "Switched to gpt ("+mdl+")")
	default:
		r.send(cid, "Unknown engine. Available: gemini | gpt")
	}
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("telegram: send failed: %v", err)
	}
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, "Something went wrong: "+err.Error())
}
