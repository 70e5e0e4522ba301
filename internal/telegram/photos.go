package telegram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snapcalc/internal/pipeline"
	"snapcalc/internal/store"
	"snapcalc/internal/util"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1] // largest size last
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.SendError(cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	img, err := download(url)
	if err != nil {
		r.SendError(cid, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	eng := r.EngManager.Get(cid)
	expr, res := r.Solver.Solve(ctx, eng, img, util.SniffMimeHTTP(img))
	if pipeline.IsTagged(expr) {
		r.send(cid, expr)
		return
	}
	if pipeline.IsTagged(res) {
		r.send(cid, "Expression: "+expr+"\n"+res)
		return
	}
	r.send(cid, "Expression: "+expr+"\nResult: "+res)

	if r.SolveRepo != nil {
		h := sha256.Sum256(img)
		err := r.SolveRepo.Insert(ctx, store.SolveRow{
			Source:     "telegram",
			ChatID:     cid,
			ImageHash:  hex.EncodeToString(h[:]),
			Engine:     eng.Name(),
			Model:      eng.GetModel(),
			Expression: expr,
			Result:     res,
		})
		if err != nil {
			log.Printf("store: insert solve failed: %v", err)
		}
	}
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}
