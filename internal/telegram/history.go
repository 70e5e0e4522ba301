package telegram

import (
	"context"
	"strings"
	"time"

	"snapcalc/internal/store"
)

const historyLimit = 10

func (r *Router) showHistory(cid int64) {
	if r.SolveRepo == nil {
		r.send(cid, "History is not enabled on this instance.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := r.SolveRepo.Recent(ctx, historyLimit)
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.send(cid, formatHistory(rows))
}

func formatHistory(rows []store.SolveRow) string {
	if len(rows) == 0 {
		return "No solves yet."
	}
	var b strings.Builder
	b.WriteString("Recent solves:\n")
	for _, s := range rows {
		b.WriteString(s.CreatedAt.Format("2006-01-02 15:04"))
		b.WriteString("  ")
		b.WriteString(s.Expression)
		b.WriteString(" = ")
		b.WriteString(s.Result)
		b.WriteString("  (")
		b.WriteString(s.Engine)
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
