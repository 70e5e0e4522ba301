package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Open(databaseURL string) (*sql.DB, error) {
	return sql.Open("pgx", databaseURL)
}

type SolveRepo struct{ DB *sql.DB }

func NewSolveRepo(db *sql.DB) *SolveRepo { return &SolveRepo{DB: db} }

// SolveRow is one completed pipeline run.
type SolveRow struct {
	ID         int64
	CreatedAt  time.Time
	Source     string // "http" | "telegram"
	ChatID     int64  // 0 for http
	ImageHash  string // sha256 hex of the image, empty for text-only evaluate
	Engine     string
	Model      string
	Expression string
	Result     string
}

// EnsureSchema creates the history table when it is missing.
func (r *SolveRepo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists solves (
    id          bigserial primary key,
    created_at  timestamptz not null default now(),
    source      text not null,
    chat_id     bigint not null default 0,
    image_hash  text not null default '',
    engine      text not null,
    model       text not null,
    expression  text not null,
    result      text not null
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *SolveRepo) Insert(ctx context.Context, row SolveRow) error {
	const q = `
insert into solves (source, chat_id, image_hash, engine, model, expression, result)
values ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, q,
		row.Source, row.ChatID, row.ImageHash, row.Engine, row.Model, row.Expression, row.Result)
	return err
}

// Recent returns the latest solves, newest first.
func (r *SolveRepo) Recent(ctx context.Context, limit int) ([]SolveRow, error) {
	const q = `
select id, created_at, source, chat_id, image_hash, engine, model, expression, result
from solves
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SolveRow
	for rows.Next() {
		var s SolveRow
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Source, &s.ChatID, &s.ImageHash,
			&s.Engine, &s.Model, &s.Expression, &s.Result); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
