package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs against a real database only; set TEST_DATABASE_URL to enable.
func TestSolveRepoRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := NewSolveRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	row := SolveRow{
		Source:     "telegram",
		ChatID:     42,
		ImageHash:  "deadbeef",
		Engine:     "gemini",
		Model:      "gemini-2.5-flash",
		Expression: "34+54+67+87",
		Result:     "242",
	}
	if err := repo.Insert(ctx, row); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.Recent(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 {
		t.Fatal("Recent returned no rows after insert")
	}
	got := rows[0]
	if got.Expression != row.Expression || got.Result != row.Result || got.Engine != row.Engine {
		t.Fatalf("Recent()[0] = %+v, want fields of %+v", got, row)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("Recent()[0].CreatedAt is zero")
	}
}
