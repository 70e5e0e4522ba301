package commands

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"snapcalc/internal/config"
	"snapcalc/internal/handle"
	"snapcalc/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				log.Fatalf("config: %v", err)
			}

			repo, err := openRepo(cfg)
			if err != nil {
				log.Fatalf("store: %v", err)
			}

			engines := buildEngines(cfg)
			h := handle.New(engines, buildSolver(cfg), repo)

			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			mux.HandleFunc("/v1/extract", h.Extract)
			mux.HandleFunc("/v1/evaluate", h.Evaluate)
			mux.HandleFunc("/v1/solve", h.Solve)

			addr := ":" + cfg.Port
			log.Printf("snapcalc listening on %s (eval=%s, default engine=%s)", addr, cfg.EvalMode, cfg.DefaultEngine)
			return http.ListenAndServe(addr, mux)
		},
	}
}

func openRepo(cfg *config.Config) (*store.SolveRepo, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repo := store.NewSolveRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
