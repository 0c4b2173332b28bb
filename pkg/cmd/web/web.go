package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stemdaw/stemdaw/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	Addr        string
	Credentials map[string]string
}

// Serve starts a read-only API over the persisted projects, stems and
// mixdowns.
func Serve(ctx context.Context, cfg *Config) error {
	log.Println("web: server started")
	defer log.Println("web: server ended")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("web: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("web: couldn't start orm store: %w", err)
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.Timeout(60 * time.Second))
	if len(cfg.Credentials) > 0 {
		mux.Use(middleware.BasicAuth("private", cfg.Credentials))
	}
	if cfg.Debug {
		mux.Use(middleware.Logger)
	}

	mux.Get("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		ps, err := store.ListProjects(r.Context(), 1, 100, "updated_at desc")
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, ps)
	})
	mux.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, err := store.GetProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(p.Document))
	})
	mux.Get("/api/tracks/{id}/stems", func(w http.ResponseWriter, r *http.Request) {
		vs, err := store.ListStems(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, vs)
	})
	mux.Get("/api/tracks/{id}/mixdowns", func(w http.ResponseWriter, r *http.Request) {
		vs, err := store.ListMixdowns(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, vs)
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("web: couldn't shutdown server: %v\n", err)
		}
	}()
	log.Printf("web: listening on %s\n", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web: server error: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: couldn't encode response: %v\n", err)
	}
}

func httpError(w http.ResponseWriter, err error) {
	if err == storage.ErrNotFound {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
