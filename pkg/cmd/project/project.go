package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/stemdaw/stemdaw/pkg/daw"
	"github.com/stemdaw/stemdaw/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	Name string
	ID   string
}

// Create builds a fresh project with its master track and persists it.
func Create(ctx context.Context, cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("project: name is required")
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	session := daw.New()
	p := session.CreateProject(cfg.Name)
	if err := save(ctx, store, p); err != nil {
		return err
	}
	log.Printf("project: created %q (%s)\n", p.Name, p.ID)
	return nil
}

// List prints the persisted projects.
func List(ctx context.Context, cfg *Config) error {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	ps, err := store.ListProjects(ctx, 1, 100, "updated_at desc")
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	for _, p := range ps {
		fmt.Printf("%s\t%s\t%.0f bpm\t%d tracks\t%s\n", p.ID, p.Name, p.BPM, p.Tracks, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Show prints one project's full document as JSON.
func Show(ctx context.Context, cfg *Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("project: id is required")
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	p, err := store.GetProject(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	fmt.Println(p.Document)
	return nil
}

// Delete removes a project.
func Delete(ctx context.Context, cfg *Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("project: id is required")
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	if err := store.DeleteProject(ctx, cfg.ID); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	log.Printf("project: deleted %s\n", cfg.ID)
	return nil
}

func newStore(ctx context.Context, cfg *Config) (*storage.Store, error) {
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("project: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return nil, fmt.Errorf("project: couldn't start orm store: %w", err)
	}
	return store, nil
}

func save(ctx context.Context, store *storage.Store, p *daw.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("project: couldn't marshal document: %w", err)
	}
	if err := store.SetProject(ctx, &storage.Project{
		ID:       p.ID,
		Name:     p.Name,
		BPM:      p.BPM,
		Tracks:   len(p.Tracks),
		Document: string(doc),
	}); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	return nil
}
