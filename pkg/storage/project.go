package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Project is a persisted snapshot of an editing session's project. The full
// document is stored as JSON; the flat columns exist for listing and
// filtering without unmarshaling.
type Project struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name     string  `gorm:"not null;default:''"`
	BPM      float64 `gorm:"not null;default:0"`
	Tracks   int     `gorm:"not null;default:0"`
	Document string  `gorm:"not null;default:''"`
}

func (s *Store) GetProject(ctx context.Context, id string) (*Project, error) {
	var v Project
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get Project %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetProject(ctx context.Context, v *Project) error {
	if err := s.db.Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set Project %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.db.Delete(&Project{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete Project %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Project, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size
	vs := []*Project{}

	q := s.db.Offset(offset).Limit(size)
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list Projects: %w", err)
	}
	return vs, nil
}
