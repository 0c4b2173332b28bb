package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Mixdown records a rendered stem mix and where its file was stored.
type Mixdown struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TrackID  string  `gorm:"index;not null;default:''"`
	Format   string  `gorm:"not null;default:''"`
	Duration float64 `gorm:"not null;default:0"`
	Location string  `gorm:"not null;default:''"`
}

func (s *Store) GetMixdown(ctx context.Context, id string) (*Mixdown, error) {
	var v Mixdown
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get Mixdown %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetMixdown(ctx context.Context, v *Mixdown) error {
	if err := s.db.Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set Mixdown %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) ListMixdowns(ctx context.Context, trackID string) ([]*Mixdown, error) {
	vs := []*Mixdown{}
	q := s.db.Order("created_at desc")
	if trackID != "" {
		q = q.Where("track_id = ?", trackID)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list Mixdowns: %w", err)
	}
	return vs, nil
}
