package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Stem is a separated component of a track, registered from an external
// separation job.
type Stem struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TrackID        string `gorm:"index;not null;default:''"`
	StemType       string `gorm:"not null;default:''"`
	AudioURL       string `gorm:"not null;default:''"`
	SeparationMode string `gorm:"not null;default:''"`
}

func (s *Store) GetStem(ctx context.Context, id string) (*Stem, error) {
	var v Stem
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get Stem %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetStem(ctx context.Context, v *Stem) error {
	if err := s.db.Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set Stem %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) DeleteStem(ctx context.Context, id string) error {
	if err := s.db.Delete(&Stem{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete Stem %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListStems(ctx context.Context, trackID string) ([]*Stem, error) {
	vs := []*Stem{}
	q := s.db.Order("stem_type asc")
	if trackID != "" {
		q = q.Where("track_id = ?", trackID)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list Stems: %w", err)
	}
	return vs, nil
}
