package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"weather-dashboard/internal/models"
)

// ForecastStore is the append-only home of weather observations.
type ForecastStore interface {
	// FindLatest returns the newest observation for the key, or
	// ErrObservationNotFound. Equal timestamps resolve to the later insert.
	FindLatest(ctx context.Context, locationID uint, date string, hour int, step models.Step) (*models.Weather, error)
	Persist(ctx context.Context, w *models.Weather) error
}

type GormForecastStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormForecastStore(db *gorm.DB) *GormForecastStore {
	return &GormForecastStore{db: db, now: time.Now}
}

func (s *GormForecastStore) FindLatest(ctx context.Context, locationID uint, date string, hour int, step models.Step) (*models.Weather, error) {
	var w models.Weather

	err := s.db.WithContext(ctx).
		Where("location_id = ? AND date = ? AND hour = ? AND step = ?", locationID, date, hour, step).
		Order("timestamp DESC").
		Order("id DESC").
		Take(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest observation: %w", err)
	}

	w.Timestamp = w.Timestamp.UTC()
	return &w, nil
}

// Persist inserts w as a new row. Existing rows are never updated.
func (s *GormForecastStore) Persist(ctx context.Context, w *models.Weather) error {
	if w.ID != 0 {
		return fmt.Errorf("persist observation: already stored with id %d", w.ID)
	}
	if _, err := models.ParseStep(string(w.Step)); err != nil {
		return fmt.Errorf("persist observation: %w", err)
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = s.now()
	}
	w.Timestamp = w.Timestamp.UTC().Truncate(time.Microsecond)

	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("persist observation: %w", err)
	}
	return nil
}
