package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"weather-dashboard/internal/models"
)

// PeopleRepository manages people, their locations and the user links.
type PeopleRepository struct {
	db *gorm.DB
}

func NewPeopleRepository(db *gorm.DB) *PeopleRepository {
	return &PeopleRepository{db: db}
}

// FindLocation looks a location up by its coordinate pair.
func (r *PeopleRepository) FindLocation(ctx context.Context, latitude, longitude string) (*models.Location, error) {
	var loc models.Location
	err := r.db.WithContext(ctx).
		Where("latitude = ? AND longitude = ?", latitude, longitude).
		Order("id").
		Take(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	return &loc, nil
}

// FindOrCreateLocation returns the stored location with loc's coordinates,
// creating it from loc when none exists. The bool reports creation.
func (r *PeopleRepository) FindOrCreateLocation(ctx context.Context, loc models.Location) (*models.Location, bool, error) {
	existing, err := r.FindLocation(ctx, loc.Latitude, loc.Longitude)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrLocationNotFound) {
		return nil, false, err
	}

	loc.ID = 0
	if err := r.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return nil, false, fmt.Errorf("create location: %w", err)
	}
	return &loc, true, nil
}

func (r *PeopleRepository) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	err := r.db.WithContext(ctx).Take(&loc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

// UpdateLocation corrects a location's name and timezone. Coordinates are
// its identity and never change.
func (r *PeopleRepository) UpdateLocation(ctx context.Context, id uint, name, timezone string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "timezone": timezone})
	if res.Error != nil {
		return fmt.Errorf("update location: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// DeleteLocation removes a location with its observations, people and links.
func (r *PeopleRepository) DeleteLocation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		people := tx.Model(&models.Person{}).Select("id").Where("location_id = ?", id)
		if err := tx.Where("person_id IN (?)", people).Delete(&models.UserPerson{}).Error; err != nil {
			return fmt.Errorf("delete location links: %w", err)
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.Person{}).Error; err != nil {
			return fmt.Errorf("delete location people: %w", err)
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.Weather{}).Error; err != nil {
			return fmt.Errorf("delete location weather: %w", err)
		}
		res := tx.Delete(&models.Location{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete location: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrLocationNotFound
		}
		return nil
	})
}

// CreatePerson stores p and links it to username in one transaction.
func (r *PeopleRepository) CreatePerson(ctx context.Context, username string, p *models.Person) error {
	if p.Image == "" {
		p.Image = models.DefaultPersonImage
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Location").Create(p).Error; err != nil {
			return fmt.Errorf("create person: %w", err)
		}
		link := models.UserPerson{
			Username:  username,
			PersonID:  p.ID,
			DateAdded: time.Now().UTC(),
		}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link person to %s: %w", username, err)
		}
		return nil
	})
}

// ListPeople returns username's people in the order they were added, with
// their locations loaded.
func (r *PeopleRepository) ListPeople(ctx context.Context, username string) ([]models.Person, error) {
	var people []models.Person
	err := r.db.WithContext(ctx).
		Preload("Location").
		Joins("JOIN user_person ON user_person.person_id = people.id").
		Where("user_person.username = ?", username).
		Order("user_person.id").
		Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("list people for %s: %w", username, err)
	}
	return people, nil
}

func (r *PeopleRepository) GetPerson(ctx context.Context, username string, id uint) (*models.Person, error) {
	var p models.Person
	err := r.db.WithContext(ctx).
		Preload("Location").
		Joins("JOIN user_person ON user_person.person_id = people.id").
		Where("user_person.username = ? AND people.id = ?", username, id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// DeletePerson removes the person and its user links.
func (r *PeopleRepository) DeletePerson(ctx context.Context, username string, id uint) error {
	if _, err := r.GetPerson(ctx, username, id); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", id).Delete(&models.UserPerson{}).Error; err != nil {
			return fmt.Errorf("delete person links: %w", err)
		}
		if err := tx.Delete(&models.Person{}, id).Error; err != nil {
			return fmt.Errorf("delete person: %w", err)
		}
		return nil
	})
}
