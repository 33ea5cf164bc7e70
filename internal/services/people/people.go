package people

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidName        = errors.New("name is required")
	ErrUnknownTimezone    = errors.New("unknown timezone")
)

const maxNameLength = 30

type Repository interface {
	FindLocation(ctx context.Context, latitude, longitude string) (*models.Location, error)
	FindOrCreateLocation(ctx context.Context, loc models.Location) (*models.Location, bool, error)
	GetLocation(ctx context.Context, id uint) (*models.Location, error)
	UpdateLocation(ctx context.Context, id uint, name, timezone string) error
	DeleteLocation(ctx context.Context, id uint) error
	CreatePerson(ctx context.Context, username string, p *models.Person) error
	ListPeople(ctx context.Context, username string) ([]models.Person, error)
	DeletePerson(ctx context.Context, username string, id uint) error
}

type TimezoneResolver interface {
	ResolveTimezone(ctx context.Context, lat, long string) repositories.TimezoneResult
}

// ZoneCatalog is the table of timezones a location may be corrected to.
type ZoneCatalog interface {
	HasTimezone(name string) bool
}

type NewPerson struct {
	Name         string
	LocationName string
	Latitude     string
	Longitude    string
	Image        string
}

type Service struct {
	repo      Repository
	timezones TimezoneResolver
	zones     ZoneCatalog
	l         *logger.Logger
}

func NewService(repo Repository, timezones TimezoneResolver, zones ZoneCatalog, l *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		timezones: timezones,
		zones:     zones,
		l:         l,
	}
}

// EnsureLocation returns the stored location for the coordinates. A new
// location gets its timezone from the resolver; a failed lookup falls back to
// the default timezone and never blocks creation.
func (s *Service) EnsureLocation(ctx context.Context, name, lat, long string) (*models.Location, error) {
	lat, long, err := NormalizeCoordinates(lat, long)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindLocation(ctx, lat, long)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrLocationNotFound) {
		return nil, err
	}

	tz := s.timezones.ResolveTimezone(ctx, lat, long)
	if tz.Fallback {
		s.l.Warning("creating location with fallback timezone", map[string]any{
			"latitude":  lat,
			"longitude": long,
			"timezone":  tz.Name,
		})
	}

	if name == "" {
		name = lat + "," + long
	}
	loc, created, err := s.repo.FindOrCreateLocation(ctx, models.Location{
		Name:      truncate(name, maxNameLength),
		Latitude:  lat,
		Longitude: long,
		Timezone:  tz.Name,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.l.Info("location created", map[string]any{
			"location": loc.ID,
			"timezone": loc.Timezone,
			"fallback": tz.Fallback,
		})
	}

	return loc, nil
}

// UpdateLocation corrects the name and timezone of a stored location, for
// instance after the timezone lookup fell back to the default.
func (s *Service) UpdateLocation(ctx context.Context, id uint, name, timezone string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !s.zones.HasTimezone(timezone) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, timezone)
	}

	if err := s.repo.UpdateLocation(ctx, id, truncate(name, maxNameLength), timezone); err != nil {
		return nil, err
	}

	s.l.Info("location updated", map[string]any{"location": id, "timezone": timezone})
	return s.repo.GetLocation(ctx, id)
}

// DeleteLocation removes the location together with everyone tracked there.
func (s *Service) DeleteLocation(ctx context.Context, id uint) error {
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return err
	}

	s.l.Warning("location deleted", map[string]any{"location": id})
	return nil
}

// AddPerson creates a person tracked by username at the given location.
func (s *Service) AddPerson(ctx context.Context, username string, in NewPerson) (*models.Person, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	loc, err := s.EnsureLocation(ctx, strings.TrimSpace(in.LocationName), in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}

	p := &models.Person{
		Name:       truncate(name, maxNameLength),
		LocationID: loc.ID,
		Image:      in.Image,
	}
	if err := s.repo.CreatePerson(ctx, username, p); err != nil {
		return nil, err
	}
	p.Location = *loc

	s.l.Info("person added", map[string]any{
		"username": username,
		"person":   p.ID,
		"location": loc.ID,
	})

	return p, nil
}

func (s *Service) List(ctx context.Context, username string) ([]models.Person, error) {
	return s.repo.ListPeople(ctx, username)
}

func (s *Service) DeletePerson(ctx context.Context, username string, id uint) error {
	if err := s.repo.DeletePerson(ctx, username, id); err != nil {
		return err
	}

	s.l.Info("person deleted", map[string]any{"username": username, "person": id})
	return nil
}

// NormalizeCoordinates validates a latitude/longitude pair and returns it in
// the canonical decimal form used as the location key.
func NormalizeCoordinates(lat, long string) (string, string, error) {
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || math.IsNaN(latF) || latF < -90 || latF > 90 {
		return "", "", fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, lat)
	}
	longF, err := strconv.ParseFloat(strings.TrimSpace(long), 64)
	if err != nil || math.IsNaN(longF) || longF < -180 || longF > 180 {
		return "", "", fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, long)
	}

	return strconv.FormatFloat(latF, 'f', -1, 64), strconv.FormatFloat(longF, 'f', -1, 64), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
