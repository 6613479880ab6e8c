package venues

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"openhours/internal/domain"
	"openhours/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	repo store.VenueRepository
}

func NewService(repo store.VenueRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name         string
	OpeningHours string
}

// Create stores a new venue. The opening-hours string must compile; a
// malformed string is a validation error, not an internal one.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Venue, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Venue{}, validationError("name is required")
	}
	hours := strings.TrimSpace(in.OpeningHours)
	if hours == "" {
		return domain.Venue{}, validationError("opening_hours is required")
	}

	if _, err := domain.CompileOpeningHours(hours); err != nil {
		var mErr *domain.MalformedClauseError
		if errors.As(err, &mErr) {
			return domain.Venue{}, validationError(err.Error())
		}
		return domain.Venue{}, err
	}

	return s.repo.Create(ctx, domain.Venue{Name: name, OpeningHours: hours})
}

func (s *Service) List(ctx context.Context) ([]domain.Venue, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, venueID uuid.UUID) error {
	if venueID == uuid.Nil {
		return validationError("venue_id is required")
	}
	return s.repo.Delete(ctx, venueID)
}

// Instant is a query instant in the external calendar convention: weekday
// is 1-based with Monday = 1.
type Instant struct {
	Weekday int
	Hour    int
	Minute  int
}

// OpenAt compiles the stored venues into a catalog snapshot and returns the
// names of the venues open at the given instant, in catalog order. Stored
// venues always compile because Create rejects malformed hours, so a
// compile failure here is an internal error.
func (s *Service) OpenAt(ctx context.Context, at Instant) ([]string, error) {
	if at.Weekday < 1 || at.Weekday > 7 {
		return nil, validationError("weekday must be between 1 and 7")
	}
	if at.Hour < 0 || at.Hour > 23 {
		return nil, validationError("hour must be between 0 and 23")
	}
	if at.Minute < 0 || at.Minute > 59 {
		return nil, validationError("minute must be between 0 and 59")
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.VenueRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Record())
	}
	catalog, err := domain.BuildCatalog(records)
	if err != nil {
		return nil, err
	}

	return catalog.OpenAt(domain.MinuteOfWeek(at.Weekday, at.Hour, at.Minute)), nil
}
