package store

import (
	"context"

	"github.com/google/uuid"

	"openhours/internal/domain"
)

type VenueRepository interface {
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Delete(ctx context.Context, venueID uuid.UUID) error
}
