package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"openhours/internal/domain"
	"openhours/internal/store"
)

type VenueRepo struct {
	db *bun.DB
}

func NewVenueRepo(db *bun.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func (r *VenueRepo) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	m := venue
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Venue{}, store.ErrConflict
		}
		return domain.Venue{}, err
	}
	return m, nil
}

// List returns every venue in catalog order, which is insertion order.
func (r *VenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	var rows []domain.Venue
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *VenueRepo) Delete(ctx context.Context, venueID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Venue)(nil)).
		Where("id = ?", venueID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Seed inserts the given records, skipping names that already exist, and
// returns the number of venues inserted. Used to load a catalog file at
// startup without clobbering venues created through the API.
func (r *VenueRepo) Seed(ctx context.Context, records []domain.VenueRecord) (int, error) {
	inserted := 0
	for _, rec := range records {
		m := domain.Venue{Name: rec.Name, OpeningHours: rec.OpeningHours}
		res, err := r.db.NewInsert().
			Model(&m).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return inserted, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(affected)
	}
	return inserted, nil
}
