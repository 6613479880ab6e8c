package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"openhours/internal/domain"
	"openhours/internal/store"
)

func TestPostgresIntegration_VenueCreateListSeedAndDelete(t *testing.T) {
	databaseURL := strings.TrimSpace(os.Getenv("OPENHOURS_TEST_DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("OPENHOURS_TEST_DATABASE_URL not set")
	}

	db, err := Open(databaseURL, PoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(db)
	})

	schema := "openhours_test_" + randomHex(t, 8)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = db.NewRaw("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Exec(ctx)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("CREATE SCHEMA " + schema).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewRaw("SET LOCAL search_path TO " + schema).Exec(ctx); err != nil {
			return err
		}
		if err := applyMigrations(ctx, tx); err != nil {
			return err
		}

		insertVenue := func(name, hours string) (domain.Venue, error) {
			m := domain.Venue{Name: name, OpeningHours: hours}
			_, err := tx.NewInsert().Model(&m).Exec(ctx)
			return m, err
		}

		v1, err := insertVenue("Cafe", "mon-fri 9 am - 5 pm")
		if err != nil {
			return err
		}
		if v1.ID == uuid.Nil {
			return fmt.Errorf("expected non-nil id")
		}

		v2, err := insertVenue("Bar", "mon-sun 6 pm - 2 am")
		if err != nil {
			return err
		}

		var rows []domain.Venue
		err = tx.NewSelect().Model(&rows).OrderExpr("created_at ASC, id ASC").Scan(ctx)
		if err != nil {
			return err
		}
		if len(rows) != 2 {
			return fmt.Errorf("len(rows) = %d, want 2", len(rows))
		}
		if rows[0].ID != v1.ID || rows[1].ID != v2.ID {
			return fmt.Errorf("rows out of insertion order: %s, %s", rows[0].Name, rows[1].Name)
		}

		// Duplicate name hits the unique constraint.
		_, err = insertVenue("Cafe", "sat 10 am - 2 pm")
		if err == nil {
			return fmt.Errorf("expected unique violation for duplicate name")
		}

		// Seed skips existing names and inserts new ones.
		seeded := domain.Venue{Name: "Cafe", OpeningHours: "sat 10 am - 2 pm"}
		res, err := tx.NewInsert().Model(&seeded).On("CONFLICT (name) DO NOTHING").Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected != 0 {
			return fmt.Errorf("seed affected = %d, want 0 for existing name", affected)
		}

		deleteVenue := func(id uuid.UUID) error {
			res, err := tx.NewDelete().Model((*domain.Venue)(nil)).Where("id = ?", id).Exec(ctx)
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

		if err := deleteVenue(v2.ID); err != nil {
			return err
		}
		if err := deleteVenue(v2.ID); err != store.ErrNotFound {
			return fmt.Errorf("second delete err = %v, want %v", err, store.ErrNotFound)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("tx error: %v", err)
	}
}

func randomHex(t *testing.T, bytesLen int) string {
	t.Helper()
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read error: %v", err)
	}
	return hex.EncodeToString(b)
}

type rawExecutor interface {
	NewRaw(query string, args ...any) *bun.RawQuery
}

func applyMigrations(ctx context.Context, exec rawExecutor) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		upSQL, err := extractGooseUp(string(b))
		if err != nil {
			return err
		}
		for _, stmt := range splitSQLStatements(upSQL) {
			if _, err := exec.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

func migrationsDir() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("runtime.Caller failed")
	}
	base := filepath.Dir(file)
	return filepath.Clean(filepath.Join(base, "..", "..", "..", "migrations")), nil
}

func extractGooseUp(sql string) (string, error) {
	upMarker := "-- +goose Up"
	downMarker := "-- +goose Down"

	upIdx := strings.Index(sql, upMarker)
	if upIdx < 0 {
		return "", fmt.Errorf("missing goose up marker")
	}
	afterUp := strings.TrimLeft(sql[upIdx+len(upMarker):], "\r\n")

	downIdx := strings.Index(afterUp, downMarker)
	if downIdx < 0 {
		return strings.TrimSpace(afterUp), nil
	}
	return strings.TrimSpace(afterUp[:downIdx]), nil
}

func splitSQLStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
