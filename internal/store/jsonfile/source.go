// Package jsonfile loads a venue catalog from a JSON file of the form
//
//	{"venues": [{"name": "...", "opening_hours": "..."}]}
//
// The file shape is validated strictly: unknown fields and missing fields
// are structural errors. Opening-hours strings are not compiled here; the
// caller decides when to do that.
package jsonfile

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"openhours/internal/domain"
)

type venueFile struct {
	Venues []venueEntry `json:"venues" validate:"required,dive"`
}

type venueEntry struct {
	Name         string `json:"name" validate:"required"`
	OpeningHours string `json:"opening_hours" validate:"required"`
}

var validate = validator.New()

// Load reads and validates a venue catalog file, returning the records in
// file order.
func Load(path string) ([]domain.VenueRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var file venueFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode venue catalog %s: %w", path, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid venue catalog %s: %w", path, err)
	}

	records := make([]domain.VenueRecord, 0, len(file.Venues))
	for _, v := range file.Venues {
		records = append(records, domain.VenueRecord{Name: v.Name, OpeningHours: v.OpeningHours})
	}
	return records, nil
}
