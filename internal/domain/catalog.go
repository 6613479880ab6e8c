package domain

import "fmt"

// VenueRecord is one validated input record: a venue name paired with its
// raw weekly opening-hours string.
type VenueRecord struct {
	Name         string
	OpeningHours string
}

// CompiledEntry pairs a venue name with its compiled interval list. The
// interval order is the parse order; queries do a linear any-match, so the
// order carries no semantics.
type CompiledEntry struct {
	Name      string
	Intervals []Interval
}

// Catalog holds the compiled schedule of every venue, in input order. It is
// never mutated after BuildCatalog returns, so concurrent queries need no
// locking.
type Catalog struct {
	entries []CompiledEntry
}

// BuildCatalog compiles every record's opening hours into a catalog. The
// build is fail-fast: a single record that does not compile fails the whole
// build, and the error names the offending venue. There is no partial
// catalog.
func BuildCatalog(records []VenueRecord) (Catalog, error) {
	entries := make([]CompiledEntry, 0, len(records))
	for _, r := range records {
		intervals, err := CompileOpeningHours(r.OpeningHours)
		if err != nil {
			return Catalog{}, fmt.Errorf("venue %q: %w", r.Name, err)
		}
		entries = append(entries, CompiledEntry{Name: r.Name, Intervals: intervals})
	}
	return Catalog{entries: entries}, nil
}

// Len returns the number of venues in the catalog.
func (c Catalog) Len() int {
	return len(c.entries)
}

// OpenAt returns the names of every venue open at the given minute-of-week,
// catalog order preserved. A venue is open when any of its intervals
// contains the instant; the opening minute counts as open, the closing
// minute does not.
func (c Catalog) OpenAt(minuteOfWeek int) []string {
	open := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		for _, iv := range e.Intervals {
			if iv.Contains(minuteOfWeek) {
				open = append(open, e.Name)
				break
			}
		}
	}
	return open
}
