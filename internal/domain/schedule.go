package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// clauseSeparator splits an opening-hours string into independent
// day-range + time-range clauses.
const clauseSeparator = "; "

var (
	dayTokenPattern  = regexp.MustCompile(`\b(mon|tue|wed|thu|fri|sat|sun)\b`)
	timeTokenPattern = regexp.MustCompile(`\b(1[0-2]|0?[1-9])(:[0-5][0-9])? (am|pm)\b`)
)

// MalformedClauseError reports a clause that lacks the day token or the two
// time tokens a well-formed opening-hours clause requires.
type MalformedClauseError struct {
	Clause string
}

func (e *MalformedClauseError) Error() string {
	return fmt.Sprintf("malformed opening hours clause %q", e.Clause)
}

// CompileOpeningHours parses a raw weekly opening-hours string such as
// "mon-fri 9 am - 5 pm; sat 10 am - 2 pm" into the full ordered list of
// canonical minute-of-week intervals. Each clause names one day or a day
// range plus an opening and a closing time; a clause with a single day
// token covers just that day. Clause order is preserved in the output.
func CompileOpeningHours(raw string) ([]Interval, error) {
	var intervals []Interval
	for _, clause := range strings.Split(raw, clauseSeparator) {
		lowered := strings.ToLower(clause)

		days := dayTokenPattern.FindAllString(lowered, -1)
		times := timeTokenPattern.FindAllString(lowered, -1)
		if len(days) < 1 || len(times) < 2 {
			return nil, &MalformedClauseError{Clause: clause}
		}

		startDay, err := DayIndex(days[0])
		if err != nil {
			return nil, err
		}
		endDay := startDay
		if len(days) > 1 {
			if endDay, err = DayIndex(days[1]); err != nil {
				return nil, err
			}
		}

		startMinute, err := ParseClockTime(times[0])
		if err != nil {
			return nil, err
		}
		endMinute, err := ParseClockTime(times[1])
		if err != nil {
			return nil, err
		}

		intervals = append(intervals, ExpandDaily(startDay, endDay, startMinute, endMinute)...)
	}
	return intervals, nil
}
