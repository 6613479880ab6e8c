package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
	MinutesPerWeek = 7 * MinutesPerDay

	pmOffsetMinutes = 12 * MinutesPerHour
)

// dayIndexes is the fixed weekday vocabulary, Monday = 0.
var dayIndexes = map[string]int{
	"mon": 0,
	"tue": 1,
	"wed": 2,
	"thu": 3,
	"fri": 4,
	"sat": 5,
	"sun": 6,
}

// UnknownDayTokenError reports a weekday token outside the fixed
// three-letter vocabulary. It cannot occur for tokens produced by the
// clause tokenizer; raising it instead of defaulting keeps upstream bugs
// visible.
type UnknownDayTokenError struct {
	Token string
}

func (e *UnknownDayTokenError) Error() string {
	return fmt.Sprintf("unknown day token %q", e.Token)
}

// UnknownTimeTokenError reports a time token that does not have the
// "h[:mm] am|pm" shape.
type UnknownTimeTokenError struct {
	Token string
}

func (e *UnknownTimeTokenError) Error() string {
	return fmt.Sprintf("unknown time token %q", e.Token)
}

// DayIndex maps a three-letter weekday token to its 0-based index,
// Monday = 0. Matching is case-insensitive and exact.
func DayIndex(token string) (int, error) {
	idx, ok := dayIndexes[strings.ToLower(token)]
	if !ok {
		return 0, &UnknownDayTokenError{Token: token}
	}
	return idx, nil
}

// ParseClockTime converts a 12-hour clock token such as "7 pm" or
// "11:30 am" into minutes since midnight, 0..1439. Hour 12 contributes no
// hour offset of its own; the meridiem supplies the correct half of the
// day, so "12:00 am" is 0 and "12:00 pm" is 720.
func ParseClockTime(token string) (int, error) {
	clock, meridiem, ok := strings.Cut(strings.ToLower(strings.TrimSpace(token)), " ")
	if !ok {
		return 0, &UnknownTimeTokenError{Token: token}
	}

	hourPart, minutePart, hasMinute := strings.Cut(clock, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, &UnknownTimeTokenError{Token: token}
	}

	minutes := 0
	if hour != 12 {
		minutes = hour * MinutesPerHour
	}
	if hasMinute {
		m, err := strconv.Atoi(minutePart)
		if err != nil || len(minutePart) != 2 || m > 59 {
			return 0, &UnknownTimeTokenError{Token: token}
		}
		minutes += m
	}

	switch meridiem {
	case "am":
	case "pm":
		minutes += pmOffsetMinutes
	default:
		return 0, &UnknownTimeTokenError{Token: token}
	}

	return minutes, nil
}
