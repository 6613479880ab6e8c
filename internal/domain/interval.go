package domain

// Interval is a half-open [Start, End) span in minutes-of-week, where
// minute 0 is Monday 00:00 and MinutesPerWeek is the following Monday.
type Interval struct {
	Start int
	End   int
}

// Contains reports whether the minute-of-week m falls inside the interval.
// The opening minute is included, the closing minute is not.
func (iv Interval) Contains(m int) bool {
	return m >= iv.Start && m < iv.End
}

// MinuteOfWeek converts a calendar triple to the canonical minute-of-week
// coordinate. weekday is 1-based with Monday = 1, matching the calendar
// convention used by callers.
func MinuteOfWeek(weekday, hour, minute int) int {
	return (weekday-1)*MinutesPerDay + hour*MinutesPerHour + minute
}

// ExpandDaily emits one interval per day from startDay to endDay inclusive,
// stepping forward through the week and wrapping Sunday back to Monday.
// Every covered day carries the same start/end time of day.
//
// An end time at or before the start time crosses midnight into the next
// day; equal endpoints therefore mean the venue is open the full 24 hours.
// An interval that runs past the end of the week is split at the week seam
// so that both pieces stay inside [0, MinutesPerWeek) and point membership
// works on either side of the Sunday/Monday boundary.
func ExpandDaily(startDay, endDay, startMinute, endMinute int) []Interval {
	intervals := make([]Interval, 0, 8)
	for day := startDay; ; day = (day + 1) % 7 {
		dayOffset := day * MinutesPerDay
		start := startMinute + dayOffset
		end := endMinute + dayOffset
		if end <= start {
			end += MinutesPerDay
		}

		if end > MinutesPerWeek {
			intervals = append(intervals,
				Interval{Start: start, End: MinutesPerWeek},
				Interval{Start: 0, End: end - MinutesPerWeek},
			)
		} else {
			intervals = append(intervals, Interval{Start: start, End: end})
		}

		if day == endDay {
			return intervals
		}
	}
}
