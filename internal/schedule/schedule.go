// Package schedule holds the pure date arithmetic behind recurring class
// programs: weekly occurrence expansion, interval overlap, and the matching
// rules used for range deletion. Nothing in this package touches storage;
// callers resolve the tenant's timezone and pass it in explicitly.
package schedule

import (
	"errors"
	"time"
)

// Sentinel errors for request validation.
var (
	ErrInvalidRange   = errors.New("invalid date or time range")
	ErrInvalidWeekday = errors.New("weekday must be between Sunday (0) and Saturday (6)")
	ErrNoWeekdays     = errors.New("at least one weekday must be selected")
	ErrNoTimeFilter   = errors.New("time filter must be set")
)

// GenerationRequest describes one weekly recurrence rule: every occurrence of
// Weekday between From and To inclusive, at the StartTime-EndTime window.
type GenerationRequest struct {
	Weekday   time.Weekday
	StartTime TimeOfDay
	EndTime   TimeOfDay
	From      Date
	To        Date
}

// Validate checks the request preconditions. The time window must fall within
// a single day; overnight sessions are not supported.
func (r GenerationRequest) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return ErrInvalidWeekday
	}
	if r.From.After(r.To) {
		return ErrInvalidRange
	}
	if !r.StartTime.Before(r.EndTime) {
		return ErrInvalidRange
	}
	return nil
}

// Occurrence is one concrete [Start, End) interval produced by Expand.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Expand enumerates every calendar date from r.From to r.To inclusive and
// emits one occurrence per date whose weekday equals r.Weekday, resolved to
// absolute instants in loc. Occurrences are returned in ascending order.
// A range containing no matching weekday yields an empty result, not an error.
//
// A date whose local window is swallowed by a daylight-saving gap (both wall
// times normalize into the same instant, e.g. 02:00-03:00 on a spring-forward
// day) produces no occurrence for that date.
func Expand(r GenerationRequest, loc *time.Location) ([]Occurrence, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var out []Occurrence
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		if d.Weekday() != r.Weekday {
			continue
		}
		start := d.At(r.StartTime, loc)
		end := d.At(r.EndTime, loc)
		if !start.Before(end) {
			continue
		}
		out = append(out, Occurrence{Start: start, End: end})
	}
	return out, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type timeFilterKind int

const (
	timeFilterUnset timeFilterKind = iota
	timeFilterAll
	timeFilterAt
)

// TimeFilter selects sessions by their local start time: either one specific
// wall-clock time or all times of day. The zero value is unset and fails
// validation, so callers must choose one of the two variants explicitly.
type TimeFilter struct {
	kind timeFilterKind
	at   TimeOfDay
}

// AllTimes returns the filter that matches every start time.
func AllTimes() TimeFilter {
	return TimeFilter{kind: timeFilterAll}
}

// AtTime returns the filter that matches only starts at exactly t (local hour
// and minute).
func AtTime(t TimeOfDay) TimeFilter {
	return TimeFilter{kind: timeFilterAt, at: t}
}

// IsAll reports whether the filter matches all times of day.
func (f TimeFilter) IsAll() bool {
	return f.kind == timeFilterAll
}

// At returns the specific time and true when the filter is the specific-time
// variant.
func (f TimeFilter) At() (TimeOfDay, bool) {
	return f.at, f.kind == timeFilterAt
}

// Matches reports whether the instant's wall-clock time in loc passes the
// filter. An unset filter matches nothing.
func (f TimeFilter) Matches(instant time.Time, loc *time.Location) bool {
	switch f.kind {
	case timeFilterAll:
		return true
	case timeFilterAt:
		return TimeOfDayOf(instant, loc) == f.at
	default:
		return false
	}
}

func (f TimeFilter) String() string {
	switch f.kind {
	case timeFilterAll:
		return "all"
	case timeFilterAt:
		return f.at.String()
	default:
		return "unset"
	}
}

// DeletionRequest describes which existing sessions a program deletion
// targets: those starting on one of Days between From and To inclusive,
// narrowed by the time filter.
type DeletionRequest struct {
	From Date
	To   Date
	Days []time.Weekday
	Time TimeFilter
}

// Validate checks the request preconditions.
func (r DeletionRequest) Validate() error {
	if r.From.After(r.To) {
		return ErrInvalidRange
	}
	if len(r.Days) == 0 {
		return ErrNoWeekdays
	}
	for _, d := range r.Days {
		if d < time.Sunday || d > time.Saturday {
			return ErrInvalidWeekday
		}
	}
	if r.Time.kind == timeFilterUnset {
		return ErrNoTimeFilter
	}
	return nil
}

// Window returns the absolute-instant query window covering the whole date
// range in loc: [local midnight of From, local midnight of the day after To).
func (r DeletionRequest) Window(loc *time.Location) (time.Time, time.Time) {
	return r.From.StartOfDay(loc), r.To.AddDays(1).StartOfDay(loc)
}

// Matches reports whether a session starting at the given instant satisfies
// every filter of the request, using loc for local weekday and wall-clock
// comparisons.
func (r DeletionRequest) Matches(startsAt time.Time, loc *time.Location) bool {
	d := DateOf(startsAt, loc)
	if d.Before(r.From) || d.After(r.To) {
		return false
	}
	weekday := d.Weekday()
	found := false
	for _, day := range r.Days {
		if day == weekday {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return r.Time.Matches(startsAt, loc)
}
