package wordle

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// StartDateLayout is the MM/DD/YYYY form accepted for custom start dates.
	StartDateLayout = "1/2/2006"

	// AutoArchiveMinutes is the auto archive duration given to every created thread.
	AutoArchiveMinutes = 24 * 60

	threadDateLayout = "Mon Jan 2"
)

// DefaultEpoch is the day the original Wordle puzzle numbering starts from.
var DefaultEpoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// Series identifies one recurring daily game.
type Series struct {
	Name     string
	Epoch    time.Time
	Location *time.Location
}

// NewSeries title-cases name and pins the epoch to a calendar date in loc.
// A nil loc means the host's local zone.
func NewSeries(name string, epoch time.Time, loc *time.Location) (Series, error) {
	if loc == nil {
		loc = time.Local
	}
	name = cases.Title(language.Und).String(strings.TrimSpace(name))
	if name == "" {
		return Series{}, fmt.Errorf("%w: series name is empty", ErrParse)
	}
	y, m, d := epoch.Date()
	return Series{
		Name:     name,
		Epoch:    time.Date(y, m, d, 0, 0, 0, 0, loc),
		Location: loc,
	}, nil
}

// ParseStartDate parses a MM/DD/YYYY date in loc.
func ParseStartDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(StartDateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid start date %q, expected MM/DD/YYYY", ErrParse, s)
	}
	return t, nil
}

// SequenceNumber is the count of calendar days between the epoch and the
// date of t in the series' location.
func (s Series) SequenceNumber(t time.Time) int {
	return civilDays(t.In(s.Location)) - civilDays(s.Epoch)
}

// Label is the collision key for day n, e.g. "Wordle 500".
func (s Series) Label(n int) string {
	return fmt.Sprintf("%s %d", s.Name, n)
}

// ThreadName is the full name given to the thread created for now.
func (s Series) ThreadName(now time.Time) string {
	local := now.In(s.Location)
	return fmt.Sprintf("%s (%s) [[SPOILERS]]", s.Label(s.SequenceNumber(local)), local.Format(threadDateLayout))
}

// civilDays maps the wall-clock date of t to a day count, ignoring the zone
// offset so DST transitions never shift the result.
func civilDays(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
