package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeResult is a parsed timestamp cell. Fallback is set when the cell
// could not be read and Value holds the reference time.
type TimeResult struct {
	Value    time.Time
	Fallback bool
}

// zonedLayouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
}

// localLayouts are read in the configured location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	// 2024.01.31 13:45[:10]
	dottedYearFirst = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
	// 31.01.2024[ 13:45[:10]]
	dottedDayFirst = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
)

// Time parses a timestamp cell. Layouts without an offset are read in loc;
// a nil loc means UTC. A cell that matches no layout yields now with the
// fallback flag set.
func Time(raw string, now time.Time, loc *time.Location) TimeResult {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return TimeResult{Value: now, Fallback: true}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeResult{Value: t}
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return TimeResult{Value: t}
		}
	}

	if m := dottedYearFirst.FindStringSubmatch(s); m != nil {
		if t, ok := assemble(m[1], m[2], m[3], m[4], m[5], m[6], loc); ok {
			return TimeResult{Value: t}
		}
	}
	if m := dottedDayFirst.FindStringSubmatch(s); m != nil {
		if t, ok := assemble(m[3], m[2], m[1], m[4], m[5], m[6], loc); ok {
			return TimeResult{Value: t}
		}
	}

	return TimeResult{Value: now, Fallback: true}
}

// assemble builds a time from captured components and rejects values that
// time.Date would silently normalize, such as month 13 or hour 25.
func assemble(year, month, day, hour, minute, second string, loc *time.Location) (time.Time, bool) {
	y := atoi(year)
	mo := atoi(month)
	d := atoi(day)
	h := atoi(hour)
	mi := atoi(minute)
	sec := atoi(second)

	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 || sec > 59 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, h, mi, sec, 0, loc)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
