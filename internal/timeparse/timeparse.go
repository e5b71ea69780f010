// ABOUTME: Time expression normalization for feeding events
// ABOUTME: Resolves relative phrases and clock times against a fixed civil zone
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Beijing is the fixed civil zone used for all day-boundary and display
// calculations. A fixed offset keeps behavior independent of host tzdata.
var Beijing = time.FixedZone("CST", 8*60*60)

// ParseError reports an expression that could not be interpreted. The caller
// must rephrase; unparseable input is never defaulted to "now".
type ParseError struct {
	Expr string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot interpret time expression %q", e.Expr)
}

var (
	offsetRe = regexp.MustCompile(`^(an?|half an?|\d+)\s+(minute|min|hour|hr)s?\s+ago$`)
	clockRe  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

	// Relative-day qualifiers, with the day offset from today and the
	// time-of-day flavor implied for a bare hour ("last night at 10" is 22:00).
	qualifiers = []struct {
		phrase  string
		dayDiff int
		flavor  string // "", "morning", "afternoon", "evening"
		past    bool   // qualifier promises a past instant
	}{
		{"last night", -1, "evening", true},
		{"yesterday morning", -1, "morning", true},
		{"yesterday evening", -1, "evening", true},
		{"yesterday", -1, "", true},
		{"this morning", 0, "morning", true},
		{"this afternoon", 0, "afternoon", false},
		{"this evening", 0, "evening", false},
		{"tonight", 0, "evening", false},
		{"today", 0, "", false},
	}
)

// Normalize converts a free-form time expression into an absolute instant in
// the Beijing zone. "now" is injected so behavior is deterministic.
//
// Recognized forms, in priority order: empty (returns now), relative-day
// qualifier with a clock time, pure relative offset ("an hour ago"), bare
// clock time (most recent occurrence at or before now), and finally any
// absolute date expression dateparse understands.
func Normalize(expr string, now time.Time) (time.Time, error) {
	now = now.In(Beijing)

	trimmed := strings.ToLower(strings.TrimSpace(expr))
	if trimmed == "" || trimmed == "now" {
		return now, nil
	}

	if q, rest, ok := matchQualifier(trimmed); ok {
		resolved, err := resolveQualified(q.dayDiff, q.flavor, q.past, rest, now)
		if err != nil {
			return time.Time{}, &ParseError{Expr: expr}
		}
		return resolved, nil
	}

	if d, ok := matchOffset(trimmed); ok {
		return now.Add(-d), nil
	}

	if hour, minute, ok := parseClock(trimmed, ""); ok {
		// Bare clock time: the most recent occurrence at or before now.
		// An exact match with now counts as today, not yesterday.
		resolved := atClock(now, 0, hour, minute)
		if resolved.After(now) {
			resolved = resolved.AddDate(0, 0, -1)
		}
		return resolved, nil
	}

	parsed, err := dateparse.ParseIn(expr, Beijing)
	if err != nil {
		return time.Time{}, &ParseError{Expr: expr}
	}
	return parsed.In(Beijing), nil
}

func matchQualifier(expr string) (q struct {
	phrase  string
	dayDiff int
	flavor  string
	past    bool
}, rest string, ok bool) {
	for _, cand := range qualifiers {
		if !strings.HasPrefix(expr, cand.phrase) {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(expr, cand.phrase))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "at "))
		return cand, rest, true
	}
	return q, "", false
}

func resolveQualified(dayDiff int, flavor string, past bool, clock string, now time.Time) (time.Time, error) {
	if clock == "" {
		return time.Time{}, fmt.Errorf("qualifier without a time of day")
	}

	hour, minute, ok := parseClock(clock, flavor)
	if !ok {
		return time.Time{}, fmt.Errorf("bad clock %q", clock)
	}

	resolved := atClock(now, dayDiff, hour, minute)

	// A past-implying qualifier never resolves into the future: "last night
	// at 10pm" said at 08:00 means the prior evening, not tonight.
	if past && resolved.After(now) {
		resolved = resolved.AddDate(0, 0, -1)
	}

	return resolved, nil
}

func matchOffset(expr string) (time.Duration, bool) {
	m := offsetRe.FindStringSubmatch(expr)
	if m == nil {
		return 0, false
	}

	var n int
	half := false
	switch m[1] {
	case "a", "an":
		n = 1
	case "half a", "half an":
		n = 1
		half = true
	default:
		var err error
		n, err = strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
	}

	var unit time.Duration
	switch m[2] {
	case "minute", "min":
		unit = time.Minute
	case "hour", "hr":
		unit = time.Hour
	}

	d := time.Duration(n) * unit
	if half {
		d /= 2
	}
	return d, true
}

// parseClock parses a clock expression like "10pm", "22:15", or "9:05 am".
// The flavor disambiguates a bare hour from a qualifier: "night at 10" is
// 22:00 even without a pm marker.
func parseClock(expr, flavor string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(expr)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, false
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
		switch flavor {
		case "evening", "afternoon":
			if hour < 12 {
				hour += 12
			}
		}
	}

	return hour, minute, true
}

func atClock(now time.Time, dayDiff, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+dayDiff, hour, minute, 0, 0, Beijing)
}

// DayBounds returns the [00:00, next 00:00) boundaries of now's civil day.
func DayBounds(now time.Time) (start, end time.Time) {
	now = now.In(Beijing)
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Beijing)
	return start, start.AddDate(0, 0, 1)
}
