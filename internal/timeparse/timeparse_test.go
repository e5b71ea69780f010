// ABOUTME: Tests for time expression normalization
// ABOUTME: Pins the rollback, backfill, and ambiguity policies
package timeparse

import (
	"errors"
	"testing"
	"time"
)

// 2024-01-02 08:00 in the fixed civil zone
func testNow() time.Time {
	return time.Date(2024, 1, 2, 8, 0, 0, 0, Beijing)
}

func civil(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, Beijing)
}

func TestNormalizeEmpty(t *testing.T) {
	now := testNow()

	for _, expr := range []string{"", "   ", "now"} {
		got, err := Normalize(expr, now)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", expr, err)
		}
		if !got.Equal(now) {
			t.Errorf("Normalize(%q) = %v, want now (%v)", expr, got, now)
		}
	}
}

func TestNormalizeLastNightRollsBack(t *testing.T) {
	// "last night at 10pm" said at 08:00 means the prior evening
	got, err := Normalize("last night at 10pm", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 1, 22, 0)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeBareClockBackfills(t *testing.T) {
	// "10pm" with no qualifier resolves to the most recent past occurrence
	got, err := Normalize("10pm", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 1, 22, 0)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeBareClockEarlierToday(t *testing.T) {
	// A clock time already past today stays on today
	got, err := Normalize("6:30", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 2, 6, 30)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeBareClockExactNow(t *testing.T) {
	// An exact match with now counts as today, not yesterday
	got, err := Normalize("8am", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 2, 8, 0)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeQualifiers(t *testing.T) {
	now := testNow()

	tests := []struct {
		expr string
		want time.Time
	}{
		{"yesterday at 8:30", civil(2024, time.January, 1, 8, 30)},
		{"yesterday morning at 7", civil(2024, time.January, 1, 7, 0)},
		{"yesterday evening at 9", civil(2024, time.January, 1, 21, 0)},
		{"last night at 10", civil(2024, time.January, 1, 22, 0)},
		{"today at 7:15", civil(2024, time.January, 2, 7, 15)},
		{"this morning at 6", civil(2024, time.January, 2, 6, 0)},
		{"tonight at 9", civil(2024, time.January, 2, 21, 0)},
		{"this afternoon at 3", civil(2024, time.January, 2, 15, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Normalize(tt.expr, now)
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.expr, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNormalizePastQualifierNeverFuture(t *testing.T) {
	// "this morning at 9" said at 08:00: the morning hasn't reached 9 yet,
	// so the past-implying qualifier rolls back a day rather than pointing
	// into the future
	got, err := Normalize("this morning at 9", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if got.After(testNow()) {
		t.Errorf("past qualifier resolved into the future: %v", got)
	}
}

func TestNormalizeOffsets(t *testing.T) {
	now := testNow()

	tests := []struct {
		expr string
		want time.Time
	}{
		{"an hour ago", now.Add(-time.Hour)},
		{"2 hours ago", now.Add(-2 * time.Hour)},
		{"45 minutes ago", now.Add(-45 * time.Minute)},
		{"a minute ago", now.Add(-time.Minute)},
		{"half an hour ago", now.Add(-30 * time.Minute)},
		{"90 min ago", now.Add(-90 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Normalize(tt.expr, now)
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.expr, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNormalizeAbsolute(t *testing.T) {
	got, err := Normalize("2024-01-01 22:30:00", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 1, 22, 30)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got.Location() != Beijing {
		t.Errorf("expected result in Beijing zone, got %v", got.Location())
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	exprs := []string{
		"whenever",
		"25pm",
		"13:75",
		"last night", // qualifier with no time of day
		"soonish o'clock",
	}

	for _, expr := range exprs {
		_, err := Normalize(expr, testNow())
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Normalize(%q): expected ParseError, got %v", expr, err)
		}
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	got, err := Normalize("Last Night At 10PM", testNow())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := civil(2024, time.January, 1, 22, 0)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(testNow())

	if !start.Equal(civil(2024, time.January, 2, 0, 0)) {
		t.Errorf("got start %v, want midnight", start)
	}
	if !end.Equal(civil(2024, time.January, 3, 0, 0)) {
		t.Errorf("got end %v, want next midnight", end)
	}
}

func TestDayBoundsConvertsZone(t *testing.T) {
	// 2024-01-02 20:00 UTC is already 2024-01-03 04:00 in the civil zone
	utcEvening := time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)

	start, _ := DayBounds(utcEvening)
	if !start.Equal(civil(2024, time.January, 3, 0, 0)) {
		t.Errorf("got start %v, want civil Jan 3 midnight", start)
	}
}
