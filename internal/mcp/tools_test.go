// ABOUTME: Tests for MCP tools
// ABOUTME: Validates tool handlers against the recording and summary rules
package mcp

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
)

// 2024-01-02 08:00 in the fixed civil zone
var testNow = time.Date(2024, 1, 2, 8, 0, 0, 0, timeparse.Beijing)

func testServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.InitDB(dbPath)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	server := NewServer(database)
	server.now = func() time.Time { return testNow }
	return server, database
}

func TestRecordFeedingTool(t *testing.T) {
	server, _ := testServer(t)

	input := RecordFeedingInput{
		VolumeML: 120,
		FeedType: "formula",
		Time:     "last night at 10pm",
		Note:     "slept right after",
	}

	result, output, err := server.handleRecordFeeding(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleRecordFeeding failed: %v", err)
	}

	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.ID == 0 {
		t.Error("expected non-zero feeding ID")
	}
	// The normalized time is echoed back for confirmation
	if output.OccurredAt != "2024-01-01 22:00:00" {
		t.Errorf("got occurred_at %q, want 2024-01-01 22:00:00", output.OccurredAt)
	}
}

func TestRecordThenRecentRoundTrip(t *testing.T) {
	server, _ := testServer(t)

	_, recorded, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 90,
		FeedType: "breast_milk",
		Time:     "an hour ago",
		Note:     "fussy",
	})
	if err != nil {
		t.Fatalf("handleRecordFeeding failed: %v", err)
	}

	_, listed, err := server.handleRecentLogs(context.Background(), nil, RecentLogsInput{Limit: 1})
	if err != nil {
		t.Fatalf("handleRecentLogs failed: %v", err)
	}

	if listed.Count != 1 {
		t.Fatalf("got %d feedings, want 1", listed.Count)
	}
	got := listed.Feedings[0]
	if got.ID != recorded.ID {
		t.Errorf("got ID %d, want %d", got.ID, recorded.ID)
	}
	if got.VolumeML != 90 || got.FeedType != "breast_milk" || got.Note != "fussy" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.OccurredAt != "2024-01-02 07:00:00" {
		t.Errorf("got occurred_at %q, want 2024-01-02 07:00:00", got.OccurredAt)
	}
}

func TestRecordFeedingRejectsInvalidType(t *testing.T) {
	server, database := testServer(t)

	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 100,
		FeedType: "juice",
	})

	var verr *db.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// No row may be left behind
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM feedings").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d rows after rejected record, want 0", count)
	}
}

func TestRecordFeedingRejectsBadVolume(t *testing.T) {
	server, _ := testServer(t)

	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 0,
		FeedType: "formula",
	})

	var verr *db.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecordFeedingRejectsUnparseableTime(t *testing.T) {
	server, _ := testServer(t)

	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 100,
		FeedType: "formula",
		Time:     "whenever the baby woke up",
	})

	var perr *timeparse.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRecordFeedingRejectsFutureTime(t *testing.T) {
	server, _ := testServer(t)

	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 100,
		FeedType: "formula",
		Time:     "2024-01-02 09:30:00", // 90 minutes ahead of the test clock
	})

	var verr *db.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecordFeedingFeedTypeAliases(t *testing.T) {
	server, _ := testServer(t)

	_, output, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 80,
		FeedType: "breastmilk",
	})
	if err != nil {
		t.Fatalf("handleRecordFeeding failed: %v", err)
	}
	if output.FeedType != db.FeedTypeBreastMilk {
		t.Errorf("got feed_type %q, want %q", output.FeedType, db.FeedTypeBreastMilk)
	}
}

func TestTodaySummaryEmpty(t *testing.T) {
	server, _ := testServer(t)

	result, output, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleTodaySummary failed: %v", err)
	}

	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.TotalFeedings != 0 || output.TotalVolumeML != 0 {
		t.Errorf("expected empty summary, got %+v", output)
	}
	if output.LastFeedingTime != "" {
		t.Errorf("expected no last feeding time, got %q", output.LastFeedingTime)
	}
	if output.Date != "2024-01-02" {
		t.Errorf("got date %q, want 2024-01-02", output.Date)
	}
}

func TestTodaySummaryCountsOnlyToday(t *testing.T) {
	server, _ := testServer(t)

	// Yesterday evening: outside today's boundaries
	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 150, FeedType: "formula", Time: "last night at 10pm",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Two feedings this morning
	for _, expr := range []string{"6:30", "an hour ago"} {
		_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
			VolumeML: 100, FeedType: "formula", Time: expr,
		})
		if err != nil {
			t.Fatalf("record %q failed: %v", expr, err)
		}
	}

	_, output, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleTodaySummary failed: %v", err)
	}

	if output.TotalFeedings != 2 {
		t.Errorf("got %d feedings, want 2 (yesterday excluded)", output.TotalFeedings)
	}
	if output.TotalVolumeML != 200 {
		t.Errorf("got total %d, want 200", output.TotalVolumeML)
	}
	if output.AverageVolumeML != 100 {
		t.Errorf("got average %v, want 100", output.AverageVolumeML)
	}
	if output.LastFeedingTime != "2024-01-02 07:00:00" {
		t.Errorf("got last feeding %q, want 2024-01-02 07:00:00", output.LastFeedingTime)
	}
}

func TestTodaySummaryIdempotent(t *testing.T) {
	server, _ := testServer(t)

	_, _, err := server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 110, FeedType: "formula",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	_, first, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("first summary failed: %v", err)
	}
	_, second, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("second summary failed: %v", err)
	}

	if first != second {
		t.Errorf("repeated summaries differ: %+v vs %+v", first, second)
	}
}

func TestTodaySummaryReflectsNewInserts(t *testing.T) {
	server, _ := testServer(t)

	_, before, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if before.TotalFeedings != 0 {
		t.Fatalf("expected empty start, got %+v", before)
	}

	_, _, err = server.handleRecordFeeding(context.Background(), nil, RecordFeedingInput{
		VolumeML: 130, FeedType: "formula",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// No staleness window: the insert is visible immediately
	_, after, err := server.handleTodaySummary(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if after.TotalFeedings != 1 || after.TotalVolumeML != 130 {
		t.Errorf("insert not reflected: %+v", after)
	}
}

func TestRecentLogsDefaultAndClamp(t *testing.T) {
	server, database := testServer(t)

	base := testNow.Add(-7 * time.Hour)
	for i := 0; i < 8; i++ {
		_, err := db.InsertFeeding(database, db.Feeding{
			OccurredAt: base.Add(time.Duration(i) * 30 * time.Minute),
			VolumeML:   100,
			FeedType:   db.FeedTypeFormula,
		})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	// Default limit is 5
	_, output, err := server.handleRecentLogs(context.Background(), nil, RecentLogsInput{})
	if err != nil {
		t.Fatalf("handleRecentLogs failed: %v", err)
	}
	if output.Count != 5 {
		t.Errorf("got %d feedings with default limit, want 5", output.Count)
	}

	// Oversized limit is clamped, not rejected
	_, output, err = server.handleRecentLogs(context.Background(), nil, RecentLogsInput{Limit: 100000})
	if err != nil {
		t.Fatalf("handleRecentLogs with huge limit failed: %v", err)
	}
	if output.Count != 8 {
		t.Errorf("got %d feedings, want 8", output.Count)
	}

	// Negative limit is a validation error
	_, _, err = server.handleRecentLogs(context.Background(), nil, RecentLogsInput{Limit: -1})
	var verr *db.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for negative limit, got %v", err)
	}
}
