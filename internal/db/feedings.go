// ABOUTME: Feeding event creation and queries
// ABOUTME: Handles validated inserts, range queries, and recent listings
package db

import (
	"database/sql"
	"time"
)

// Feed types accepted by the store. Anything else is rejected.
const (
	FeedTypeFormula    = "formula"
	FeedTypeBreastMilk = "breast_milk"
)

// MaxRecentLimit is the ceiling for ListRecent. Larger limits are clamped,
// not rejected.
const MaxRecentLimit = 100

// MaxNoteLength caps free-text notes.
const MaxNoteLength = 1000

type Feeding struct {
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	VolumeML   int       `json:"volume_ml"`
	FeedType   string    `json:"feed_type"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Summary is the read-time projection over a range of feedings. It is never
// stored; it is computed fresh from the rows on every call.
type Summary struct {
	Count       int
	TotalML     int
	AverageML   float64
	LastFeeding time.Time
}

// ValidFeedType reports whether t is in the closed set of feed types.
func ValidFeedType(t string) bool {
	return t == FeedTypeFormula || t == FeedTypeBreastMilk
}

// InsertFeeding validates and inserts a feeding event, returning its ID.
// Timestamps are normalized to UTC before storage so DATETIME ordering is
// chronological.
func InsertFeeding(db *sql.DB, f Feeding) (int64, error) {
	if f.VolumeML <= 0 {
		return 0, &ValidationError{Field: "volume_ml", Reason: "must be a positive integer"}
	}
	if !ValidFeedType(f.FeedType) {
		return 0, &ValidationError{Field: "feed_type", Reason: "must be one of: formula, breast_milk"}
	}
	if len(f.Note) > MaxNoteLength {
		return 0, &ValidationError{Field: "note", Reason: "too long"}
	}
	if f.OccurredAt.IsZero() {
		return 0, &ValidationError{Field: "occurred_at", Reason: "required"}
	}

	recordedAt := f.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	result, err := db.Exec(
		"INSERT INTO feedings (occurred_at, volume_ml, feed_type, note, recorded_at) VALUES (?, ?, ?, ?, ?)",
		f.OccurredAt.UTC(), f.VolumeML, f.FeedType, f.Note, recordedAt.UTC(),
	)
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}

	return id, nil
}

// QueryRange returns feedings with occurred_at in [start, end), ascending by
// occurred_at. An empty range is an empty slice, not an error.
func QueryRange(db *sql.DB, start, end time.Time) ([]Feeding, error) {
	query := `
		SELECT id, occurred_at, volume_ml, feed_type, note, recorded_at
		FROM feedings
		WHERE occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at ASC
	`

	rows, err := db.Query(query, start.UTC(), end.UTC())
	if err != nil {
		return nil, &StorageError{Op: "query range", Err: err}
	}
	defer rows.Close()

	return scanFeedings(rows)
}

// ListRecent returns the most recent feedings, descending by occurred_at.
// The limit must be positive; values above MaxRecentLimit are clamped.
func ListRecent(db *sql.DB, limit int) ([]Feeding, error) {
	if limit <= 0 {
		return nil, &ValidationError{Field: "limit", Reason: "must be a positive integer"}
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	query := `
		SELECT id, occurred_at, volume_ml, feed_type, note, recorded_at
		FROM feedings
		ORDER BY occurred_at DESC
		LIMIT ?
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, &StorageError{Op: "list recent", Err: err}
	}
	defer rows.Close()

	return scanFeedings(rows)
}

// SummarizeRange computes the summary projection for occurred_at in
// [start, end).
func SummarizeRange(db *sql.DB, start, end time.Time) (Summary, error) {
	var summary Summary
	var total, avg sql.NullFloat64

	err := db.QueryRow(`
		SELECT COUNT(*), SUM(volume_ml), AVG(volume_ml)
		FROM feedings
		WHERE occurred_at >= ? AND occurred_at < ?
	`, start.UTC(), end.UTC()).Scan(&summary.Count, &total, &avg)
	if err != nil {
		return Summary{}, &StorageError{Op: "summarize", Err: err}
	}

	if total.Valid {
		summary.TotalML = int(total.Float64)
	}
	if avg.Valid {
		summary.AverageML = avg.Float64
	}

	if summary.Count > 0 {
		// Selected directly from the DATETIME column so the driver scans it
		// as time.Time; an aggregate here would come back as a bare string.
		err = db.QueryRow(`
			SELECT occurred_at FROM feedings
			WHERE occurred_at >= ? AND occurred_at < ?
			ORDER BY occurred_at DESC LIMIT 1
		`, start.UTC(), end.UTC()).Scan(&summary.LastFeeding)
		if err != nil {
			return Summary{}, &StorageError{Op: "summarize", Err: err}
		}
	}

	return summary, nil
}

func scanFeedings(rows *sql.Rows) ([]Feeding, error) {
	feedings := []Feeding{}
	for rows.Next() {
		var f Feeding
		err := rows.Scan(&f.ID, &f.OccurredAt, &f.VolumeML, &f.FeedType, &f.Note, &f.RecordedAt)
		if err != nil {
			return nil, &StorageError{Op: "scan", Err: err}
		}
		feedings = append(feedings, f)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "scan", Err: err}
	}

	return feedings, nil
}
