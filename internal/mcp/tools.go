// ABOUTME: MCP tool implementations for feedlog
// ABOUTME: Provides tools for recording and querying feeding events
package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// civilTimeFormat is how instants are echoed back to the agent, always in
// the fixed civil zone.
const civilTimeFormat = "2006-01-02 15:04:05"

const timezoneLabel = "Asia/Shanghai (UTC+8)"

// defaultRecentLimit matches the original tracker's default page size.
const defaultRecentLimit = 5

// RecordFeedingInput defines the input for the record_feeding tool.
type RecordFeedingInput struct {
	VolumeML int    `json:"volume_ml" jsonschema:"The amount of milk in milliliters"`
	FeedType string `json:"feed_type" jsonschema:"The type of feeding: formula or breast_milk"`
	Time     string `json:"time,omitempty" jsonschema:"When the feeding happened. Accepts phrases like 'last night at 10pm', '2 hours ago', '10pm', or an explicit 'YYYY-MM-DD HH:MM:SS'. Empty means now."`
	Note     string `json:"note,omitempty" jsonschema:"Optional free-text note"`
}

// RecordFeedingOutput defines the output for the record_feeding tool.
type RecordFeedingOutput struct {
	ID         int64  `json:"id" jsonschema:"The ID of the recorded feeding"`
	OccurredAt string `json:"occurred_at" jsonschema:"The normalized feeding time in Beijing time"`
	VolumeML   int    `json:"volume_ml" jsonschema:"The recorded volume"`
	FeedType   string `json:"feed_type" jsonschema:"The recorded feed type"`
	Note       string `json:"note,omitempty" jsonschema:"The recorded note"`
}

// TodaySummaryOutput defines the output for the today_summary tool.
type TodaySummaryOutput struct {
	Date            string  `json:"date" jsonschema:"The civil date the summary covers"`
	Timezone        string  `json:"timezone" jsonschema:"The civil time zone used for day boundaries"`
	TotalFeedings   int     `json:"total_feedings" jsonschema:"Number of feedings today"`
	TotalVolumeML   int     `json:"total_volume_ml" jsonschema:"Total volume today in milliliters"`
	AverageVolumeML float64 `json:"average_volume_ml" jsonschema:"Average volume per feeding, rounded to one decimal"`
	LastFeedingTime string  `json:"last_feeding_time,omitempty" jsonschema:"Most recent feeding today in Beijing time; absent when there are no feedings yet"`
}

// RecentLogsInput defines the input for the recent_logs tool.
type RecentLogsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of feedings to return (default 5, max 100)"`
}

// FeedingData is one feeding in a recent_logs response.
type FeedingData struct {
	ID         int64  `json:"id"`
	OccurredAt string `json:"occurred_at"`
	VolumeML   int    `json:"volume_ml"`
	FeedType   string `json:"feed_type"`
	Note       string `json:"note,omitempty"`
}

// RecentLogsOutput defines the output for the recent_logs tool.
type RecentLogsOutput struct {
	Feedings []FeedingData `json:"feedings" jsonschema:"Recent feedings, most recent first"`
	Count    int           `json:"count" jsonschema:"Number of feedings returned"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	recordTool := &mcp.Tool{
		Name:        "record_feeding",
		Description: "Record a feeding event. Use when the user says the baby was fed. The time accepts natural phrases ('last night at 10pm', 'an hour ago') and defaults to now.",
	}
	mcp.AddTool(s.mcpServer, recordTool, s.handleRecordFeeding)

	summaryTool := &mcp.Tool{
		Name:        "today_summary",
		Description: "Get total volume, feeding count, average volume, and last feeding time for today (Beijing time).",
	}
	mcp.AddTool(s.mcpServer, summaryTool, s.handleTodaySummary)

	recentTool := &mcp.Tool{
		Name:        "recent_logs",
		Description: "List the most recent feeding records, newest first.",
	}
	mcp.AddTool(s.mcpServer, recentTool, s.handleRecentLogs)
}

// canonicalFeedType folds common spellings into the closed set before the
// store validates it.
func canonicalFeedType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "breastmilk", "breast-milk", "breast milk":
		return db.FeedTypeBreastMilk
	default:
		return strings.ToLower(strings.TrimSpace(t))
	}
}

// handleRecordFeeding implements the record_feeding tool. Validation and
// parse failures come back as tool-level errors so the agent can correct its
// input and retry.
func (s *Server) handleRecordFeeding(ctx context.Context, req *mcp.CallToolRequest, input RecordFeedingInput) (*mcp.CallToolResult, RecordFeedingOutput, error) {
	now := s.civilNow()

	occurredAt, err := timeparse.Normalize(input.Time, now)
	if err != nil {
		return nil, RecordFeedingOutput{}, err
	}

	if occurredAt.After(now.Add(s.futureGrace)) {
		return nil, RecordFeedingOutput{}, &db.ValidationError{
			Field:  "time",
			Reason: fmt.Sprintf("resolves to %s, which is in the future", occurredAt.Format(civilTimeFormat)),
		}
	}

	feedType := canonicalFeedType(input.FeedType)

	id, err := db.InsertFeeding(s.db, db.Feeding{
		OccurredAt: occurredAt,
		VolumeML:   input.VolumeML,
		FeedType:   feedType,
		Note:       input.Note,
		RecordedAt: now,
	})
	if err != nil {
		return nil, RecordFeedingOutput{}, err
	}

	occurredStr := occurredAt.In(timeparse.Beijing).Format(civilTimeFormat)

	output := RecordFeedingOutput{
		ID:         id,
		OccurredAt: occurredStr,
		VolumeML:   input.VolumeML,
		FeedType:   feedType,
		Note:       input.Note,
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Recorded feeding of %dml (%s) at %s (ID: %d)", input.VolumeML, feedType, occurredStr, id),
			},
		},
	}

	return result, output, nil
}

// handleTodaySummary implements the today_summary tool.
func (s *Server) handleTodaySummary(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, TodaySummaryOutput, error) {
	now := s.civilNow()
	start, end := timeparse.DayBounds(now)

	summary, err := db.SummarizeRange(s.db, start, end)
	if err != nil {
		return nil, TodaySummaryOutput{}, err
	}

	output := TodaySummaryOutput{
		Date:            now.Format("2006-01-02"),
		Timezone:        timezoneLabel,
		TotalFeedings:   summary.Count,
		TotalVolumeML:   summary.TotalML,
		AverageVolumeML: math.Round(summary.AverageML*10) / 10,
	}

	var text string
	if summary.Count == 0 {
		text = fmt.Sprintf("No feedings recorded yet today (%s).", output.Date)
	} else {
		output.LastFeedingTime = summary.LastFeeding.In(timeparse.Beijing).Format(civilTimeFormat)
		text = fmt.Sprintf("Today (%s): %d feedings, %dml total, %.1fml average, last at %s",
			output.Date, output.TotalFeedings, output.TotalVolumeML, output.AverageVolumeML, output.LastFeedingTime)
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}

	return result, output, nil
}

// handleRecentLogs implements the recent_logs tool.
func (s *Server) handleRecentLogs(ctx context.Context, req *mcp.CallToolRequest, input RecentLogsInput) (*mcp.CallToolResult, RecentLogsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultRecentLimit
	}

	feedings, err := db.ListRecent(s.db, limit)
	if err != nil {
		return nil, RecentLogsOutput{}, err
	}

	output := RecentLogsOutput{
		Feedings: make([]FeedingData, 0, len(feedings)),
		Count:    len(feedings),
	}
	for _, f := range feedings {
		output.Feedings = append(output.Feedings, FeedingData{
			ID:         f.ID,
			OccurredAt: f.OccurredAt.In(timeparse.Beijing).Format(civilTimeFormat),
			VolumeML:   f.VolumeML,
			FeedType:   f.FeedType,
			Note:       f.Note,
		})
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Returned %d recent feedings", output.Count),
			},
		},
	}

	return result, output, nil
}
