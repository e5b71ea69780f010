// ABOUTME: MCP resource implementations for feedlog
// ABOUTME: Provides queryable context about recent feeding activity
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	todayResource := &mcp.Resource{
		URI:         "feedlog://today-summary",
		Name:        "Today Summary",
		Description: "Today's feeding totals in Beijing time",
		MIMEType:    "text/markdown",
	}
	s.mcpServer.AddResource(todayResource, s.handleTodaySummaryResource)

	recentResource := &mcp.Resource{
		URI:         "feedlog://recent-feedings",
		Name:        "Recent Feedings",
		Description: "Last 10 feeding records with full fields",
		MIMEType:    "application/json",
	}
	s.mcpServer.AddResource(recentResource, s.handleRecentFeedings)
}

// handleTodaySummaryResource implements the today-summary resource.
func (s *Server) handleTodaySummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := s.civilNow()
	start, end := timeparse.DayBounds(now)

	feedings, err := db.QueryRange(s.db, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's feedings: %w", err)
	}

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("# Feedings for %s\n\n", now.Format("2006-01-02")))

	total := 0
	for _, f := range feedings {
		ts := f.OccurredAt.In(timeparse.Beijing).Format("15:04")
		summary.WriteString(fmt.Sprintf("- **%s**: %dml (%s)\n", ts, f.VolumeML, f.FeedType))
		total += f.VolumeML
	}

	if len(feedings) == 0 {
		summary.WriteString("No feedings recorded yet today.\n")
	} else {
		summary.WriteString(fmt.Sprintf("\nTotal: %dml over %d feedings\n", total, len(feedings)))
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "feedlog://today-summary",
				MIMEType: "text/markdown",
				Text:     summary.String(),
			},
		},
	}

	return result, nil
}

// handleRecentFeedings implements the recent-feedings resource.
func (s *Server) handleRecentFeedings(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	feedings, err := db.ListRecent(s.db, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedings: %w", err)
	}

	data, err := json.MarshalIndent(feedings, "", "  ")
	if err != nil {
		return nil, err
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "feedlog://recent-feedings",
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}

	return result, nil
}
