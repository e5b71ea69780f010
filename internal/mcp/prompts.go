// ABOUTME: MCP prompt definitions for feedlog
// ABOUTME: Provides static context to AI assistants about feeding tracking
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "feedlog-getting-started",
		Description: "Introduction to feedlog and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Feedlog tracks infant feeding events. All times are Beijing time (UTC+8).

When to use feedlog:
- The user says the baby was fed: call record_feeding with the volume and type
- The user asks how much the baby ate today: call today_summary
- The user asks about past feedings: call recent_logs

Recording times:
- Omit the time to record "now"
- Pass the user's phrasing through: "last night at 10pm", "an hour ago", "10pm"
- A bare clock time always means the most recent past occurrence, never the future
- Echo the normalized time back so the user can confirm the interpretation

Feed types are "formula" or "breast_milk"; ask if the user doesn't say which.`

		result := &mcp.GetPromptResult{
			Description: "Getting started with feedlog",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
