// ABOUTME: MCP server implementation for feedlog
// ABOUTME: Provides feeding tools and resources for AI assistants
package mcp

import (
	"context"
	"database/sql"
	"time"

	"github.com/harper/feedlog/internal/timeparse"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultFutureGrace is how far ahead of "now" a normalized feeding time may
// land before it is rejected. Backfill is the point of the feature; forward
// dating is not.
const DefaultFutureGrace = 5 * time.Minute

// Server wraps the MCP server with feedlog-specific functionality. Each tool
// invocation is stateless; the open database handle is the only thing carried
// across calls.
type Server struct {
	mcpServer   *mcp.Server
	db          *sql.DB
	now         func() time.Time
	futureGrace time.Duration
}

// NewServer creates a new feedlog MCP server around an open database.
func NewServer(database *sql.DB) *Server {
	impl := &mcp.Implementation{
		Name:    "feedlog",
		Version: "0.3.0",
	}

	server := &Server{
		mcpServer:   mcp.NewServer(impl, nil),
		db:          database,
		now:         time.Now,
		futureGrace: DefaultFutureGrace,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// SetFutureGrace overrides the future-dating grace window.
func (s *Server) SetFutureGrace(d time.Duration) {
	s.futureGrace = d
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// civilNow returns the injected clock reading in the fixed civil zone.
func (s *Server) civilNow() time.Time {
	return s.now().In(timeparse.Beijing)
}
