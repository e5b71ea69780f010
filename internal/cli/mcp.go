// ABOUTME: MCP subcommand for running the feedlog tool server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/feedlog/internal/config"
	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/logging"
	"github.com/harper/feedlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the feedlog MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to record and query feedings over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.InitDB(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = database.Close() }()

		server := mcp.NewServer(database)

		if grace := os.Getenv("FEEDLOG_FUTURE_GRACE"); grace != "" {
			d, err := time.ParseDuration(grace)
			if err != nil {
				return fmt.Errorf("bad FEEDLOG_FUTURE_GRACE: %w", err)
			}
			server.SetFutureGrace(d)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logging.Info("mcp", "serving on stdio (db: %s)", config.DBPath())
		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
