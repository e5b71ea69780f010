// ABOUTME: Gateway subcommand for bridging a relay endpoint to the tool process
// ABOUTME: Loads config, handles signals, and runs the reconnect loop
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harper/feedlog/internal/config"
	"github.com/harper/feedlog/internal/gateway"
	"github.com/harper/feedlog/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var gatewayConfigPath string

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run the relay gateway",
	Long: `Connect to a relay endpoint over websocket and bridge it to a locally
spawned feedlog MCP server. The connection is re-established with backoff
after transient failures; the tool process survives transport drops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if present (don't error if missing)
		if err := godotenv.Load(); err == nil {
			logging.Debug("gateway", "loaded .env file")
		}

		cfgPath := gatewayConfigPath
		if cfgPath == "" {
			cfgPath = config.GatewayConfigPath()
		}

		cfg, err := config.LoadGatewayConfig(cfgPath)
		if err != nil {
			return err
		}

		gw := gateway.New(gateway.Config{
			RelayURL:       cfg.RelayURL,
			ToolCommand:    cfg.ToolCommand,
			ToolArgs:       cfg.ToolArgs,
			InitialBackoff: cfg.InitialBackoff.Duration,
			MaxBackoff:     cfg.MaxBackoff.Duration,
			Jitter:         cfg.Jitter,
		})
		gw.OnStateChange(func(s gateway.State) {
			switch s {
			case gateway.StateConnected:
				color.Green("connected to %s", cfg.RelayURL)
			case gateway.StateDisconnected:
				color.Yellow("disconnected")
			}
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logging.Info("gateway", "shutting down")
			cancel()
		}()

		return gw.Run(ctx)
	},
}

func init() {
	gatewayCmd.Flags().StringVarP(&gatewayConfigPath, "config", "c", "", "Path to gateway config (default: XDG config dir)")
	rootCmd.AddCommand(gatewayCmd)
}
