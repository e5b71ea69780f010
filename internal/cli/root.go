// ABOUTME: Root command definition and CLI setup
// ABOUTME: Handles global flags and command initialization
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "feedlog",
	Short: "Infant feeding tracker",
	Long:  `Feedlog records infant feeding events to SQLite and exposes them to AI assistants over MCP, locally or through a relay gateway.`,
}

func Execute() error {
	return rootCmd.Execute()
}
