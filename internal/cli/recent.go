// ABOUTME: Recent command for displaying the latest feedings
// ABOUTME: Supports table and JSON output formats
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/harper/feedlog/internal/config"
	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
	"github.com/spf13/cobra"
)

var (
	recentLimit      int
	recentJSONOutput bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent feedings",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.InitDB(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		feedings, err := db.ListRecent(database, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to list feedings: %w", err)
		}

		if recentJSONOutput {
			data, err := json.MarshalIndent(feedings, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		// Print table
		fmt.Println("ID\tTime\t\t\tVolume\tType\t\tNote")
		fmt.Println("--\t----\t\t\t------\t----\t\t----")
		for _, f := range feedings {
			timestamp := f.OccurredAt.In(timeparse.Beijing).Format("2006-01-02 15:04")
			fmt.Printf("%d\t%s\t%dml\t%s\t%s\n", f.ID, timestamp, f.VolumeML, f.FeedType, f.Note)
		}

		return nil
	},
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 5, "Number of feedings to show")
	recentCmd.Flags().BoolVar(&recentJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(recentCmd)
}
