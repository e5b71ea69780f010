// ABOUTME: Today command for printing the current day's feeding summary
// ABOUTME: Computes day boundaries in the fixed civil zone
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/feedlog/internal/config"
	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
	"github.com/spf13/cobra"
)

var todayJSONOutput bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's feeding summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.InitDB(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		now := time.Now().In(timeparse.Beijing)
		start, end := timeparse.DayBounds(now)

		summary, err := db.SummarizeRange(database, start, end)
		if err != nil {
			return fmt.Errorf("failed to summarize: %w", err)
		}

		if todayJSONOutput {
			out := struct {
				Date          string  `json:"date"`
				TotalFeedings int     `json:"total_feedings"`
				TotalVolumeML int     `json:"total_volume_ml"`
				AverageML     float64 `json:"average_volume_ml"`
				LastFeeding   string  `json:"last_feeding_time,omitempty"`
			}{
				Date:          now.Format("2006-01-02"),
				TotalFeedings: summary.Count,
				TotalVolumeML: summary.TotalML,
				AverageML:     summary.AverageML,
			}
			if summary.Count > 0 {
				out.LastFeeding = summary.LastFeeding.In(timeparse.Beijing).Format("2006-01-02 15:04:05")
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Feedings for %s\n", now.Format("2006-01-02"))
		if summary.Count == 0 {
			color.Yellow("No feedings recorded yet today")
			return nil
		}

		color.Green("%d feedings, %dml total (%.1fml average)", summary.Count, summary.TotalML, summary.AverageML)
		fmt.Printf("Last feeding: %s\n", summary.LastFeeding.In(timeparse.Beijing).Format("15:04"))

		return nil
	},
}

func init() {
	todayCmd.Flags().BoolVar(&todayJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(todayCmd)
}
