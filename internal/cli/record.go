// ABOUTME: Record command for logging feeding events
// ABOUTME: Handles volume input, feed type, and time expression flags
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/feedlog/internal/config"
	"github.com/harper/feedlog/internal/db"
	"github.com/harper/feedlog/internal/timeparse"
	"github.com/spf13/cobra"
)

var (
	recordFeedType string
	recordTime     string
	recordNote     string
)

var recordCmd = &cobra.Command{
	Use:     "record <volume_ml>",
	Aliases: []string{"r"},
	Short:   "Record a feeding",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		volume, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("volume must be an integer: %q", args[0])
		}

		occurredAt, err := timeparse.Normalize(recordTime, time.Now())
		if err != nil {
			return err
		}

		// Open database
		database, err := db.InitDB(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			if closeErr := database.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", closeErr)
			}
		}()

		id, err := db.InsertFeeding(database, db.Feeding{
			OccurredAt: occurredAt,
			VolumeML:   volume,
			FeedType:   recordFeedType,
			Note:       recordNote,
		})
		if err != nil {
			return fmt.Errorf("failed to record feeding: %w", err)
		}

		fmt.Printf("Recorded %dml (%s) at %s (ID: %d)\n",
			volume, recordFeedType, occurredAt.Format("2006-01-02 15:04:05"), id)

		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordFeedType, "type", "t", db.FeedTypeFormula, "Feed type: formula or breast_milk")
	recordCmd.Flags().StringVar(&recordTime, "time", "", "When the feeding happened (e.g. 'last night at 10pm', '2 hours ago'); empty means now")
	recordCmd.Flags().StringVar(&recordNote, "note", "", "Optional note")
	rootCmd.AddCommand(recordCmd)
}
