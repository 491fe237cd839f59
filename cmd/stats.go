package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document, chunk, query and session counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := openApp(ctx, cfg, newLogger(cfg))
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.processor.Stats(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Documents: %s\n", humanize.Comma(int64(stats.TotalDocuments)))
		fmt.Printf("Chunks:    %s\n", humanize.Comma(int64(stats.TotalChunks)))
		fmt.Printf("Queries:   %s\n", humanize.Comma(int64(stats.TotalQueries)))
		fmt.Printf("Sessions:  %s\n", humanize.Comma(int64(stats.TotalSessions)))
		fmt.Printf("Status:    %s\n", stats.SystemStatus)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}
