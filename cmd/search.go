package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find the policy passages most similar to the text",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("top-k", 0, "maximum number of passages (default search.top_k)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	topK, _ := cmd.Flags().GetInt("top-k")
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

	if a.chunks.Len() == 0 {
		fmt.Println("No policy documents ingested. Run `claimdesk ingest` first.")
		return nil
	}

	matches := a.processor.SearchSimilarChunks(args[0], topK)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(matches))
	for i, m := range matches {
		fmt.Printf("  %d. [%.2f] %s (chunk %d)\n", i+1, m.Similarity, m.Document, m.ChunkIndex)
		fmt.Printf("     %s\n\n", truncate(m.Text, 120))
	}
	return nil
}
