package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest policy documents into the claim database",
	Long: `Discovers PDF, text, Markdown and HTML policy documents under dir (default:
documents_dir from the config), extracts their text and policy information and
stores them for querying. Unchanged documents are restored from the database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	report, err := a.ingestDocuments(ctx, dir, progress.NewReporter("Ingesting"))
	if err != nil {
		return err
	}

	fmt.Printf("\nIngestion complete.\n")
	fmt.Printf("  Files found:  %d\n", report.Total)
	fmt.Printf("  Ingested:     %d\n", report.Ingested)
	fmt.Printf("  Restored:     %d\n", report.Restored)
	fmt.Printf("  Skipped:      %d\n", report.Skipped)
	fmt.Printf("  Failed:       %d\n", report.Failed)
	fmt.Printf("  Total chunks: %s\n", humanize.Comma(int64(a.chunks.ChunkCount())))

	if report.Failed > 0 {
		failed := false
		docs, err := a.documents.Find(ctx, documents.Filter{Processed: &failed})
		if err != nil {
			return fmt.Errorf("listing failed documents: %w", err)
		}
		fmt.Println("\nFailed documents:")
		for _, d := range docs {
			fmt.Printf("  %s: %s\n", d.Name, d.Error)
		}
	}
	return nil
}
