package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

var queryCmd = &cobra.Command{
	Use:   "query [claim]",
	Short: "Evaluate a claim described in plain language",
	Long: `Extracts age, gender, procedure, location and policy duration from the claim,
searches the ingested policy documents and prints the decision, payable amount
and justification.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("session", "", "session id to record the query under")
	queryCmd.Flags().Bool("json", false, "output the full response as JSON")
	queryCmd.Flags().Bool("assess", false, "also print the advisory estimate from the extended rule set")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sessionID, _ := cmd.Flags().GetString("session")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	withAssess, _ := cmd.Flags().GetBool("assess")

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
		fmt.Fprintln(os.Stderr, "No policy documents ingested. Run `claimdesk ingest` to cite policy clauses.")
	}

	resp := a.processor.ProcessQuery(ctx, args[0], sessionID)

	if jsonOutput {
		out := map[string]any{"result": resp}
		if withAssess {
			out["assessment"] = a.processor.Assess(args[0])
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printQueryResponse(resp)
	if withAssess {
		as := a.processor.Assess(args[0])
		fmt.Printf("\nAdvisory estimate (%s):\n%s\n", as.Method, as.Justification)
	}
	return nil
}

func printQueryResponse(resp pipeline.QueryResponse) {
	fmt.Println(resp.Justification)
	fmt.Printf("\nConfidence: %.0f%%   Session: %s   Time: %.3fs\n",
		resp.ConfidenceScore*100, resp.SessionID, resp.ProcessingTime)

	if len(resp.ReferencedClauses) > 0 {
		fmt.Println("\nReferenced clauses:")
		for i, c := range resp.ReferencedClauses {
			fmt.Printf("  %d. %s (chunk %d, relevance %.2f)\n", i+1, c.Document, c.ChunkIndex, c.RelevanceScore)
			fmt.Printf("     %s\n", truncate(c.Content, 120))
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
