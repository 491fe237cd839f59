package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/claimdesk/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "claimdesk",
	Short: "Rule-based insurance claim evaluation over policy documents",
	Long: `claimdesk reads insurance policy documents, answers plain-language claim
queries such as "46-year-old male, knee surgery in Pune, 3-month-old policy"
with a decision, a payable amount and a justification citing the policy
passages it relied on. It runs as a CLI, an HTTP server with a claim desk
dashboard, or an MCP server for AI agents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
