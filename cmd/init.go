package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/claimdesk/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize claimdesk configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure claimdesk and writes the config file (default .claimdesk.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
