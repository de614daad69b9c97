package cmd

import (
	"github.com/spf13/cobra"

	"github.com/emberoak/caterserve/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize caterserve configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the server and writes a .caterserve.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
