package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "caterserve",
	Short: "Catering back office, card-terminal proxy, and event gallery API",
	Long: `Caterserve is the backend for the Ember & Oak catering site. It serves
the sales, catering-event, cocktail, and content APIs, proxies the
card-payment terminal and the media library, and computes event-gallery
grid layouts for the front end.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".caterserve.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
