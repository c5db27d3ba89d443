package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Lecture capture web application",
	Long: `lectern serves a web application over a store of user-owned lectures:
recorded audio that an external pipeline transcribes.

Configuration comes from LECTERN_* environment variables; a .env file
in the working directory is loaded when present.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is the common case, not an error.
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
