package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lectern/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration the serve command would run with,
resolved from LECTERN_* environment variables and .env. Secrets are
redacted.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("port:                %d\n", cfg.Port)
	fmt.Printf("database url:        %s\n", cfg.Database.URL)
	fmt.Printf("database auth token: %s\n", redact(cfg.Database.AuthToken))
	fmt.Printf("auth token secret:   %s\n", redact(cfg.Auth.TokenSecret))
	fmt.Printf("auth token issuer:   %s\n", cfg.Auth.TokenIssuer)
	fmt.Printf("storage bucket:      %s\n", orUnset(cfg.Storage.Bucket))
	fmt.Printf("storage creds file:  %s\n", orUnset(cfg.Storage.CredentialsFile))
	fmt.Printf("storage creds json:  %s\n", redact(cfg.Storage.CredentialsJSON))
	fmt.Printf("otel enabled:        %t\n", cfg.OTEL.Enabled)
	fmt.Printf("otel endpoint:       %s\n", orUnset(cfg.OTEL.Endpoint))
	return nil
}

func redact(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
