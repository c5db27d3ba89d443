package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lectern/internal/adapters/turso"
	"lectern/internal/config"
	"lectern/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations against the configured database.

Without arguments, migrates to the latest version. With a version
argument, migrates up or down to that exact version (0 reverts
everything).

Examples:
  lectern migrate      # Migrate to the latest version
  lectern migrate 1    # Migrate to version 1
  lectern migrate 0    # Revert all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := turso.NewDB(cfg.URL, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if len(args) == 0 {
		if err := migrate.RunAll(ctx, db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		target, err := strconv.Atoi(args[0])
		if err != nil || target < 0 {
			return fmt.Errorf("invalid migration version %q", args[0])
		}
		if err := migrate.To(ctx, db, target); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	version, dirty, err := migrate.Version(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d, manual repair required", version)
	}
	fmt.Printf("database at version %d\n", version)
	return nil
}
