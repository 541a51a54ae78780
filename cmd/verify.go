package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/logger"
	"github.com/Rana718/Tasksim/internal/seeder"
	"github.com/Rana718/Tasksim/internal/verify"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrVerificationFailed marks a report with integrity violations.
var ErrVerificationFailed = errors.New("verification failed")

var (
	verifyDB     string
	verifyFormat string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of a generated dataset",
	Long: `Run the integrity checks against the configured database:
- Foreign key integrity of every relation
- Temporal consistency (completion after creation, children after parents)
- Summary statistics and record counts

Exits with status 1 when a check fails or the database file does not exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if verifyDB != "" {
			cfg.Database.OutputPath = verifyDB
		}

		closer, err := logger.Setup(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		defer closer.Close()

		target := cfg.Database.OutputPath
		if cfg.IsSQLite() {
			if err := verify.CheckDatabaseFile(target); err != nil {
				return fmt.Errorf("%w (run 'tasksim generate' first)", err)
			}
		}

		ctx := context.Background()
		store, err := database.Open(ctx, cfg.Database.Provider, target)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.IsSQLite() && verifyFormat == "text" {
			if sum, err := seeder.ReadManifest(seeder.ManifestPath(database.SQLitePath(target))); err == nil {
				color.Cyan("📄 Generated with seed %d at %s", sum.Seed, sum.StartedAt.Format("2006-01-02 15:04:05"))
			}
		}

		report, err := verify.New(store).Run(ctx)
		if err != nil {
			return err
		}
		if err := report.Render(cmd.OutOrStdout(), verifyFormat); err != nil {
			return err
		}
		if !report.Passed {
			return ErrVerificationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyDB, "db", "", "Database file or DSN (overrides database.output_path)")
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "o", "text", "Report format: text, json or yaml")
}
