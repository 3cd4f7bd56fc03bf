// Command migrate applies the SQL migrations in migrations/ with Atlas.
// Deploy tooling runs it against the target database before rolling the
// API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"realty-api/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
)

func main() {
	// .env はローカル開発用、本番環境では環境変数を直接渡す
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	if err := run(context.Background(), cfg.DB); err != nil {
		slog.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, dbCfg config.DBConfig) error {
	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}

	// The migrations directory uses golang-migrate naming, which atlas
	// reads without a checksum file.
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: "file://migrations?format=golang-migrate",
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("migrations applied",
		"current", res.Current,
		"target", res.Target,
		"applied", len(res.Applied))
	return nil
}
