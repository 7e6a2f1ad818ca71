package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"prize-wheel/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

type migrateConfig struct {
	SchemaFile string        `envconfig:"MIGRATION_SCHEMA" default:"file://migrations/001_promotion_state.sql"`
	DevURL     string        `envconfig:"ATLAS_DEV_URL" default:"docker://postgres/17/dev"`
	AtlasBin   string        `envconfig:"ATLAS_BIN" default:"atlas"`
	DryRun     bool          `envconfig:"MIGRATION_DRY_RUN" default:"false"`
	Timeout    time.Duration `envconfig:"MIGRATION_TIMEOUT" default:"2m"`
}

// Applies the promotion_state schema to the database named by the DB_* variables.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var mc migrateConfig
	if err := envconfig.Process("", &mc); err != nil {
		logger.Error("failed to read migration config", "error", err.Error())
		os.Exit(1)
	}
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		logger.Error("failed to read database config", "error", err.Error())
		os.Exit(1)
	}

	wd, err := os.Getwd()
	if err != nil {
		logger.Error("failed to resolve working directory", "error", err.Error())
		os.Exit(1)
	}
	client, err := atlasexec.NewClient(wd, mc.AtlasBin)
	if err != nil {
		logger.Error("failed to initialize atlas client", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mc.Timeout)
	defer cancel()

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         dbCfg.BuildDSN(),
		To:          mc.SchemaFile,
		DevURL:      mc.DevURL,
		DryRun:      mc.DryRun,
		AutoApprove: true,
	})
	if err != nil {
		logger.Error("schema apply failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("schema applied",
		"database", dbCfg.DBName,
		"applied", len(res.Changes.Applied),
		"pending", len(res.Changes.Pending),
		"dry_run", mc.DryRun)
}
