package main

import (
	"context"

	"github.com/dsjohal14/stockroom/internal/libs/config"
	"github.com/dsjohal14/stockroom/internal/libs/obs"
	"github.com/dsjohal14/stockroom/internal/report"
	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	file     string
	backend  string
	boltPath string
	logLevel string
	color    string
	hash     string
	modulus  int
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	a := &app{}

	root := &cobra.Command{
		Use:           "stockroom",
		Short:         "Flat-file inventory manager",
		Long:          "Add, delete, upgrade and search inventory items kept as particulars,quantity lines.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, flags)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.file, "file", "", "Inventory file (default $INVENTORY_FILE or inventory.txt)")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend: file, bolt, postgres")
	pf.StringVar(&flags.boltPath, "bolt-path", "", "bbolt database path for the bolt backend")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (default $LOG_LEVEL or info)")
	pf.StringVar(&flags.color, "color", "auto", "Color output: auto, always, never")
	pf.StringVar(&flags.hash, "hash", "", "Search hash: additive or polynomial")
	pf.IntVar(&flags.modulus, "modulus", 0, "Search hash modulus")

	root.AddCommand(
		newSearchCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
		newUpdateCmd(a),
		newMenuCmd(a),
	)
	return root
}

// open loads config, applies flag overrides and opens the store
func (a *app) open(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if flags.file != "" {
		cfg.InventoryFile = flags.file
	}
	if flags.backend != "" {
		cfg.StoreBackend = flags.backend
	}
	if flags.boltPath != "" {
		cfg.BoltPath = flags.boltPath
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.hash != "" {
		cfg.SearchHash = flags.hash
	}
	if flags.modulus != 0 {
		cfg.SearchModulus = flags.modulus
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	obs.InitLoggerTo(cfg.LogLevel, cmd.ErrOrStderr())
	a.logger = obs.Logger("cli")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.Open(ctx, db.Options{
		Backend:     cfg.StoreBackend,
		File:        cfg.InventoryFile,
		BoltPath:    cfg.BoltPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return err
	}

	a.store = store
	a.query = inventory.NewService(cfg.Matcher(), append(cfg.QueryOptions(), inventory.WithLogger(a.logger))...)
	a.out = cmd.OutOrStdout()
	a.color = report.ResolveColor(flags.color, a.out)

	a.logger.Debug().
		Str("backend", cfg.StoreBackend).
		Str("file", cfg.InventoryFile).
		Int("modulus", cfg.SearchModulus).
		Str("hash", cfg.SearchHash).
		Msg("inventory opened")
	return nil
}
