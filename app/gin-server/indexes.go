package main

import (
	"github.com/spf13/cobra"

	"github.com/yoockh/languageclub/config"
	"github.com/yoockh/languageclub/internal/logger"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg.LogLevel)

		ctx := cmd.Context()
		client, err := config.NewMongo(ctx, cfg)
		if client != nil {
			defer func() { _ = client.Disconnect(ctx) }()
		}
		if err != nil {
			return err
		}

		if err := config.EnsureMongoIndexes(ctx, client.Database(cfg.MongoDB)); err != nil {
			return err
		}
		log.WithField("db", cfg.MongoDB).Info("indexes ensured")
		return nil
	},
}
