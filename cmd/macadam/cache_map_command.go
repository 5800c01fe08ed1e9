package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"macadam/internal/manifest"
	"macadam/internal/services/assetcloud"
	"macadam/internal/syncer"
)

func newCacheMapCommand(ctx *commandContext) *cobra.Command {
	var cacheDirFlag string
	var indexFileFlag string

	cmd := &cobra.Command{
		Use:   "create-cache-map [project-path]",
		Short: "Download synced remote assets into a local cache with a TOML index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				*ctx.configFlag = args[0]
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			man, err := manifest.Load(cfg.Paths.ManifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}
			if man.Len() == 0 {
				return fmt.Errorf("manifest %s is empty; run a sync first", cfg.Paths.ManifestPath)
			}

			client, err := assetcloud.New(cfg.Remote.BaseURL, assetcloud.Credentials{
				APIKey:  cfg.Remote.APIKey,
				GroupID: cfg.Remote.GroupID,
				UserID:  cfg.Remote.UserID,
			}, logger)
			if err != nil {
				return err
			}

			return syncer.CreateCacheMap(cmd.Context(), man, client, logger, syncer.CacheMapOptions{
				CacheDir:  cacheDirFlag,
				IndexFile: indexFileFlag,
			})
		},
	}

	cmd.Flags().StringVar(&cacheDirFlag, "cache-dir", "", "Directory to download remote assets into")
	cmd.Flags().StringVar(&indexFileFlag, "index-file", "", "TOML index mapping identifiers to cached files")
	_ = cmd.MarkFlagRequired("cache-dir")
	_ = cmd.MarkFlagRequired("index-file")

	return cmd
}
