package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "macadam",
		Short:         "Incremental asset sync and codegen for game projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to a macadam config file or project directory")

	rootCmd.AddCommand(newSyncCommand(ctx))
	rootCmd.AddCommand(newUploadImageCommand(ctx))
	rootCmd.AddCommand(newCacheMapCommand(ctx))
	rootCmd.AddCommand(newAssetListCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
