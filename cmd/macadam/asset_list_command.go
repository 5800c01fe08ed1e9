package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"macadam/internal/fileutil"
	"macadam/internal/manifest"
	"macadam/internal/syncer"
)

func newAssetListCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "asset-list [project-path]",
		Short: "Write a listing of synced assets and their identifiers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				*ctx.configFlag = args[0]
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			man, err := manifest.Load(cfg.Paths.ManifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = cfg.Paths.AssetListPath
			}
			if output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), syncer.RenderAssetTable(man))
				return nil
			}

			var listing strings.Builder
			if err := syncer.WriteAssetList(man, &listing); err != nil {
				return err
			}
			if err := fileutil.AtomicWrite(output, []byte(listing.String()), 0o644); err != nil {
				return fmt.Errorf("write asset list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d asset(s) to %s\n", man.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (defaults to the configured asset list path; - renders a table to stdout)")

	return cmd
}
