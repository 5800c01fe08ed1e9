package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"macadam/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = config.ConfigFileName
			}
			abs, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			if err := config.WriteSample(abs); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", abs)
			fmt.Fprintf(out, "Edit the file to declare your [[inputs]] rules, and set %s before syncing to the remote target.\n", config.EnvAPIKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Where to write the config (defaults to ./"+config.ConfigFileName+")")

	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:    %s\n", ctx.configPath)
			fmt.Fprintf(out, "project:   %s\n", cfg.Name)
			fmt.Fprintf(out, "root:      %s\n", cfg.ProjectRoot())
			fmt.Fprintf(out, "manifest:  %s\n", cfg.Paths.ManifestPath)
			fmt.Fprintf(out, "luau:      %s\n", cfg.Codegen.LuauPath)
			fmt.Fprintf(out, "typescript: %s\n", cfg.Codegen.TypeScriptPath)
			fmt.Fprintf(out, "inputs:    %d rule(s)\n", len(cfg.Inputs))
			for _, rule := range cfg.Inputs {
				fmt.Fprintf(out, "  - glob=%s base=%s codegen=%t packable=%t\n",
					rule.Glob, rule.BasePath, rule.Codegen, rule.Packable)
			}
			return nil
		},
	}
}
