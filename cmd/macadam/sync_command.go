package main

import (
	"time"

	"github.com/spf13/cobra"

	"macadam/internal/preprocess"
	"macadam/internal/syncer"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var targetFlag string
	var retryFlag int
	var retryDelayFlag int

	cmd := &cobra.Command{
		Use:   "sync [config-path]",
		Short: "Upload changed assets and regenerate code bindings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				*ctx.configFlag = args[0]
			}
			target, err := syncer.ParseTarget(targetFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			s := syncer.New(cfg, preprocess.Passthrough{}, logger, syncer.Options{
				Target:     target,
				Retry:      retryFlag,
				RetryDelay: time.Duration(retryDelayFlag) * time.Second,
			})
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&targetFlag, "target", "remote", "Upload target: remote, none, debug, or local")
	cmd.Flags().IntVar(&retryFlag, "retry", 0, "Extra upload attempts when the service rate limits")
	cmd.Flags().IntVar(&retryDelayFlag, "retry-delay", 60, "Seconds to wait between rate-limit retries")

	return cmd
}
