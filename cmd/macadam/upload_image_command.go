package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"macadam/internal/config"
	"macadam/internal/preprocess"
	"macadam/internal/services/assetcloud"
)

func newUploadImageCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var descriptionFlag string
	var apiKeyFlag string
	var groupIDFlag uint64
	var userIDFlag uint64

	cmd := &cobra.Command{
		Use:   "upload-image <path>",
		Short: "Upload a single image and print its asset ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]
			raw, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			encoded, _, err := (preprocess.Passthrough{}).Preprocess(raw)
			if err != nil {
				return fmt.Errorf("preprocess image: %w", err)
			}

			name := strings.TrimSpace(nameFlag)
			if name == "" {
				name = defaultImageName(imagePath)
			}

			creds := resolveCredentials(apiKeyFlag, groupIDFlag, userIDFlag)
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := assetcloud.New(config.Default().Remote.BaseURL, creds, logger)
			if err != nil {
				return err
			}

			id, err := client.UploadWithModerationRetry(cmd.Context(), assetcloud.UploadRequest{
				Name:        name,
				Description: descriptionFlag,
				Contents:    encoded,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Display name for the uploaded asset (defaults to the title-cased file stem)")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "Description for the uploaded asset")
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key for the asset-hosting service (falls back to "+config.EnvAPIKey+")")
	cmd.Flags().Uint64Var(&groupIDFlag, "group-id", 0, "Upload on behalf of this group")
	cmd.Flags().Uint64Var(&userIDFlag, "user-id", 0, "Upload on behalf of this user (falls back to "+config.EnvUserID+")")

	return cmd
}

// defaultImageName derives a display name from the file stem, title-cased
// with separators turned into spaces.
func defaultImageName(imagePath string) string {
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return cases.Title(language.English).String(stem)
}

// resolveCredentials applies flag-over-environment precedence.
func resolveCredentials(apiKey string, groupID, userID uint64) assetcloud.Credentials {
	if strings.TrimSpace(apiKey) == "" {
		apiKey = strings.TrimSpace(os.Getenv(config.EnvAPIKey))
	}
	if groupID == 0 && userID == 0 {
		if raw := strings.TrimSpace(os.Getenv(config.EnvUserID)); raw != "" {
			if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
				userID = parsed
			}
		}
	}
	return assetcloud.Credentials{APIKey: apiKey, GroupID: groupID, UserID: userID}
}
