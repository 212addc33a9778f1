package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"heritage-site/internal/shared"
	"heritage-site/pkg/jwt"
)

var previewTokenCmd = &cobra.Command{
	Use:   "preview-token",
	Short: "Mint a preview cookie value for testing draft rendering",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := jwt.NewManager(cfg.Preview.Secret, cfg.Preview.CookieTTL).GeneratePreviewToken()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", shared.PreviewCookieName, token)
		return err
	},
}
