package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"heritage-site/internal/config"
	"heritage-site/pkg/logger"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Operational commands for the heritage site backend",
	Long: `sitectl runs the same revalidation, sitemap and preview logic as the API
from a shell, for use when the CMS webhook or the rendering layer is unavailable.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(revalidateCmd, sitemapCmd, previewTokenCmd)
}

func initializeConfig() error {
	if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(loaded.App.Environment)
	cfg = loaded
	return nil
}
