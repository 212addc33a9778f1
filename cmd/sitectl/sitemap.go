package main

import (
	"os"

	"github.com/spf13/cobra"

	"heritage-site/internal/domains/content/repository"
	"heritage-site/internal/domains/seo"
	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/pkg/logger"
)

var sitemapOut string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Build sitemap.xml from the published content",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := cfg.ContentStore
		storeCfg := contentstore.NewPublicConfig(cs.ProjectID, cs.Dataset, cs.APIVersion, cs.UseCDN)
		storeCfg.BaseURL = cs.BaseURL
		storeCfg.Timeout = cs.Timeout

		client, err := contentstore.NewClient(storeCfg)
		if err != nil {
			return err
		}

		set, err := seo.NewSitemapBuilder(repository.NewSanityRepository(client), cfg.App.SiteURL).Build(cmd.Context())
		if err != nil {
			// same degradation as the route: static entries are still written
			logger.Warn("sitemap built without dynamic entries", map[string]interface{}{"error": err.Error()})
		}

		body, err := set.Marshal()
		if err != nil {
			return err
		}

		if sitemapOut == "" || sitemapOut == "-" {
			_, err = cmd.OutOrStdout().Write(body)
			return err
		}
		return os.WriteFile(sitemapOut, body, 0o644)
	},
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "-", "output file, - for stdout")
}
