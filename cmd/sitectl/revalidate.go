package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"heritage-site/internal/domains/revalidate/service"
	infraCache "heritage-site/internal/infrastructure/cache"
	"heritage-site/internal/shared/pagecache"
	"heritage-site/pkg/cache"
)

var layout bool

var revalidateCmd = &cobra.Command{
	Use:   "revalidate",
	Short: "Invalidate cached pages",
}

var revalidateTypeCmd = &cobra.Command{
	Use:     "type <documentType>",
	Short:   "Invalidate every page that renders a document type",
	Example: "  sitectl revalidate type artefact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := newRevalidateService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := svc.RevalidateType(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

var revalidatePathCmd = &cobra.Command{
	Use:     "path <path>",
	Short:   "Invalidate one page, or a layout and everything under it",
	Example: "  sitectl revalidate path /news\n  sitectl revalidate path / --layout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := newRevalidateService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		kind := pagecache.KindPage
		if layout {
			kind = pagecache.KindLayout
		}
		res, err := svc.RevalidatePath(cmd.Context(), args[0], kind)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	},
}

func init() {
	revalidatePathCmd.Flags().BoolVar(&layout, "layout", false, "treat the path as a layout and invalidate nested pages")
	revalidateCmd.AddCommand(revalidateTypeCmd, revalidatePathCmd)
}

// openPageCache connects Redis. Unlike the API, an unreachable cache is an error here.
var openPageCache = func(ctx context.Context) (cache.Cache, func(), error) {
	rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	return infraCache.NewRedisCache(rc), func() { _ = rc.Close() }, nil
}

func newRevalidateService(cmd *cobra.Command) (service.ServiceInterface, func(), error) {
	c, closeFn, err := openPageCache(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return service.NewRevalidateService(c), closeFn, nil
}

func printResult(cmd *cobra.Command, res *service.Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
