package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/internal/server"
	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/config"
	"github.com/moodcanvas/moodcanvas/pkg/gallery"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the MoodCanvas HTTP API. The server exposes the render pipeline
(POST /api/v1/render), palette derivation (GET /api/v1/palette), and the
render gallery (GET /api/v1/gallery). Cache and gallery backends come
from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr != "" {
				c.Config.Server.Addr = addr
			}

			cch, err := c.serveCache(ctx)
			if err != nil {
				return err
			}
			store, err := c.serveStore(ctx)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close(context.Background())
			}

			var keyer cache.Keyer
			if ns := c.Config.Cache.Namespace; ns != "" {
				keyer = cache.NewScopedKeyer(nil, ns+":")
			}

			runner := pipeline.NewRunner(cch, keyer, c.Logger)
			defer runner.Close()

			srv := server.New(runner, store, c.Logger, server.Config{
				Addr:         c.Config.Server.Addr,
				ReadTimeout:  c.Config.Server.ReadTimeout.Duration(),
				WriteTimeout: c.Config.Server.WriteTimeout.Duration(),
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// serveCache builds the cache backend selected in the config.
func (c *CLI) serveCache(ctx context.Context) (cache.Cache, error) {
	switch c.Config.Cache.Backend {
	case config.CacheBackendRedis:
		c.Logger.Info("using redis cache", "addr", c.Config.Cache.Redis.Addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		c.Logger.Info("using file cache", "dir", dir)
		return cache.NewFileCache(dir)
	}
}

// serveStore builds the gallery backend selected in the config. A nil
// store disables the gallery endpoints.
func (c *CLI) serveStore(ctx context.Context) (gallery.Store, error) {
	switch c.Config.Gallery.Backend {
	case config.GalleryBackendMongo:
		c.Logger.Info("using mongo gallery", "uri", c.Config.Gallery.URI)
		store, err := gallery.NewMongoStore(ctx, gallery.MongoConfig{
			URI:        c.Config.Gallery.URI,
			Database:   c.Config.Gallery.Database,
			Collection: c.Config.Gallery.Collection,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.GalleryBackendMemory:
		return gallery.NewMemoryStore(), nil
	default:
		return nil, nil
	}
}
