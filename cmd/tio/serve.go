package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/ETS-Android5/tensorio-android/internal/api"
	"github.com/ETS-Android5/tensorio-android/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		batchTTL    time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the quantization and batch API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.DurationFlag{
				Name:        "batch-ttl",
				Usage:       "drop batches idle for this long (0 keeps them)",
				Value:       15 * time.Minute,
				Destination: &batchTTL,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, cfg, &addr, &batchTTL)
			log := logger.FromContext(ctx)

			store := api.NewBatchStore(batchTTL)
			store.OnEvicted(func(id string) {
				log.Debug("batch evicted", "id", id)
			})
			server := api.NewServer(store, log.With("component", "api"))

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "batch_ttl", batchTTL)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
