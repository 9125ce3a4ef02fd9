package main

import (
	"context"

	"github.com/desertthunder/lyriek/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the engine and exposes its latest state over HTTP.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.newEngine()
	if err != nil {
		return err
	}

	addr := r.config.Server.Addr()
	if a := cmd.String("addr"); a != "" {
		addr = a
	}

	nowPlaying := server.NewNowPlaying(engine.State)
	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(nowPlaying)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	updates := engine.Start(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range updates {
			nowPlaying.Apply(u)
		}
	}()

	r.logger.Info("serving now playing", "addr", addr, "routes", router.Routes())
	err = server.ListenAndServe(ctx, addr, router, r.logger)

	stop()
	<-done
	return err
}
