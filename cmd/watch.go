package main

import (
	"context"

	"github.com/desertthunder/lyriek/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Watch runs the engine and prints every status update until interrupted.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.newEngine()
	if err != nil {
		return err
	}
	asJSON := cmd.Bool("json")

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	updates := engine.Start(ctx)
	for u := range updates {
		if asJSON {
			data, err := formatter.StatusJSON(u)
			if err == nil {
				err = r.writePlain("%s\n", data)
			}
			if err != nil {
				stop()
				drain(updates)
				return err
			}
			continue
		}

		if err := r.writePlain("%s\n", formatter.StatusLine(u)); err != nil {
			stop()
			drain(updates)
			return err
		}
	}
	return nil
}
