package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Players lists the MPRIS players on the session bus in discovery order.
func (r *Runner) Players(ctx context.Context, cmd *cli.Command) error {
	players, err := r.playerGateway().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(players, true)
	}

	if len(players) == 0 {
		return r.writePlain("No players found\n")
	}

	r.writePlainHeader(fmt.Sprintf("Players (%d)", len(players)))
	for i, p := range players {
		r.writePlain("%d. %s (%s)\n", i+1, p.Identity, p.Name)
	}
	return nil
}
