// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// watchCommand prints engine status updates as they happen
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Print now-playing status updates, one per line",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output one JSON object per update",
			},
		},
		Action: r.Watch,
	}
}

// tuiCommand returns the top-level TUI command for the lyrics viewer.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive lyrics viewer",
		Action:  r.TUI,
	}
}

// serveCommand runs the engine behind a local HTTP status endpoint
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the current song on a local HTTP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default: [server] host and port)",
			},
		},
		Action: r.Serve,
	}
}

// lookupCommand fetches lyrics for a song without a player
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Look up lyrics for an artist and title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "artist",
			},
			&cli.StringArg{
				Name: "title",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, markdown or json)",
				Value:   "text",
			},
		},
		Action: r.Lookup,
	}
}

// playersCommand lists MPRIS players on the session bus
func playersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "List media players visible on the session bus",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Players,
	}
}

// setupCommand writes a starter configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the configuration file and check imported request headers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "curl-file",
				Usage: "Path to .sh file containing a cURL command whose headers the lyrics client should send",
			},
		},
		Action: r.Setup,
	}
}
