package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/mpris"
	"github.com/desertthunder/lyriek/internal/services"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlayerGateway finds media players on the control bus.
//
// [mpris.Gateway] is the production implementation.
type PlayerGateway interface {
	Discoverer() tasks.Discoverer
	List(ctx context.Context) ([]mpris.PlayerInfo, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The lyrics client and player gateway are built from config on first use unless injected.
type Runner struct {
	config     *shared.Config
	configPath string
	lyrics     services.LyricsProvider
	gateway    PlayerGateway
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Lyrics     services.LyricsProvider
	Gateway    PlayerGateway
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		lyrics:     opts.Lyrics,
		gateway:    opts.Gateway,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		watchCommand, tuiCommand, serveCommand, lookupCommand, playersCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config file named by --config and applies the log level.
//
// A missing file is not an error: the embedded defaults are used.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// SetLogger replaces the logger used by commands and by services built after the call.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) lyricsProvider() (services.LyricsProvider, error) {
	if r.lyrics != nil {
		return r.lyrics, nil
	}

	svc, err := services.NewLyricsServiceFromConfig(r.config.Lyrics, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create lyrics service: %w", err)
	}
	r.lyrics = svc
	return svc, nil
}

func (r *Runner) playerGateway() PlayerGateway {
	if r.gateway == nil {
		r.gateway = mpris.NewGateway(mpris.GatewayOpts{
			Prefer: r.config.MPRIS.Prefer,
			Logger: r.logger,
		})
	}
	return r.gateway
}

func (r *Runner) newEngine() (*tasks.NowPlayingEngine, error) {
	lyrics, err := r.lyricsProvider()
	if err != nil {
		return nil, err
	}

	return tasks.NewNowPlayingEngine(tasks.EngineOpts{
		Gateway:  r.playerGateway().Discoverer(),
		Resolver: tasks.NewSongResolver(lyrics, r.logger),
		Backoff:  r.config.Engine.Backoff,
		Logger:   r.logger,
	})
}

// drain discards updates until the engine closes its channel.
func drain(updates <-chan tasks.StatusUpdate) {
	for range updates {
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
