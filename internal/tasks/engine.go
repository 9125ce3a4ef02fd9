package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
)

// DefaultBackoff is the fixed delay between connection attempts.
const DefaultBackoff = time.Second

// EngineOpts configures a [NowPlayingEngine].
type EngineOpts struct {
	Gateway  Discoverer
	Resolver *SongResolver
	Backoff  time.Duration // defaults to [DefaultBackoff]
	Logger   *log.Logger
}

// NowPlayingEngine tracks the active player and emits ordered [StatusUpdate] values.
//
// It retries discovery forever with a fixed backoff. Only cancellation of the context passed
// to [NowPlayingEngine.Start] stops it.
type NowPlayingEngine struct {
	gateway  Discoverer
	resolver *SongResolver
	backoff  time.Duration
	logger   *log.Logger
	state    atomic.Int32
	started  atomic.Bool
}

// NewNowPlayingEngine creates an engine in the Starting state.
func NewNowPlayingEngine(opts EngineOpts) (*NowPlayingEngine, error) {
	if opts.Gateway == nil {
		return nil, fmt.Errorf("%w: player gateway not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Resolver == nil {
		return nil, fmt.Errorf("%w: song resolver not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &NowPlayingEngine{
		gateway:  opts.Gateway,
		resolver: opts.Resolver,
		backoff:  opts.Backoff,
		logger:   shared.WithLogger(opts.Logger, "component", "engine"),
	}, nil
}

// State reports the current state machine position.
func (e *NowPlayingEngine) State() EngineState {
	return EngineState(e.state.Load())
}

func (e *NowPlayingEngine) setState(s EngineState) {
	e.state.Store(int32(s))
}

// Start launches the engine goroutine and returns its outbound channel.
//
// The channel yields updates in the order they were produced. After ctx is canceled the engine
// closes any held player, sends [Shutdown] as its final update and closes the channel.
// An engine runs once; later calls return an already closed channel.
func (e *NowPlayingEngine) Start(ctx context.Context) <-chan StatusUpdate {
	out := make(chan StatusUpdate)
	if !e.started.CompareAndSwap(false, true) {
		close(out)
		return out
	}

	mb := newMailbox()
	go mb.pump(out)
	go e.run(ctx, mb)
	return out
}

func (e *NowPlayingEngine) run(ctx context.Context, mb *mailbox) {
	defer func() {
		e.setState(ShuttingDown)
		mb.Put(shutdownUpdate())
		mb.Close()
		e.logger.Info("engine stopped")
	}()

	emit := func(u StatusUpdate) {
		if ctx.Err() != nil {
			return
		}
		mb.Put(u)
	}

	for {
		e.setState(Starting)
		player, err := e.gateway.Discover(ctx)
		if ctx.Err() != nil {
			if err == nil && player != nil {
				player.Close()
			}
			return
		}
		if err != nil {
			e.logger.Debug("discovery failed", "error", err)
			emit(noPlayerUpdate())
			emit(loadingStoppedUpdate())
			if !e.wait(ctx) {
				return
			}
			continue
		}

		logger := shared.WithLogger(e.logger, "session", shared.GenerateID(), "player", player.Name())
		logger.Info("connected to player")
		e.listen(ctx, player, emit, logger)

		if err := player.Close(); err != nil {
			logger.Warn("failed to close player", "error", err)
		}
		if ctx.Err() != nil {
			return
		}

		e.setState(Reconnecting)
		logger.Info("reconnecting", "backoff", e.backoff)
		if !e.wait(ctx) {
			return
		}
	}
}

// listen runs one connection cycle and returns when the player must be released.
func (e *NowPlayingEngine) listen(ctx context.Context, player Player, emit func(StatusUpdate), logger *log.Logger) {
	e.setState(Connected)
	emit(loadingStartedUpdate())

	md, err := player.Metadata(ctx)
	if err != nil {
		logger.Warn("failed to read metadata", "error", err)
		emit(failureUpdate(err.Error()))
		emit(loadingStoppedUpdate())
		return
	}
	e.resolve(ctx, md, emit, logger)

	e.setState(Listening)
	for ev := range player.Events(ctx) {
		switch ev.Kind {
		case models.TrackChanged:
			emit(loadingStartedUpdate())
			e.resolve(ctx, ev.Metadata, emit, logger)
		case models.PlayerShutDown:
			logger.Info("player shut down")
			emit(playerLostUpdate())
			return
		case models.TransportError:
			logger.Warn("player transport error", "message", ev.Message)
			emit(transportErrorUpdate(ev.Message))
			return
		}
	}

	if ctx.Err() == nil {
		logger.Warn("player event stream ended")
		emit(transportErrorUpdate(""))
	}
}

// resolve emits either SongUpdated or Failure, then LoadingStopped.
func (e *NowPlayingEngine) resolve(ctx context.Context, md models.RawMetadata, emit func(StatusUpdate), logger *log.Logger) {
	song, err := e.resolver.Resolve(ctx, md)
	if err != nil {
		logger.Debug("song not resolved", "error", err)
		emit(songNotFoundUpdate())
	} else {
		logger.Info("now playing", "artists", song.Artists, "title", song.Title, "lyrics", song.Lyrics.Status)
		emit(songUpdate(song))
	}
	emit(loadingStoppedUpdate())
}

// wait sleeps for the backoff interval and reports false if ctx ended first.
func (e *NowPlayingEngine) wait(ctx context.Context) bool {
	t := time.NewTimer(e.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
