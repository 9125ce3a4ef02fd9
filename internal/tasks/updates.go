package tasks

import (
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
)

// StatusUpdate is one message on the engine's outbound channel.
//
// Consumers switch over Kind; Song is set only for [SongUpdated] and Message only for [Failure].
type StatusUpdate struct {
	Kind    StatusKind
	Song    models.Song // resolved song, lyrics already terminal
	Message string      // human-readable failure text
}

// Status kind enumeration
type StatusKind int

const (
	SongUpdated StatusKind = iota
	Failure
	LoadingStarted
	LoadingStopped
	Shutdown
)

func (k StatusKind) String() string {
	switch k {
	case SongUpdated:
		return "song_update"
	case Failure:
		return "failure"
	case LoadingStarted:
		return "loading_started"
	case LoadingStopped:
		return "loading_stopped"
	case Shutdown:
		return "shutdown"
	default:
		return ""
	}
}

// EngineState is the [NowPlayingEngine] state machine position.
type EngineState int32

const (
	Starting EngineState = iota
	Connected
	Listening
	Reconnecting
	ShuttingDown
)

func (s EngineState) String() string {
	switch s {
	case Starting:
		return "starting"
	case Connected:
		return "connected"
	case Listening:
		return "listening"
	case Reconnecting:
		return "reconnecting"
	case ShuttingDown:
		return "shutting_down"
	default:
		return ""
	}
}

func songUpdate(song models.Song) StatusUpdate {
	return StatusUpdate{Kind: SongUpdated, Song: song}
}

func failureUpdate(msg string) StatusUpdate {
	return StatusUpdate{Kind: Failure, Message: msg}
}

func noPlayerUpdate() StatusUpdate {
	return failureUpdate(shared.ErrNoPlayer.Error())
}

func songNotFoundUpdate() StatusUpdate {
	return failureUpdate(shared.ErrSongNotFound.Error())
}

func playerLostUpdate() StatusUpdate {
	return failureUpdate(shared.ErrPlayerShutDown.Error())
}

func transportErrorUpdate(msg string) StatusUpdate {
	if msg == "" {
		msg = shared.ErrTransport.Error()
	}
	return failureUpdate(msg)
}

func loadingStartedUpdate() StatusUpdate {
	return StatusUpdate{Kind: LoadingStarted}
}

func loadingStoppedUpdate() StatusUpdate {
	return StatusUpdate{Kind: LoadingStopped}
}

func shutdownUpdate() StatusUpdate {
	return StatusUpdate{Kind: Shutdown}
}
