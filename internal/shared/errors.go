package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Control bus errors
	ErrNoPlayer       = fmt.Errorf("no player found")
	ErrMetadata       = fmt.Errorf("unable to read player metadata")
	ErrPlayerShutDown = fmt.Errorf("connection to player lost")
	ErrTransport      = fmt.Errorf("player event stream closed")

	// Song validation errors
	ErrMissingTitle   = fmt.Errorf("song title not found")
	ErrMissingArtists = fmt.Errorf("artist(s) not found")
	ErrSongNotFound   = fmt.Errorf("song not found")

	// Lyrics service errors
	ErrLyricsNotFound     = fmt.Errorf("lyrics not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
