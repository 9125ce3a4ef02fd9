// package models defines the data model for the now-playing lyrics service
package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/lyriek/internal/shared"
)

// LyricsStatus enumerates the states of [Lyrics].
type LyricsStatus int

const (
	LyricsLoading LyricsStatus = iota
	LyricsFound
	LyricsNotFound
)

func (s LyricsStatus) String() string {
	switch s {
	case LyricsLoading:
		return "loading"
	case LyricsFound:
		return "found"
	case LyricsNotFound:
		return "not_found"
	default:
		return ""
	}
}

// Lyrics is the lyrics state of a [Song]: Loading, Found(text) or NotFound.
//
// Text is only meaningful when Status is [LyricsFound].
type Lyrics struct {
	Status LyricsStatus
	Text   string
}

// LoadingLyrics returns the initial lyrics state.
func LoadingLyrics() Lyrics { return Lyrics{Status: LyricsLoading} }

// FoundLyrics returns a Found state carrying text.
func FoundLyrics(text string) Lyrics { return Lyrics{Status: LyricsFound, Text: text} }

// NotFoundLyrics returns the NotFound state.
func NotFoundLyrics() Lyrics { return Lyrics{Status: LyricsNotFound} }

// Terminal reports whether the lyrics have been resolved one way or the other.
func (l Lyrics) Terminal() bool {
	return l.Status == LyricsFound || l.Status == LyricsNotFound
}

// Song is one music track instance as displayed to the user.
//
// Songs are values: a track change yields a new Song, and only [Song.WithLyrics] derives a
// copy with its lyrics resolved.
type Song struct {
	TrackID   string        // opaque player track identifier, may be empty
	Title     string        // never empty
	Artists   string        // comma-separated, in player order, never empty
	Album     string        // optional
	ArtURL    string        // optional absolute URI
	SourceURL string        // optional absolute URI
	Length    time.Duration // zero when unknown
	Lyrics    Lyrics
}

// SongOpts carries the optional fields of a [Song].
type SongOpts struct {
	TrackID   string
	Album     string
	ArtURL    string
	SourceURL string
	Length    time.Duration
}

// NewSong builds a Song with Loading lyrics.
//
// It fails with [shared.ErrMissingTitle] or [shared.ErrMissingArtists] when either is blank.
// URIs that do not parse as absolute URIs are dropped.
func NewSong(title, artists string, opts SongOpts) (Song, error) {
	title = strings.TrimSpace(title)
	artists = strings.TrimSpace(artists)
	if title == "" {
		return Song{}, shared.ErrMissingTitle
	}
	if artists == "" {
		return Song{}, shared.ErrMissingArtists
	}

	return Song{
		TrackID:   opts.TrackID,
		Title:     title,
		Artists:   artists,
		Album:     strings.TrimSpace(opts.Album),
		ArtURL:    absoluteURI(opts.ArtURL),
		SourceURL: absoluteURI(opts.SourceURL),
		Length:    opts.Length,
		Lyrics:    LoadingLyrics(),
	}, nil
}

// WithLyrics returns a copy of s with its lyrics resolved.
//
// A song whose lyrics are already terminal is returned unchanged.
func (s Song) WithLyrics(l Lyrics) Song {
	if s.Lyrics.Terminal() {
		return s
	}
	s.Lyrics = l
	return s
}

func absoluteURI(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ""
	}
	return u.String()
}

// RawMetadata is the control bus's description of the loaded track, before validation.
type RawMetadata struct {
	TrackID string
	Title   string
	Artists []string
	Album   string
	ArtURL  string
	URL     string
	Length  time.Duration
}

// PlayerEventKind enumerates [PlayerEvent] variants.
type PlayerEventKind int

const (
	TrackChanged PlayerEventKind = iota
	PlayerShutDown
	TransportError
)

func (k PlayerEventKind) String() string {
	switch k {
	case TrackChanged:
		return "track_changed"
	case PlayerShutDown:
		return "player_shut_down"
	case TransportError:
		return "transport_error"
	default:
		return ""
	}
}

// PlayerEvent is one element of a player's event sequence.
//
// Metadata is set for [TrackChanged]; Message for [TransportError].
type PlayerEvent struct {
	Kind     PlayerEventKind
	Metadata RawMetadata
	Message  string
}

// TrackChangedEvent is the constructor for [TrackChanged]
func TrackChangedEvent(md RawMetadata) PlayerEvent {
	return PlayerEvent{Kind: TrackChanged, Metadata: md}
}

// PlayerShutDownEvent is the constructor for [PlayerShutDown]
func PlayerShutDownEvent() PlayerEvent {
	return PlayerEvent{Kind: PlayerShutDown}
}

// TransportErrorEvent is the constructor for [TransportError]
func TransportErrorEvent(msg string) PlayerEvent {
	return PlayerEvent{Kind: TransportError, Message: msg}
}

// Terminal reports whether the event ends its sequence.
func (e PlayerEvent) Terminal() bool {
	return e.Kind == PlayerShutDown || e.Kind == TransportError
}
