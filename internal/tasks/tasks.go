// package tasks implements the now-playing engine and the collaborators it drives.
package tasks

import (
	"context"
	"iter"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/samber/lo"
)

// Player is an open connection to one media player on the control bus.
//
// A Player is owned by one engine connection cycle and is closed before the next Discover.
type Player interface {
	// Name returns the player's bus name.
	Name() string

	// Metadata reads the currently loaded track.
	Metadata(ctx context.Context) (models.RawMetadata, error)

	// Events yields player lifecycle events until PlayerShutDown, TransportError, or the end of ctx.
	//
	// The sequence is not restartable.
	Events(ctx context.Context) iter.Seq[models.PlayerEvent]

	Close() error
}

// Discoverer finds an active player that can produce an event stream.
type Discoverer interface {
	Discover(ctx context.Context) (Player, error)
}

// DiscoverFunc adapts a function to [Discoverer].
type DiscoverFunc func(ctx context.Context) (Player, error)

func (f DiscoverFunc) Discover(ctx context.Context) (Player, error) {
	return f(ctx)
}

// LyricsFetcher looks up lyrics for (artists, title).
//
// Any error means "no lyrics" for this attempt.
type LyricsFetcher interface {
	Fetch(ctx context.Context, artists, title string) (string, error)
}

// SongResolver turns raw player metadata into a Song with resolved lyrics.
type SongResolver struct {
	lyrics LyricsFetcher
	logger *log.Logger
}

// NewSongResolver creates a resolver backed by the given lyrics client.
func NewSongResolver(lyrics LyricsFetcher, logger *log.Logger) *SongResolver {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SongResolver{lyrics: lyrics, logger: logger}
}

// Resolve validates md and fetches lyrics for it.
//
// It fails with [shared.ErrMissingTitle] or [shared.ErrMissingArtists] before any lyrics lookup.
// A failed lookup is not an error: the song is returned with NotFound lyrics.
func (r *SongResolver) Resolve(ctx context.Context, md models.RawMetadata) (models.Song, error) {
	song, err := models.NewSong(md.Title, JoinArtists(md.Artists), models.SongOpts{
		TrackID:   md.TrackID,
		Album:     md.Album,
		ArtURL:    md.ArtURL,
		SourceURL: md.URL,
		Length:    md.Length,
	})
	if err != nil {
		return models.Song{}, err
	}

	if r.lyrics == nil {
		return song.WithLyrics(models.NotFoundLyrics()), nil
	}

	text, err := r.lyrics.Fetch(ctx, song.Artists, song.Title)
	if err != nil || strings.TrimSpace(text) == "" {
		r.logger.Debug("lyrics not found", "artists", song.Artists, "title", song.Title, "error", err)
		return song.WithLyrics(models.NotFoundLyrics()), nil
	}
	return song.WithLyrics(models.FoundLyrics(text)), nil
}

// JoinArtists trims each artist, drops blanks, and joins the rest with ", " in order.
func JoinArtists(artists []string) string {
	trimmed := lo.Map(artists, func(a string, _ int) string { return strings.TrimSpace(a) })
	return strings.Join(lo.Compact(trimmed), ", ")
}
