package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lyriek/internal/formatter"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Lookup resolves a single song from the command line, bypassing the player.
//
// Artists may be given as a comma separated list; they are joined the same way player
// metadata is.
func (r *Runner) Lookup(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.StringArg("artist")
	title := cmd.StringArg("title")
	if artist == "" || title == "" {
		return fmt.Errorf("%w: usage: lyriek lookup <artist> <title>", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	lyrics, err := r.lyricsProvider()
	if err != nil {
		return err
	}

	resolver := tasks.NewSongResolver(lyrics, r.logger)
	song, err := resolver.Resolve(ctx, models.RawMetadata{
		Title:   title,
		Artists: strings.Split(artist, ","),
	})
	if err != nil {
		return fmt.Errorf("failed to resolve song: %w", err)
	}

	if song.Lyrics.Status != models.LyricsFound {
		r.logger.Debug("lookup", "url", lyrics.LookupURL(song.Artists, song.Title))
		r.logger.Warn("lyrics not found", "artists", song.Artists, "title", song.Title)
	}

	data, err := formatter.Song(song, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", strings.TrimRight(string(data), "\n"))
}
