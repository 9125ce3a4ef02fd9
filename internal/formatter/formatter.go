// package formatter renders songs and engine statuses as plain text, Markdown or JSON
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
)

// Format selects an output representation.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// ParseFormat accepts text, markdown (or md) and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (expected text, markdown or json)", shared.ErrInvalidFlag, s)
	}
}

// SongView is the JSON shape of a [models.Song].
type SongView struct {
	TrackID      string `json:"track_id,omitempty"`
	Title        string `json:"title"`
	Artists      string `json:"artists"`
	Album        string `json:"album,omitempty"`
	ArtURL       string `json:"art_url,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	LengthSecond int64  `json:"length_seconds,omitempty"`
	LyricsStatus string `json:"lyrics_status"`
	Lyrics       string `json:"lyrics,omitempty"`
}

// NewSongView converts a song for JSON output.
func NewSongView(song models.Song) SongView {
	return SongView{
		TrackID:      song.TrackID,
		Title:        song.Title,
		Artists:      song.Artists,
		Album:        song.Album,
		ArtURL:       song.ArtURL,
		SourceURL:    song.SourceURL,
		LengthSecond: int64(song.Length / time.Second),
		LyricsStatus: song.Lyrics.Status.String(),
		Lyrics:       song.Lyrics.Text,
	}
}

// StatusView is the JSON shape of a [tasks.StatusUpdate].
type StatusView struct {
	Kind    string    `json:"kind"`
	Song    *SongView `json:"song,omitempty"`
	Message string    `json:"message,omitempty"`
}

// NewStatusView converts a status update for JSON output.
func NewStatusView(u tasks.StatusUpdate) StatusView {
	v := StatusView{Kind: u.Kind.String(), Message: u.Message}
	if u.Kind == tasks.SongUpdated {
		song := NewSongView(u.Song)
		v.Song = &song
	}
	return v
}

// Song renders song in the requested format.
func Song(song models.Song, f Format) ([]byte, error) {
	switch f {
	case Text:
		return SongToText(song), nil
	case Markdown:
		return SongToMarkdown(song), nil
	case JSON:
		return marshalJSON(NewSongView(song), true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// SongToText renders a header followed by the lyrics.
func SongToText(song models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s - %s\n", song.Artists, song.Title))
	if song.Album != "" {
		buf.WriteString(fmt.Sprintf("Album: %s\n", song.Album))
	}
	if song.Length > 0 {
		buf.WriteString(fmt.Sprintf("Length: %s\n", Duration(song.Length)))
	}
	buf.WriteString("\n")
	buf.WriteString(LyricsText(song.Lyrics))
	buf.WriteString("\n")

	return buf.Bytes()
}

// SongToMarkdown renders the song as a Markdown document with optional cover image
func SongToMarkdown(song models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", song.Title))
	if song.ArtURL != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", song.ArtURL))
	}

	buf.WriteString(fmt.Sprintf("**Artists**: %s\n", song.Artists))
	if song.Album != "" {
		buf.WriteString(fmt.Sprintf("**Album**: %s\n", song.Album))
	}
	if song.Length > 0 {
		buf.WriteString(fmt.Sprintf("**Length**: %s\n", Duration(song.Length)))
	}
	if song.SourceURL != "" {
		buf.WriteString(fmt.Sprintf("**Source**: <%s>\n", song.SourceURL))
	}

	buf.WriteString("\n## Lyrics\n\n")
	switch song.Lyrics.Status {
	case models.LyricsFound:
		// Two trailing spaces keep one lyric line per rendered line.
		for _, line := range strings.Split(song.Lyrics.Text, "\n") {
			buf.WriteString(line + "  \n")
		}
	default:
		buf.WriteString(fmt.Sprintf("_%s_\n", LyricsText(song.Lyrics)))
	}

	return buf.Bytes()
}

// LyricsText is the display text for a lyrics state.
func LyricsText(l models.Lyrics) string {
	switch l.Status {
	case models.LyricsFound:
		return l.Text
	case models.LyricsNotFound:
		return "lyrics not found :("
	default:
		return "Loading..."
	}
}

// StatusLine renders one status update as a single log-style line.
func StatusLine(u tasks.StatusUpdate) string {
	switch u.Kind {
	case tasks.SongUpdated:
		return fmt.Sprintf("♪ %s - %s [%s]", u.Song.Artists, u.Song.Title, u.Song.Lyrics.Status)
	case tasks.Failure:
		return fmt.Sprintf("✗ %s", u.Message)
	case tasks.LoadingStarted:
		return "… loading"
	case tasks.LoadingStopped:
		return "· idle"
	case tasks.Shutdown:
		return "■ stopped"
	default:
		return ""
	}
}

// StatusJSON renders one status update as a compact JSON line.
func StatusJSON(u tasks.StatusUpdate) ([]byte, error) {
	return marshalJSON(NewStatusView(u), false)
}

// Duration formats d as m:ss, or h:mm:ss for an hour or more.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
