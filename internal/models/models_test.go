package models

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/lyriek/internal/shared"
)

func TestNewSong(t *testing.T) {
	tc := []struct {
		name    string
		title   string
		artists string
		wantErr error
	}{
		{name: "valid", title: "Blackwater Park", artists: "Opeth"},
		{name: "empty title", title: "", artists: "Opeth", wantErr: shared.ErrMissingTitle},
		{name: "blank title", title: "   ", artists: "Opeth", wantErr: shared.ErrMissingTitle},
		{name: "empty artists", title: "Blackwater Park", artists: "", wantErr: shared.ErrMissingArtists},
		{name: "both empty reports title", title: "", artists: "", wantErr: shared.ErrMissingTitle},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			song, err := NewSong(tt.title, tt.artists, SongOpts{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if song.Lyrics.Status != LyricsLoading {
				t.Errorf("expected new song lyrics to be loading, got %s", song.Lyrics.Status)
			}
		})
	}

	t.Run("optional fields", func(t *testing.T) {
		song, err := NewSong("Title", "Artist", SongOpts{
			TrackID:   "/org/mpris/MediaPlayer2/Track/1",
			Album:     " Album ",
			ArtURL:    "https://i.scdn.co/image/abc",
			SourceURL: "relative/path",
			Length:    3 * time.Minute,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if song.Album != "Album" {
			t.Errorf("expected trimmed album, got %q", song.Album)
		}
		if song.ArtURL != "https://i.scdn.co/image/abc" {
			t.Errorf("expected art URL to be kept, got %q", song.ArtURL)
		}
		if song.SourceURL != "" {
			t.Errorf("expected relative source URL to be dropped, got %q", song.SourceURL)
		}
		if song.Length != 3*time.Minute || song.TrackID == "" {
			t.Errorf("expected length and track id to be kept, got %+v", song)
		}
	})
}

func TestSongWithLyrics(t *testing.T) {
	song, err := NewSong("Title", "Artist", SongOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := song.WithLyrics(FoundLyrics("la la"))
	if found.Lyrics.Status != LyricsFound || found.Lyrics.Text != "la la" {
		t.Errorf("expected found lyrics, got %+v", found.Lyrics)
	}
	if song.Lyrics.Status != LyricsLoading {
		t.Error("expected original song to be unchanged")
	}

	again := found.WithLyrics(NotFoundLyrics())
	if again.Lyrics.Status != LyricsFound {
		t.Errorf("expected terminal lyrics to never revert, got %s", again.Lyrics.Status)
	}
}

func TestLyricsTerminal(t *testing.T) {
	if LoadingLyrics().Terminal() {
		t.Error("loading should not be terminal")
	}
	if !FoundLyrics("x").Terminal() || !NotFoundLyrics().Terminal() {
		t.Error("found and not found should be terminal")
	}
}

func TestPlayerEvent(t *testing.T) {
	tc := []struct {
		event    PlayerEvent
		kind     string
		terminal bool
	}{
		{TrackChangedEvent(RawMetadata{Title: "x"}), "track_changed", false},
		{PlayerShutDownEvent(), "player_shut_down", true},
		{TransportErrorEvent("boom"), "transport_error", true},
	}

	for _, tt := range tc {
		t.Run(tt.kind, func(t *testing.T) {
			if tt.event.Kind.String() != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, tt.event.Kind)
			}
			if tt.event.Terminal() != tt.terminal {
				t.Errorf("expected terminal=%v", tt.terminal)
			}
		})
	}
}
