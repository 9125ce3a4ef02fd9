package tasks

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
)

type mockLyrics struct {
	mu     sync.Mutex
	lyrics map[string]string
	err    error
	calls  []string
}

func (m *mockLyrics) Fetch(ctx context.Context, artists, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, artists+"|"+title)
	if m.err != nil {
		return "", m.err
	}
	if text, ok := m.lyrics[artists+"|"+title]; ok {
		return text, nil
	}
	return "", shared.ErrLyricsNotFound
}

func (m *mockLyrics) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockPlayer struct {
	name    string
	meta    models.RawMetadata
	metaErr error
	events  []models.PlayerEvent
	hold    bool // block after the scripted events until ctx ends
	mu      sync.Mutex
	closed  int
}

func (p *mockPlayer) Name() string { return p.name }

func (p *mockPlayer) Metadata(ctx context.Context) (models.RawMetadata, error) {
	return p.meta, p.metaErr
}

func (p *mockPlayer) Events(ctx context.Context) iter.Seq[models.PlayerEvent] {
	return func(yield func(models.PlayerEvent) bool) {
		for _, ev := range p.events {
			if !yield(ev) {
				return
			}
		}
		if p.hold {
			<-ctx.Done()
		}
	}
}

func (p *mockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *mockPlayer) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type mockGateway struct {
	mu      sync.Mutex
	players []*mockPlayer // nil entries fail discovery
	calls   int
}

func (g *mockGateway) Discover(ctx context.Context) (Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	g.calls++
	if i >= len(g.players) || g.players[i] == nil {
		return nil, shared.ErrNoPlayer
	}
	return g.players[i], nil
}

func blackwaterPark() models.RawMetadata {
	return models.RawMetadata{
		TrackID: "/org/mpris/MediaPlayer2/Track/1",
		Title:   "Blackwater Park",
		Artists: []string{"Opeth"},
		Album:   "Blackwater Park",
		ArtURL:  "https://img.example.com/bwp.jpg",
		URL:     "file:///music/opeth/bwp.flac",
		Length:  12 * time.Minute,
	}
}

func TestSongResolver(t *testing.T) {
	t.Run("Resolves Song With Found Lyrics", func(t *testing.T) {
		lyrics := &mockLyrics{lyrics: map[string]string{"Opeth|Blackwater Park": "line1\nline2"}}
		resolver := NewSongResolver(lyrics, nil)

		song, err := resolver.Resolve(context.Background(), blackwaterPark())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if song.Title != "Blackwater Park" || song.Artists != "Opeth" {
			t.Errorf("unexpected song %q by %q", song.Title, song.Artists)
		}
		if song.Album != "Blackwater Park" {
			t.Errorf("expected album, got %q", song.Album)
		}
		if song.ArtURL != "https://img.example.com/bwp.jpg" || song.SourceURL != "file:///music/opeth/bwp.flac" {
			t.Errorf("unexpected URIs %q %q", song.ArtURL, song.SourceURL)
		}
		if song.TrackID != "/org/mpris/MediaPlayer2/Track/1" {
			t.Errorf("expected track id, got %q", song.TrackID)
		}
		if song.Lyrics.Status != models.LyricsFound || song.Lyrics.Text != "line1\nline2" {
			t.Errorf("expected found lyrics, got %+v", song.Lyrics)
		}
	})

	t.Run("Lookup Failure Yields NotFound", func(t *testing.T) {
		lyrics := &mockLyrics{err: errors.New("service down")}
		resolver := NewSongResolver(lyrics, nil)

		song, err := resolver.Resolve(context.Background(), blackwaterPark())
		if err != nil {
			t.Fatalf("lookup failure must not fail resolution, got %v", err)
		}
		if song.Lyrics.Status != models.LyricsNotFound {
			t.Errorf("expected not found lyrics, got %s", song.Lyrics.Status)
		}
	})

	t.Run("Blank Lyrics Yield NotFound", func(t *testing.T) {
		lyrics := &mockLyrics{lyrics: map[string]string{"Opeth|Blackwater Park": "  "}}
		song, _ := NewSongResolver(lyrics, nil).Resolve(context.Background(), blackwaterPark())
		if song.Lyrics.Status != models.LyricsNotFound {
			t.Errorf("expected not found lyrics, got %s", song.Lyrics.Status)
		}
	})

	t.Run("Joins Artists In Order", func(t *testing.T) {
		lyrics := &mockLyrics{}
		md := models.RawMetadata{Title: "The Boxer", Artists: []string{" Simon ", "", "Garfunkel"}}

		song, err := NewSongResolver(lyrics, nil).Resolve(context.Background(), md)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.Artists != "Simon, Garfunkel" {
			t.Errorf("expected joined artists, got %q", song.Artists)
		}
		if lyrics.calls[0] != "Simon, Garfunkel|The Boxer" {
			t.Errorf("expected lookup with artists then title, got %q", lyrics.calls[0])
		}
	})

	validation := []struct {
		name string
		md   models.RawMetadata
		want error
	}{
		{name: "empty title", md: models.RawMetadata{Artists: []string{"Opeth"}}, want: shared.ErrMissingTitle},
		{name: "blank title", md: models.RawMetadata{Title: "   ", Artists: []string{"Opeth"}}, want: shared.ErrMissingTitle},
		{name: "no artists", md: models.RawMetadata{Title: "Harvest"}, want: shared.ErrMissingArtists},
		{name: "blank artists", md: models.RawMetadata{Title: "Harvest", Artists: []string{"", " "}}, want: shared.ErrMissingArtists},
		{name: "empty record", md: models.RawMetadata{}, want: shared.ErrMissingTitle},
	}

	for _, tt := range validation {
		t.Run("Validation "+tt.name, func(t *testing.T) {
			lyrics := &mockLyrics{}
			_, err := NewSongResolver(lyrics, nil).Resolve(context.Background(), tt.md)

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if lyrics.callCount() != 0 {
				t.Errorf("expected no lyrics lookup, got %d", lyrics.callCount())
			}
		})
	}

	t.Run("Idempotent", func(t *testing.T) {
		lyrics := &mockLyrics{lyrics: map[string]string{"Opeth|Blackwater Park": "text"}}
		resolver := NewSongResolver(lyrics, nil)

		first, _ := resolver.Resolve(context.Background(), blackwaterPark())
		lyrics.lyrics = nil
		second, _ := resolver.Resolve(context.Background(), blackwaterPark())

		first.Lyrics, second.Lyrics = models.Lyrics{}, models.Lyrics{}
		if first != second {
			t.Errorf("expected identical songs apart from lyrics:\n%+v\n%+v", first, second)
		}
	})

	t.Run("Without Lyrics Client", func(t *testing.T) {
		song, err := NewSongResolver(nil, nil).Resolve(context.Background(), blackwaterPark())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.Lyrics.Status != models.LyricsNotFound {
			t.Errorf("expected not found lyrics, got %s", song.Lyrics.Status)
		}
	})
}

func TestJoinArtists(t *testing.T) {
	tc := []struct {
		in   []string
		want string
	}{
		{in: nil, want: ""},
		{in: []string{"Opeth"}, want: "Opeth"},
		{in: []string{"A", "B", "C"}, want: "A, B, C"},
		{in: []string{"", "B", "  "}, want: "B"},
	}

	for _, tt := range tc {
		if got := JoinArtists(tt.in); got != tt.want {
			t.Errorf("JoinArtists(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringers(t *testing.T) {
	kinds := map[StatusKind]string{
		SongUpdated:    "song_update",
		Failure:        "failure",
		LoadingStarted: "loading_started",
		LoadingStopped: "loading_stopped",
		Shutdown:       "shutdown",
		StatusKind(99): "",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("StatusKind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}

	states := map[EngineState]string{
		Starting:        "starting",
		Connected:       "connected",
		Listening:       "listening",
		Reconnecting:    "reconnecting",
		ShuttingDown:    "shutting_down",
		EngineState(42): "",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("EngineState(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
