// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"iter"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// FakeLyrics is a test double for [tasks.LyricsFetcher]
type FakeLyrics struct {
	mu     sync.Mutex
	Lyrics map[string]string // keyed by "artists|title"
	calls  int
}

func (f *FakeLyrics) Fetch(ctx context.Context, artists, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if text, ok := f.Lyrics[artists+"|"+title]; ok {
		return text, nil
	}
	return "", shared.ErrLyricsNotFound
}

func (f *FakeLyrics) LookupURL(artists, title string) string {
	return "https://lyrics.test/" + artists + "/" + title
}

func (f *FakeLyrics) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakePlayer is a test double for [tasks.Player]
//
// Events yields the scripted events; when Hold is set it then blocks until the context ends.
type FakePlayer struct {
	BusName    string
	Meta       models.RawMetadata
	MetaErr    error
	Script     []models.PlayerEvent
	Hold       bool
	mu         sync.Mutex
	closeCount int
}

func (p *FakePlayer) Name() string { return p.BusName }

func (p *FakePlayer) Metadata(ctx context.Context) (models.RawMetadata, error) {
	return p.Meta, p.MetaErr
}

func (p *FakePlayer) Events(ctx context.Context) iter.Seq[models.PlayerEvent] {
	return func(yield func(models.PlayerEvent) bool) {
		for _, ev := range p.Script {
			if !yield(ev) {
				return
			}
		}
		if p.Hold {
			<-ctx.Done()
		}
	}
}

func (p *FakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCount++
	return nil
}

// Closed reports whether Close has been called at least once.
func (p *FakePlayer) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeCount > 0
}

// FakeGateway is a test double for [tasks.Discoverer]
//
// Each Discover call consumes the next scripted player; a nil entry fails with [shared.ErrNoPlayer].
// Once the script is exhausted every call fails.
type FakeGateway struct {
	mu      sync.Mutex
	Players []*FakePlayer
	calls   int
}

func (g *FakeGateway) Discover(ctx context.Context) (tasks.Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	g.calls++
	if i >= len(g.Players) || g.Players[i] == nil {
		return nil, shared.ErrNoPlayer
	}
	return g.Players[i], nil
}

func (g *FakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Collect drains a status channel into a slice until it closes.
func Collect(ch <-chan tasks.StatusUpdate) []tasks.StatusUpdate {
	var out []tasks.StatusUpdate
	for u := range ch {
		out = append(out, u)
	}
	return out
}
