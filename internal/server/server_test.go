package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	tu "github.com/desertthunder/lyriek/internal/testing"
	"github.com/desertthunder/lyriek/internal/tasks"
)

func opethSong(t *testing.T) models.Song {
	t.Helper()
	song, err := models.NewSong("Blackwater Park", "Opeth", models.SongOpts{Album: "Blackwater Park"})
	if err != nil {
		t.Fatalf("failed to build song: %v", err)
	}
	return song.WithLyrics(models.FoundLyrics("line1\nline2"))
}

func newTestRouter(h *NowPlaying) *BasicRouter {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(tu.QuietLogger()))
	router.Handler(h)
	return router
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected pong, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected HEAD allowed for GET route, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != "GET" {
			t.Errorf("expected Allow header, got %q", rec.Header().Get("Allow"))
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !slices.Equal(order, []string{"first", "second", "handler"}) {
			t.Errorf("unexpected middleware order %v", order)
		}
	})

	t.Run("Routes", func(t *testing.T) {
		router := newTestRouter(NewNowPlaying(nil))
		want := []string{"GET /now-playing", "GET /healthz"}
		if !slices.Equal(router.Routes(), want) {
			t.Errorf("expected %v, got %v", want, router.Routes())
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	shared.SetLogLevel(logger, log.DebugLevel)

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	out := buf.String()
	if !strings.Contains(out, "/brew") || !strings.Contains(out, "418") {
		t.Errorf("expected path and status logged, got %q", out)
	}
}

func TestNowPlaying(t *testing.T) {
	get := func(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	t.Run("Empty Snapshot", func(t *testing.T) {
		rec := get(t, newTestRouter(NewNowPlaying(nil)), "/now-playing")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var snap Snapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if snap.Song != nil || snap.Loading || snap.Stopped {
			t.Errorf("expected empty snapshot, got %+v", snap)
		}
	})

	t.Run("Applies Updates In Order", func(t *testing.T) {
		h := NewNowPlaying(nil)
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		h.now = func() time.Time { return fixed }

		h.Apply(tasks.StatusUpdate{Kind: tasks.Failure, Message: "no player found"})
		h.Apply(tasks.StatusUpdate{Kind: tasks.LoadingStarted})
		if !h.Snapshot().Loading || h.Snapshot().Failure != "no player found" {
			t.Errorf("expected loading with failure, got %+v", h.Snapshot())
		}

		h.Apply(tasks.StatusUpdate{Kind: tasks.SongUpdated, Song: opethSong(t)})
		h.Apply(tasks.StatusUpdate{Kind: tasks.LoadingStopped})

		snap := h.Snapshot()
		if snap.Loading || snap.Failure != "" {
			t.Errorf("expected idle without failure, got %+v", snap)
		}
		if snap.Song == nil || snap.Song.Title != "Blackwater Park" || snap.Song.LyricsStatus != "found" {
			t.Errorf("unexpected song %+v", snap.Song)
		}
		if !snap.UpdatedAt.Equal(fixed) {
			t.Errorf("expected updated_at %s, got %s", fixed, snap.UpdatedAt)
		}

		h.Apply(tasks.StatusUpdate{Kind: tasks.Failure, Message: "connection to player lost"})
		if h.Snapshot().Song == nil {
			t.Error("a failure must not clear the last song")
		}

		h.Apply(tasks.StatusUpdate{Kind: tasks.Shutdown})
		if !h.Snapshot().Stopped {
			t.Error("expected stopped after shutdown")
		}
	})

	t.Run("Markdown Format", func(t *testing.T) {
		h := NewNowPlaying(nil)
		h.Apply(tasks.StatusUpdate{Kind: tasks.SongUpdated, Song: opethSong(t)})

		rec := get(t, newTestRouter(h), "/now-playing?format=markdown")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/markdown") {
			t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
		}
		if !strings.Contains(rec.Body.String(), "# Blackwater Park") {
			t.Errorf("expected markdown body, got %s", rec.Body.String())
		}
	})

	t.Run("Text Format Without Song", func(t *testing.T) {
		rec := get(t, newTestRouter(NewNowPlaying(nil)), "/now-playing?format=text")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		rec := get(t, newTestRouter(NewNowPlaying(nil)), "/now-playing?format=yaml")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Health", func(t *testing.T) {
		state := tasks.Listening
		h := NewNowPlaying(func() tasks.EngineState { return state })
		router := newTestRouter(h)

		rec := get(t, router, "/healthz")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"listening"`) {
			t.Errorf("expected listening health, got %d %s", rec.Code, rec.Body.String())
		}

		state = tasks.ShuttingDown
		rec = get(t, router, "/healthz")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503 while shutting down, got %d", rec.Code)
		}
	})

	t.Run("Unknown Path", func(t *testing.T) {
		rec := get(t, NewNowPlaying(nil), "/elsewhere")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestListenAndServe(t *testing.T) {
	t.Run("Stops On Cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), tu.QuietLogger())
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("Invalid Address", func(t *testing.T) {
		err := ListenAndServe(context.Background(), "256.0.0.1:-1", http.NotFoundHandler(), tu.QuietLogger())
		if err == nil {
			t.Error("expected listen error")
		}
	})
}
