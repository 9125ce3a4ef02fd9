package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/lyriek/internal/formatter"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/tasks"
)

const (
	nowPlayingRoute = "/now-playing"
	healthRoute     = "/healthz"
)

// Snapshot is the latest state folded from engine updates.
type Snapshot struct {
	Song      *formatter.SongView `json:"song"`
	Loading   bool                `json:"loading"`
	Failure   string              `json:"failure,omitempty"`
	Stopped   bool                `json:"stopped"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NowPlaying serves the current song and engine health.
//
// It implements [Handler]; feed it engine updates with [NowPlaying.Apply].
type NowPlaying struct {
	mu      sync.RWMutex
	song    *models.Song
	loading bool
	failure string
	stopped bool
	updated time.Time
	state   func() tasks.EngineState
	now     func() time.Time
}

// NewNowPlaying creates a handler. state reports the engine position for /healthz and may be nil.
func NewNowPlaying(state func() tasks.EngineState) *NowPlaying {
	return &NowPlaying{state: state, now: time.Now}
}

// Routes returns the HTTP routes this handler serves.
func (h *NowPlaying) Routes() []string {
	return []string{nowPlayingRoute, healthRoute}
}

// Apply folds one engine update into the snapshot.
func (h *NowPlaying) Apply(u tasks.StatusUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch u.Kind {
	case tasks.SongUpdated:
		song := u.Song
		h.song = &song
		h.failure = ""
	case tasks.Failure:
		h.failure = u.Message
	case tasks.LoadingStarted:
		h.loading = true
	case tasks.LoadingStopped:
		h.loading = false
	case tasks.Shutdown:
		h.loading = false
		h.stopped = true
	}
	h.updated = h.now()
}

// Snapshot returns a copy of the current state.
func (h *NowPlaying) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s := Snapshot{
		Loading:   h.loading,
		Failure:   h.failure,
		Stopped:   h.stopped,
		UpdatedAt: h.updated,
	}
	if h.song != nil {
		view := formatter.NewSongView(*h.song)
		s.Song = &view
	}
	return s
}

func (h *NowPlaying) current() (models.Song, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.song == nil {
		return models.Song{}, false
	}
	return *h.song, true
}

// ServeHTTP dispatches on the request path.
//
// /now-playing honors ?format=text|markdown|json (default json); the text formats need a song.
func (h *NowPlaying) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case nowPlayingRoute:
		h.serveNowPlaying(w, r)
	case healthRoute:
		h.serveHealth(w)
	default:
		http.NotFound(w, r)
	}
}

func (h *NowPlaying) serveNowPlaying(w http.ResponseWriter, r *http.Request) {
	format := formatter.JSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := formatter.ParseFormat(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	if format == formatter.JSON {
		writeJSON(w, http.StatusOK, h.Snapshot())
		return
	}

	song, ok := h.current()
	if !ok {
		http.Error(w, "nothing playing", http.StatusNotFound)
		return
	}
	data, err := formatter.Song(song, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format == formatter.Markdown {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *NowPlaying) serveHealth(w http.ResponseWriter) {
	state := tasks.Starting
	if h.state != nil {
		state = h.state()
	}

	status := http.StatusOK
	if state == tasks.ShuttingDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"state": state.String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
