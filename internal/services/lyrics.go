// Lyrics lookup client for artist/title path-addressed HTTP APIs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultLyricsTimeout = 10 * time.Second
	defaultUserAgent     = "lyriek"
	maxLyricsBody        = 1 << 20
)

var repeatedNewlines = regexp.MustCompile(`\n{2,}`)

// LyricsOpts configures a [LyricsService].
type LyricsOpts struct {
	BaseURL   string                 // fixed endpoint, artist and title are appended as path segments
	Query     map[string]string      // extra query parameters, e.g. an API key
	Token     string                 // optional bearer token
	UserAgent string                 // defaults to "lyriek"
	Timeout   time.Duration          // per request, defaults to 10s
	Retries   int                    // retries per Fetch, zero means a single attempt
	RateLimit float64                // requests per second, zero disables throttling
	Headers   *shared.RequestHeaders // optional headers imported from a cURL command
	Client    *http.Client           // optional base client, its Transport is reused
	Logger    *log.Logger
}

// LyricsService looks up lyrics with GET {base}/{artist}/{title}.
type LyricsService struct {
	base      *url.URL
	query     url.Values
	userAgent string
	headers   *shared.RequestHeaders
	client    *retryablehttp.Client
	limiter   *rate.Limiter
	logger    *log.Logger
}

// lyricsResponse accepts both the flat {"lyrics": ...} shape and the nested {"result":{"track":{"text": ...}}} shape.
type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
	Result *struct {
		Track struct {
			Text string `json:"text"`
		} `json:"track"`
	} `json:"result"`
}

func (r lyricsResponse) text() string {
	if r.Lyrics != "" {
		return r.Lyrics
	}
	if r.Result != nil {
		return r.Result.Track.Text
	}
	return ""
}

// NewLyricsService creates a new lyrics client.
func NewLyricsService(opts LyricsOpts) (*LyricsService, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("%w: lyrics base URL %q must be absolute", shared.ErrInvalidConfig, opts.BaseURL)
	}
	if opts.Retries < 0 {
		return nil, fmt.Errorf("%w: lyrics retries must not be negative", shared.ErrInvalidConfig)
	}

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLyricsTimeout
	}

	httpClient := &http.Client{Timeout: opts.Timeout}
	if opts.Client != nil {
		httpClient.Transport = opts.Client.Transport
	}
	if opts.Token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}),
			Base:   httpClient.Transport,
		}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = opts.Retries
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = retryLogger{shared.WithLogger(opts.Logger, "component", "http")}

	query := base.Query()
	for k, v := range opts.Query {
		query.Set(k, v)
	}
	base.RawQuery = ""

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &LyricsService{
		base:      base,
		query:     query,
		userAgent: opts.UserAgent,
		headers:   opts.Headers,
		client:    rc,
		limiter:   limiter,
		logger:    opts.Logger,
	}, nil
}

// LookupURL builds the request URI: the base endpoint, then artists, then title.
//
// Both segments are escaped as single path components, so "/" becomes %2F and a space %20.
func (s *LyricsService) LookupURL(artists, title string) string {
	u := *s.base
	u.Path = s.base.Path + "/" + artists + "/" + title
	u.RawPath = s.base.EscapedPath() + "/" + url.PathEscape(artists) + "/" + url.PathEscape(title)
	u.RawQuery = s.query.Encode()
	return u.String()
}

// Fetch performs one lookup for (artists, title).
//
// Network failures, non-2xx responses, undecodable or empty bodies are all reported as [shared.ErrLyricsNotFound].
func (s *LyricsService) Fetch(ctx context.Context, artists, title string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrLyricsNotFound, err)
		}
	}

	endpoint := s.LookupURL(artists, title)
	s.logger.Debug("fetching lyrics", "artists", artists, "title", title)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", shared.ErrLyricsNotFound, err)
	}
	s.headers.Apply(req.Header)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", shared.ErrLyricsNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", shared.ErrLyricsNotFound, resp.StatusCode)
	}

	var parsed lyricsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLyricsBody)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", shared.ErrLyricsNotFound, err)
	}

	text := NormalizeLyrics(parsed.text())
	if text == "" {
		return "", fmt.Errorf("%w: empty lyrics", shared.ErrLyricsNotFound)
	}
	return text, nil
}

// NormalizeLyrics converts CRLF to LF and collapses every run of blank lines into a single newline.
func NormalizeLyrics(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = repeatedNewlines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// retryLogger adapts [log.Logger] to [retryablehttp.LeveledLogger].
type retryLogger struct {
	l *log.Logger
}

func (r retryLogger) Error(msg string, kv ...any) { r.l.Error(msg, kv...) }
func (r retryLogger) Info(msg string, kv ...any)  { r.l.Info(msg, kv...) }
func (r retryLogger) Debug(msg string, kv ...any) { r.l.Debug(msg, kv...) }
func (r retryLogger) Warn(msg string, kv ...any)  { r.l.Warn(msg, kv...) }
