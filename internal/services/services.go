// package services defines interface LyricsProvider for looking up lyrics over HTTP APIs
package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/shared"
)

// LyricsProvider defines the interface for remote lyrics lookup services.
type LyricsProvider interface {
	// Fetch returns normalized lyrics for the song identified by (artists, title).
	// Any failure, including "no lyrics", is reported as [shared.ErrLyricsNotFound].
	Fetch(ctx context.Context, artists, title string) (string, error)

	// LookupURL returns the request URI Fetch would call.
	LookupURL(artists, title string) string
}

var _ LyricsProvider = (*LyricsService)(nil)

// NewLyricsServiceFromConfig builds a [LyricsService] from the [lyrics] config section.
//
// When headers_file is set, the cURL command it contains supplies extra request headers.
func NewLyricsServiceFromConfig(cfg shared.LyricsConfig, logger *log.Logger) (*LyricsService, error) {
	var headers *shared.RequestHeaders
	if cfg.HeadersFile != "" {
		h, err := shared.ParseCurlFile(cfg.HeadersFile)
		if err != nil {
			return nil, fmt.Errorf("%w: lyrics.headers_file: %v", shared.ErrInvalidConfig, err)
		}
		headers = h
	}

	return NewLyricsService(LyricsOpts{
		BaseURL:   cfg.BaseURL,
		Query:     cfg.Query,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		RateLimit: cfg.RateLimit,
		Headers:   headers,
		Logger:    logger,
	})
}
