// Package services implements the [LyricsProvider] interface for remote lyrics lookup APIs.
//
// # Request Shape
//
// [LyricsService] addresses songs by path: the configured base endpoint, then the joined
// artist string, then the title, each escaped as a single path segment:
//
//	GET {base_url}/{artists}/{title}?{query}
//
// Endpoint, query parameters (API keys) and bearer token come from configuration.
//
// # Transport
//
// Requests go through [retryablehttp.Client] with RetryMax taken from lyrics.retries. The
// default is zero retries: the now-playing engine, not the client, owns retry policy.
// Requests are throttled by a [rate.Limiter] when lyrics.rate_limit is set, and a static
// [oauth2.TokenSource] adds the Authorization header when lyrics.token is set.
//
// # Error Handling
//
// Every failure maps to [shared.ErrLyricsNotFound]. Callers do not distinguish "service
// down" from "no lyrics"; both end the attempt and the song is shown without lyrics.
//
// # Normalization
//
// [NormalizeLyrics] collapses the doubled blank lines lyrics services tend to produce.
package services
