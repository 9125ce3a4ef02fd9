// Package server provides HTTP routing, middleware, and the local now-playing endpoint.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Now Playing Handler
//
// [NowPlaying] folds engine status updates into a snapshot and serves it:
//
//	GET /now-playing            JSON snapshot: song, loading flag, last failure
//	GET /now-playing?format=md  the current song as Markdown (or text)
//	GET /healthz                the engine state, 503 once shutting down
//
// The handler never calls into the engine; `lyriek serve` ranges over the engine channel and
// passes every update to [NowPlaying.Apply].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
