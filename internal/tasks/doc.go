// Package tasks runs the now-playing engine: it follows the active media player and resolves
// lyrics for every track it plays, reporting progress over a single ordered channel.
//
// # Components
//
//   - [Discoverer] and [Player] : the control bus boundary (implemented by internal/mpris)
//   - [LyricsFetcher] : the lyrics lookup boundary (implemented by internal/services)
//   - [SongResolver] : validates raw metadata into a [models.Song] and fetches its lyrics
//   - [NowPlayingEngine] : the supervised loop that ties them together
//
// # State Machine
//
// The engine moves through [Starting], [Connected], [Listening] and [Reconnecting] for as long as
// its context lives. Discovery failures, lost players and transport errors each produce a
// [Failure] update followed by a fixed backoff; none of them stop the loop. [ShuttingDown] is
// entered only when the context passed to [NowPlayingEngine.Start] is canceled.
//
// # Status Updates
//
// Every song resolution is bracketed by [LoadingStarted] and [LoadingStopped]:
//
//	LoadingStarted, SongUpdated(song), LoadingStopped
//	LoadingStarted, Failure("song not found"), LoadingStopped
//
// The song carried by [SongUpdated] always has terminal lyrics (found or not found). A failure
// is always followed by a cleared loading indicator, so consumers never spin forever.
//
// Updates pass through an unbounded mailbox: the engine never blocks on a slow consumer, and
// nothing is dropped or reordered. [Shutdown] is the last update before the channel closes.
package tasks
