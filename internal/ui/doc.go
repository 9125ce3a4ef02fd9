// Package ui implements the now-playing terminal view using bubbletea's Elm architecture.
//
// The [Model] renders the current song (title, artists, album and length) above a scrollable
// lyrics viewport. Lyrics show "Loading..." until they resolve and "lyrics not found :(" when
// the lookup fails.
//
// The model never talks to the player or the lyrics service. It only receives
// [tasks.StatusUpdate] values, pulled one at a time from the engine channel by a tea.Cmd, and
// switches over every status kind:
//   - SongUpdated replaces the displayed song
//   - Failure shows the message until the next song arrives
//   - LoadingStarted and LoadingStopped toggle the spinner
//   - Shutdown marks the view stopped
//
// Keyboard navigation uses vim-style bindings (j/k, b/f, g) with contextual help displayed via
// charmbracelet/bubbles/help. The o key opens the song's source URL in the desktop browser.
package ui
