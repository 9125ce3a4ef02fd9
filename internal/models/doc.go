// Package models defines the value types passed between the control bus, the resolver, the engine and its consumers.
//
//   - [Song] : a validated track with its [Lyrics] state
//   - [Lyrics] : Loading, Found(text) or NotFound; one forward transition per song
//   - [RawMetadata] : unvalidated track metadata read from a player
//   - [PlayerEvent] : TrackChanged, PlayerShutDown or TransportError
//
// All types are plain values and are copied, never shared, across goroutines.
package models
