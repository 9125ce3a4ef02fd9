// Package mpris discovers media players on the D-Bus session bus and follows their playback
// through the MPRIS interfaces.
//
// # Discovery
//
// [Gateway.Discover] lists bus names under org.mpris.MediaPlayer2 and probes them in bus order,
// or preferred names first when mpris.prefer is set. A player qualifies once both match rules
// are installed:
//
//   - PropertiesChanged on /org/mpris/MediaPlayer2 from the player's unique name
//   - NameOwnerChanged for the player's well-known name
//
// # Events
//
// [Player.Events] turns those signals into [models.PlayerEvent] values. A metadata change only
// counts as a track change when the track id, title or artists differ from the last metadata
// seen, so seek and volume updates are ignored. Losing the name owner yields PlayerShutDown and
// a closed connection yields TransportError; either ends the sequence.
//
// Each discovered player owns a private bus connection which [Player.Close] releases.
package mpris
