package mpris

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/godbus/dbus/v5"
)

// ParseMetadata converts an MPRIS Metadata property value into [models.RawMetadata].
//
// Missing or mistyped keys are left empty; validation happens in the resolver.
func ParseMetadata(value any) (models.RawMetadata, error) {
	if v, ok := value.(dbus.Variant); ok {
		value = v.Value()
	}
	metadata, ok := value.(map[string]dbus.Variant)
	if !ok {
		return models.RawMetadata{}, fmt.Errorf("%w: unexpected metadata type %T", shared.ErrMetadata, value)
	}

	return models.RawMetadata{
		TrackID: extractString(metadata, "mpris:trackid"),
		Title:   extractString(metadata, "xesam:title"),
		Artists: extractStrings(metadata, "xesam:artist"),
		Album:   extractString(metadata, "xesam:album"),
		ArtURL:  extractString(metadata, "mpris:artUrl"),
		URL:     extractString(metadata, "xesam:url"),
		Length:  extractLength(metadata, "mpris:length"),
	}, nil
}

func extractString(metadata map[string]dbus.Variant, key string) string {
	variant, exists := metadata[key]
	if !exists {
		return ""
	}

	switch typed := variant.Value().(type) {
	case string:
		return typed
	case dbus.ObjectPath:
		return string(typed)
	default:
		return ""
	}
}

func extractStrings(metadata map[string]dbus.Variant, key string) []string {
	variant, exists := metadata[key]
	if !exists {
		return nil
	}

	switch typed := variant.Value().(type) {
	case []string:
		return typed
	case string:
		return []string{typed}
	default:
		return nil
	}
}

// extractLength reads mpris:length, which players report in microseconds as either x or t.
func extractLength(metadata map[string]dbus.Variant, key string) time.Duration {
	variant, exists := metadata[key]
	if !exists {
		return 0
	}

	switch typed := variant.Value().(type) {
	case int64:
		if typed <= 0 {
			return 0
		}
		return time.Duration(typed) * time.Microsecond
	case uint64:
		return time.Duration(typed) * time.Microsecond
	case int32:
		if typed <= 0 {
			return 0
		}
		return time.Duration(typed) * time.Microsecond
	default:
		return 0
	}
}

// identity is the part of the metadata that distinguishes one track from the next.
func identity(md models.RawMetadata) string {
	return md.TrackID + "\x00" + md.Title + "\x00" + strings.Join(md.Artists, "\x1f")
}
