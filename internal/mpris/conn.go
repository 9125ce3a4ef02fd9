package mpris

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const (
	busNamePrefix  = "org.mpris.MediaPlayer2."
	objectPath     = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	rootIface      = "org.mpris.MediaPlayer2"
	playerIface    = "org.mpris.MediaPlayer2.Player"
	propertiesGet  = "org.freedesktop.DBus.Properties.Get"
	propertiesSig  = "org.freedesktop.DBus.Properties.PropertiesChanged"
	ownerChangeSig = "org.freedesktop.DBus.NameOwnerChanged"
)

// busConn is the slice of a D-Bus connection the gateway needs.
type busConn interface {
	ListNames(ctx context.Context) ([]string, error)
	NameOwner(ctx context.Context, name string) (string, error)
	Property(ctx context.Context, dest, iface, prop string) (dbus.Variant, error)
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	Close() error
}

// sessionConn wraps a private session bus connection.
type sessionConn struct {
	*dbus.Conn
}

func dialSession() (busConn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return sessionConn{conn}, nil
}

func (c sessionConn) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := c.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

func (c sessionConn) NameOwner(ctx context.Context, name string) (string, error) {
	var owner string
	err := c.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

func (c sessionConn) Property(ctx context.Context, dest, iface, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	err := c.Object(dest, objectPath).CallWithContext(ctx, propertiesGet, 0, iface, prop).Store(&v)
	return v, err
}

// propertiesRule matches PropertiesChanged emitted by the player's unique name.
func propertiesRule(owner string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchSender(owner),
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	}
}

// ownerRule matches NameOwnerChanged for the player's well-known name.
func ownerRule(name string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath("/org/freedesktop/DBus"),
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, name),
	}
}
