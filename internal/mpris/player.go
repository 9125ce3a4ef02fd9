package mpris

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/godbus/dbus/v5"
)

const signalBuffer = 16

// Player is a subscribed MPRIS player. It implements [tasks.Player].
type Player struct {
	conn    busConn
	name    string
	owner   string
	signals chan *dbus.Signal
	logger  *log.Logger

	mu       sync.Mutex
	last     string // identity of the last metadata seen
	consumed atomic.Bool
	once     sync.Once
}

// openPlayer subscribes to name's property and ownership signals on conn.
func openPlayer(ctx context.Context, conn busConn, name string, logger *log.Logger) (*Player, error) {
	owner, err := conn.NameOwner(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	props := propertiesRule(owner)
	if err := conn.AddMatchSignal(props...); err != nil {
		return nil, fmt.Errorf("failed to add PropertiesChanged match: %w", err)
	}
	if err := conn.AddMatchSignal(ownerRule(name)...); err != nil {
		conn.RemoveMatchSignal(props...)
		return nil, fmt.Errorf("failed to add NameOwnerChanged match: %w", err)
	}

	signals := make(chan *dbus.Signal, signalBuffer)
	conn.Signal(signals)

	return &Player{
		conn:    conn,
		name:    name,
		owner:   owner,
		signals: signals,
		logger:  shared.WithLogger(logger, "player", name),
	}, nil
}

func (p *Player) Name() string { return p.name }

// Metadata reads the Player.Metadata property.
func (p *Player) Metadata(ctx context.Context) (models.RawMetadata, error) {
	v, err := p.conn.Property(ctx, p.name, playerIface, "Metadata")
	if err != nil {
		return models.RawMetadata{}, fmt.Errorf("%w: %v", shared.ErrMetadata, err)
	}

	md, err := ParseMetadata(v)
	if err != nil {
		return models.RawMetadata{}, err
	}
	p.remember(md)
	return md, nil
}

// Events yields TrackChanged for every metadata change with a new identity, then ends with
// PlayerShutDown when the name loses its owner or TransportError when the connection or ctx ends.
//
// Only the first call yields events; later calls yield a single TransportError.
func (p *Player) Events(ctx context.Context) iter.Seq[models.PlayerEvent] {
	return func(yield func(models.PlayerEvent) bool) {
		if !p.consumed.CompareAndSwap(false, true) {
			yield(models.TransportErrorEvent("player event stream already consumed"))
			return
		}

		for {
			select {
			case <-ctx.Done():
				yield(models.TransportErrorEvent(ctx.Err().Error()))
				return
			case sig, ok := <-p.signals:
				if !ok || sig == nil {
					yield(models.TransportErrorEvent(shared.ErrTransport.Error()))
					return
				}

				ev, ok := p.translate(ctx, sig)
				if !ok {
					continue
				}
				if !yield(ev) || ev.Terminal() {
					return
				}
			}
		}
	}
}

// Close releases the bus connection. It is safe to call more than once.
func (p *Player) Close() error {
	var err error
	p.once.Do(func() {
		err = p.conn.Close()
	})
	return err
}

func (p *Player) translate(ctx context.Context, sig *dbus.Signal) (models.PlayerEvent, bool) {
	switch sig.Name {
	case ownerChangeSig:
		if len(sig.Body) < 3 {
			return models.PlayerEvent{}, false
		}
		name, _ := sig.Body[0].(string)
		newOwner, _ := sig.Body[2].(string)
		if name != p.name || newOwner == p.owner {
			return models.PlayerEvent{}, false
		}
		p.logger.Debug("player owner changed", "old", p.owner, "new", newOwner)
		return models.PlayerShutDownEvent(), true

	case propertiesSig:
		if sig.Sender != "" && sig.Sender != p.owner {
			return models.PlayerEvent{}, false
		}
		if len(sig.Body) < 2 {
			return models.PlayerEvent{}, false
		}
		if iface, _ := sig.Body[0].(string); iface != playerIface {
			return models.PlayerEvent{}, false
		}

		changed, _ := sig.Body[1].(map[string]dbus.Variant)
		var invalidated []string
		if len(sig.Body) > 2 {
			invalidated, _ = sig.Body[2].([]string)
		}

		var md models.RawMetadata
		if v, ok := changed["Metadata"]; ok {
			parsed, err := ParseMetadata(v)
			if err != nil {
				p.logger.Debug("ignoring metadata change", "error", err)
				return models.PlayerEvent{}, false
			}
			md = parsed
		} else if slices.Contains(invalidated, "Metadata") {
			v, err := p.conn.Property(ctx, p.name, playerIface, "Metadata")
			if err != nil {
				return models.TransportErrorEvent(fmt.Sprintf("%v: %v", shared.ErrMetadata, err)), true
			}
			parsed, err := ParseMetadata(v)
			if err != nil {
				return models.PlayerEvent{}, false
			}
			md = parsed
		} else {
			return models.PlayerEvent{}, false
		}

		if !p.remember(md) {
			return models.PlayerEvent{}, false
		}
		return models.TrackChangedEvent(md), true
	}
	return models.PlayerEvent{}, false
}

// remember records md as the last seen track and reports whether its identity changed.
func (p *Player) remember(md models.RawMetadata) bool {
	id := identity(md)
	p.mu.Lock()
	defer p.mu.Unlock()
	if id == p.last {
		return false
	}
	p.last = id
	return true
}
