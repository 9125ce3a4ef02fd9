package mpris

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
	"github.com/samber/lo"
)

// GatewayOpts configures a [Gateway].
type GatewayOpts struct {
	Prefer string // case-insensitive substring; matching players are probed first
	Logger *log.Logger
}

// Gateway finds MPRIS players on the session bus.
type Gateway struct {
	dial   func() (busConn, error)
	prefer string
	logger *log.Logger
}

// PlayerInfo describes one registered player for listing.
type PlayerInfo struct {
	Name     string `json:"name"`
	Identity string `json:"identity"`
}

// NewGateway creates a gateway that dials the session bus on every discovery.
func NewGateway(opts GatewayOpts) *Gateway {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Gateway{
		dial:   dialSession,
		prefer: strings.ToLower(strings.TrimSpace(opts.Prefer)),
		logger: shared.WithLogger(opts.Logger, "component", "mpris"),
	}
}

// Discover returns the first player whose event subscription opens.
//
// Players that cannot be subscribed to are logged and skipped. An unreachable bus or no capable
// player fails with [shared.ErrNoPlayer]. The returned player owns its bus connection.
func (g *Gateway) Discover(ctx context.Context) (*Player, error) {
	conn, err := g.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNoPlayer, err)
	}

	names, err := conn.ListNames(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to list bus names: %v", shared.ErrNoPlayer, err)
	}

	for _, name := range g.candidates(names) {
		player, err := openPlayer(ctx, conn, name, g.logger)
		if err != nil {
			g.logger.Warn("skipping player", "name", name, "error", err)
			continue
		}
		return player, nil
	}

	conn.Close()
	return nil, shared.ErrNoPlayer
}

// Discoverer adapts the gateway to [tasks.Discoverer].
func (g *Gateway) Discoverer() tasks.Discoverer {
	return tasks.DiscoverFunc(func(ctx context.Context) (tasks.Player, error) {
		p, err := g.Discover(ctx)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

// List returns every registered MPRIS player with its Identity property.
func (g *Gateway) List(ctx context.Context) ([]PlayerInfo, error) {
	conn, err := g.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNoPlayer, err)
	}
	defer conn.Close()

	names, err := conn.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bus names: %v", shared.ErrNoPlayer, err)
	}

	return lo.Map(g.candidates(names), func(name string, _ int) PlayerInfo {
		info := PlayerInfo{Name: name, Identity: strings.TrimPrefix(name, busNamePrefix)}
		if v, err := conn.Property(ctx, name, rootIface, "Identity"); err == nil {
			if s, ok := v.Value().(string); ok && s != "" {
				info.Identity = s
			}
		}
		return info
	}), nil
}

// candidates filters MPRIS names, preferred ones first, otherwise in bus order.
func (g *Gateway) candidates(names []string) []string {
	players := lo.Filter(names, func(n string, _ int) bool {
		return strings.HasPrefix(n, busNamePrefix)
	})
	if g.prefer == "" {
		return players
	}

	preferred := func(n string, _ int) bool { return strings.Contains(strings.ToLower(n), g.prefer) }
	return append(lo.Filter(players, preferred), lo.Reject(players, preferred)...)
}
